package session

import "errors"

var (
	ErrSessionUnavailable = errors.New("no active identity session")
	ErrNoAccessToken      = errors.New("no access token")
)
