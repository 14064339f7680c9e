package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrPostNotFound      = errors.New("post not found")
	ErrPostAlreadyExists = errors.New("post with this id already exists")
	ErrPostIDRequired    = errors.New("post id is required")
)
