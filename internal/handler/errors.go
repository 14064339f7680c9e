package handler

import "errors"

var (
	errNotAuthorized  = errors.New("user is not authorized")
	errInvalidPostID  = errors.New("invalid post ID")
	errPostIDMismatch = errors.New("post ID in body does not match the URL")
)
