package client

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrConflict  = errors.New("post with this id already exists")
	ErrMissingID = errors.New("post id must be assigned")
)

// TransportError is any network or server failure without a more specific meaning.
type TransportError struct {
	Op         string
	StatusCode int
	Details    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
