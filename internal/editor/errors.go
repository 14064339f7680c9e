package editor

import "errors"

var (
	ErrNotReady = errors.New("editor is not ready")
	ErrClosed   = errors.New("editor is closed")
)
