package postgres

import "errors"

var ErrDuplicatePostID = errors.New("post id already exists")

const uniqueViolationCode = "23505"
