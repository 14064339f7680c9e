package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	ListPath = "/posts"
	NewPath  = "/posts/new"
)

var ErrMalformedRoute = errors.New("malformed route")

// Mode is either Create or Edit. Callers switch on the concrete type.
type Mode interface {
	isMode()
	String() string
}

type Create struct{}

type Edit struct {
	ID int64
}

func (Create) isMode() {}
func (Edit) isMode()   {}

func (Create) String() string {
	return "create"
}

func (m Edit) String() string {
	return fmt.Sprintf("edit(%d)", m.ID)
}

func EditPath(id int64) string {
	return ListPath + "/edit/" + strconv.FormatInt(id, 10)
}

// Resolve maps a navigation path onto an editor mode. The trailing segment must be
// exactly "new", or the path must end in "edit/<id>".
func Resolve(path string) (Mode, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRoute, path)
	}

	last := segments[len(segments)-1]
	if last == "new" {
		return Create{}, nil
	}

	if len(segments) < 2 || segments[len(segments)-2] != "edit" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRoute, path)
	}

	id, err := strconv.ParseInt(last, 10, 64)
	if err != nil || id < 0 {
		return nil, fmt.Errorf("%w: invalid post id %q", ErrMalformedRoute, last)
	}

	return Edit{ID: id}, nil
}
