package cleanup

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an input path that does not exist.
type NotFoundError struct {
	What string // "Translation file" or "Source path"
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
