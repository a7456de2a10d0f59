package workspace

import "errors"

var (
	ErrOutsideRoot = errors.New("path escapes workspace root")
	ErrEmptyRoot   = errors.New("workspace root is empty")
)
