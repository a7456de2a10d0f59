package conversation

import "errors"

var (
	ErrNoActiveSession = errors.New("no active conversation session")
	ErrInvalidDocument = errors.New("invalid conversation document")
)
