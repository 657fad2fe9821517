package tabs

import "errors"

var (
	ErrEmptyRegistry   = errors.New("no tabs registered")
	ErrInvalidTab      = errors.New("tab is not part of this switcher")
	ErrIndexOutOfRange = errors.New("tab index out of range")
	ErrDuplicateTab    = errors.New("duplicate tab id")
)
