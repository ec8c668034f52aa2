package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when a called global is not a function.
	ErrNotFunction = errors.New("not a lua function")

	// ErrBadResult is returned when a script returns a value of the wrong type.
	ErrBadResult = errors.New("unexpected lua result")
)
