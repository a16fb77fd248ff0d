package handler

import "errors"

var (
	// ErrNotRegistered is returned when no handler is registered for a
	// command's handler name. A lookup miss is a dispatch error, never a
	// silent no-op.
	ErrNotRegistered = errors.New("no handler registered")

	// ErrAlreadyRegistered is returned when a name is registered twice.
	ErrAlreadyRegistered = errors.New("handler already registered")

	// ErrUnsupportedCommand is returned when a resolved handler's supported
	// set does not include the command's kind.
	ErrUnsupportedCommand = errors.New("handler does not support command")
)
