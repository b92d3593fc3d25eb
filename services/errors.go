package services

import "errors"

// Domain error taxonomy. Routes map these onto HTTP statuses with errors.Is;
// anything else propagates as an opaque infrastructure failure and is never
// retried by the engine.
var (
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrConflict          = errors.New("room is not available for the requested dates")
	ErrForbidden         = errors.New("actor may not perform this status change")
	ErrIllegalTransition = errors.New("status change not permitted from current state")
	ErrNotFound          = errors.New("not found")
)
