package models

import "errors"

// Domain errors for the booking engine. Services wrap these with context via
// fmt.Errorf("%w: ..."); handlers map them to HTTP statuses.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrPastBooking      = errors.New("cannot book a time in the past")
	ErrRestrictedRoom   = errors.New("this room is restricted to the administration")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("booking not found")
	ErrConflict         = errors.New("a booking already exists in this time slot")
)
