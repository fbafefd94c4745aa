package booking

import "errors"

var (
	ErrUnauthorized           = errors.New("authentication required")
	ErrForbidden              = errors.New("admin access required")
	ErrInvalidInterval        = errors.New("end time must be after start time")
	ErrSlotConflict           = errors.New("time slot is already booked")
	ErrInvalidStateTransition = errors.New("booking has already been processed")
	ErrNotFound               = errors.New("record not found")

	// ErrStoreUnavailable marks a transient persistence failure. Callers must
	// not treat it as "slot available" or "someone else booked it".
	ErrStoreUnavailable = errors.New("store unavailable")
)
