package lifecycle

import "errors"

// Handler-facing error taxonomy. Handlers map these onto the error envelope;
// anything else surfaces as a store failure.
var (
	// ErrValidation: a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: no matching active aggregate.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateRequest: an active request already exists for the same
	// (tenant, bed, direction).
	ErrDuplicateRequest = errors.New("active request already exists")
	// ErrAlreadyTerminal: the aggregate reached a terminal state first,
	// usually because the other party won the race.
	ErrAlreadyTerminal = errors.New("request already terminal")
	// ErrSlotTaken: the target time slot is no longer open.
	ErrSlotTaken = errors.New("time slot no longer open")
	// ErrStoreUnavailable: the backing store timed out or errored.
	ErrStoreUnavailable = errors.New("store unavailable")
)
