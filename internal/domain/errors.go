package domain

import "errors"

// Error kinds returned by the core services. Callers match these with
// errors.Is; the HTTP layer maps them to transport status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid scooter status")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflict           = errors.New("conflicting concurrent update")
)
