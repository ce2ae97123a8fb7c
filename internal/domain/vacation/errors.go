package vacation

import "errors"

var (
	ErrVacationRequestNotFound = errors.New("vacation request not found")
	ErrInvalidRange            = errors.New("end date must not be before start date")
	ErrInsufficientBalance     = errors.New("insufficient vacation days")
	ErrBelowMinimumReserve     = errors.New("at least 7 vacation days must remain after the request")
	ErrLongVacationRequired    = errors.New("a vacation of at least 14 days is required first")
	ErrManagerNotFound         = errors.New("department manager not found")
	ErrForbidden               = errors.New("access to another department's vacation requests is forbidden")
	ErrInvalidTransition       = errors.New("invalid vacation status transition")
	ErrConcurrencyConflict     = errors.New("vacation data was modified concurrently")
	ErrUpstreamUnavailable     = errors.New("backing store unavailable")
)

// IsValidationError reports whether err is a user-facing rejection that must
// not be retried.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrBelowMinimumReserve) ||
		errors.Is(err, ErrLongVacationRequired)
}
