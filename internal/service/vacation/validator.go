package vacation

import (
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
)

const (
	// MinimumReserveDays must remain on the balance after any request.
	MinimumReserveDays = 7
	// LongVacationDays is the length of the vacation every employee must
	// take before splitting the rest of the balance into short ones.
	LongVacationDays = 14
)

// RequestValidator applies the submission rules in order and returns the
// first violation.
type RequestValidator struct{}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// Validate checks a request of dayCount days against balance. hasLongApproved
// reports whether the employee already has an approved request of at least
// LongVacationDays.
func (v *RequestValidator) Validate(balance, dayCount int, hasLongApproved bool) error {
	if dayCount < 1 {
		return vacation.ErrInvalidRange
	}
	if balance < dayCount {
		return vacation.ErrInsufficientBalance
	}

	remaining := balance - dayCount
	if remaining < MinimumReserveDays {
		return vacation.ErrBelowMinimumReserve
	}
	if dayCount < LongVacationDays && !hasLongApproved && remaining < LongVacationDays {
		return vacation.ErrLongVacationRequired
	}

	return nil
}

func hasLongVacation(approved []vacation.VacationRequest) bool {
	for _, r := range approved {
		if r.DayCount() >= LongVacationDays {
			return true
		}
	}
	return false
}
