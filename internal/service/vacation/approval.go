package vacation

import (
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
)

var transitions = map[vacation.Status][]vacation.Status{
	vacation.StatusPending:  {vacation.StatusApproved, vacation.StatusRejected},
	vacation.StatusApproved: {vacation.StatusRejected},
	vacation.StatusRejected: {vacation.StatusApproved},
}

// checkTransition reports whether from -> to is a no-op. Moving into the
// current status is a no-op except for pending, which no decision may target.
func checkTransition(from, to vacation.Status) (noop bool, err error) {
	if !to.Valid() || to == vacation.StatusPending {
		return false, vacation.ErrInvalidTransition
	}
	if from == to {
		return true, nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return false, nil
		}
	}
	return false, vacation.ErrInvalidTransition
}
