package vacation

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

// OverlapDetector finds approved vacations of same-position colleagues.
// Results are advisory and never block a submission.
type OverlapDetector struct {
	requests vacation.RequestRepository
}

func NewOverlapDetector(requests vacation.RequestRepository) *OverlapDetector {
	return &OverlapDetector{requests: requests}
}

// FindConflicts returns approved requests of other employees in the same
// department and position that share at least one day with [start, end].
func (d *OverlapDetector) FindConflicts(ctx context.Context, candidate employee.Employee, start, end time.Time) ([]vacation.OverlappingVacation, error) {
	approved, err := d.requests.ListApprovedByDeptAndPosition(ctx, candidate.DepartmentID, candidate.PositionID, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleague vacations: %w", err)
	}

	conflicts := make([]vacation.OverlappingVacation, 0)
	for _, r := range approved {
		if r.EmployeeID == candidate.ID || !calendar.Overlaps(r.StartDate, r.EndDate, start, end) {
			continue
		}
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		conflicts = append(conflicts, vacation.OverlappingVacation{
			RequestID:    r.ID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: name,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
		})
	}
	return conflicts, nil
}

// FlagDepartment marks every request that intersects an approved request of
// another employee holding the same position.
func (d *OverlapDetector) FlagDepartment(requests []vacation.VacationRequest) []vacation.DepartmentVacation {
	out := make([]vacation.DepartmentVacation, 0, len(requests))
	for _, r := range requests {
		flagged := vacation.DepartmentVacation{Request: r}
		for _, other := range requests {
			if other.Status != vacation.StatusApproved || other.EmployeeID == r.EmployeeID {
				continue
			}
			if !samePosition(r, other) {
				continue
			}
			if calendar.Overlaps(r.StartDate, r.EndDate, other.StartDate, other.EndDate) {
				flagged.HasOverlap = true
				break
			}
		}
		out = append(out, flagged)
	}
	return out
}

func samePosition(a, b vacation.VacationRequest) bool {
	return a.PositionID != nil && b.PositionID != nil && *a.PositionID == *b.PositionID
}
