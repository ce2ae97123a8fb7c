package vacation

import (
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DisplayName is the human readable status used in notification text.
func (s Status) DisplayName() string {
	switch s {
	case StatusPending:
		return "In Progress"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// VacationRequest entity
type VacationRequest struct {
	ID             string
	EmployeeID     string
	VacationTypeID string

	// Inclusive calendar range.
	StartDate time.Time
	EndDate   time.Time

	Comment *string
	Status  Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	DepartmentID *string
	PositionID   *string
}

// DayCount is the number of calendar days the request covers.
func (r VacationRequest) DayCount() int {
	return calendar.DaysInclusive(r.StartDate, r.EndDate)
}

// VacationUsage records an approved interval against an employee's balance.
// (EmployeeID, StartDate, EndDate) is unique.
type VacationUsage struct {
	ID             string
	EmployeeID     string
	VacationTypeID string
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
}

// OverlappingVacation is an approved request of a colleague with the same
// department and position that intersects a candidate range.
type OverlappingVacation struct {
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}
