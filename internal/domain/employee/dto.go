package employee

import (
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

type ProfileResponse struct {
	EmployeeID                   string    `json:"employee_id"`
	DepartmentID                 string    `json:"department_id"`
	PositionID                   string    `json:"position_id"`
	RoleID                       string    `json:"role_id"`
	FirstName                    string    `json:"first_name"`
	LastName                     string    `json:"last_name"`
	MiddleName                   *string   `json:"middle_name,omitempty"`
	Email                        string    `json:"email"`
	HireDate                     string    `json:"hire_date"`
	AccumulatedVacationDays      int       `json:"accumulated_vacation_days"`
	TotalAccumulatedVacationDays int       `json:"total_accumulated_vacation_days"`
	UpdatedAt                    time.Time `json:"updated_at"`
}

func NewProfileResponse(e Employee) ProfileResponse {
	return ProfileResponse{
		EmployeeID:                   e.ID,
		DepartmentID:                 e.DepartmentID,
		PositionID:                   e.PositionID,
		RoleID:                       e.RoleID,
		FirstName:                    e.FirstName,
		LastName:                     e.LastName,
		MiddleName:                   e.MiddleName,
		Email:                        e.Email,
		HireDate:                     calendar.Format(e.HireDate),
		AccumulatedVacationDays:      e.AccumulatedVacationDays,
		TotalAccumulatedVacationDays: e.TotalAccumulatedVacationDays,
		UpdatedAt:                    e.UpdatedAt,
	}
}
