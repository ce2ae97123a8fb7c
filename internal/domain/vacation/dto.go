package vacation

import (
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/validator"
)

// OverlapWarningMessage accompanies a non-empty overlap list.
const OverlapWarningMessage = "Your vacation overlaps with colleagues in the same position"

// CreateVacationRequest is the engine input for a submission. The employee
// and department come from the resolved caller identity.
type CreateVacationRequest struct {
	EmployeeID     string
	DepartmentID   string
	VacationTypeID string
	StartDate      time.Time
	EndDate        time.Time
	Comment        *string
}

// CreateResult carries the persisted request and the advisory overlaps.
type CreateResult struct {
	Request  VacationRequest
	Warnings []OverlappingVacation
}

// DecideVacationRequest moves a request to a new status on behalf of a
// manager of DepartmentID.
type DecideVacationRequest struct {
	RequestID    string
	DepartmentID string
	Status       Status
	Comment      *string
}

type RecalculationResult struct {
	UpdatedCount int `json:"updated_count"`
	FailedCount  int `json:"failed_count"`
}

// Viewer is the caller identity used for read access checks.
type Viewer struct {
	EmployeeID   string
	DepartmentID string
	IsManager    bool
}

// DepartmentVacation is a department request flagged when it collides with
// an approved request of a same-position colleague.
type DepartmentVacation struct {
	Request    VacationRequest
	HasOverlap bool
}

type CreateVacationBody struct {
	VacationTypeID string  `json:"vacation_type_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Comment        *string `json:"comment,omitempty"`
}

func (r *CreateVacationBody) Validate() error {
	var errs validator.ValidationErrors

	// Vacation type
	if validator.IsEmpty(r.VacationTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_type_id",
			Message: "vacation_type_id is required",
		})
	}

	// Dates
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if r.Comment != nil && validator.ExceedsLength(*r.Comment, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToRequest converts a validated body. Range ordering is left to the engine.
func (r *CreateVacationBody) ToRequest(employeeID, departmentID string) (CreateVacationRequest, error) {
	start, err := calendar.Parse(r.StartDate)
	if err != nil {
		return CreateVacationRequest{}, err
	}
	end, err := calendar.Parse(r.EndDate)
	if err != nil {
		return CreateVacationRequest{}, err
	}
	return CreateVacationRequest{
		EmployeeID:     employeeID,
		DepartmentID:   departmentID,
		VacationTypeID: r.VacationTypeID,
		StartDate:      start,
		EndDate:        end,
		Comment:        r.Comment,
	}, nil
}

type UpdateStatusBody struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (r *UpdateStatusBody) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	if r.Comment != nil && validator.ExceedsLength(*r.Comment, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VacationResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	VacationTypeID string  `json:"vacation_type_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	DayCount       int     `json:"day_count"`
	Comment        *string `json:"comment,omitempty"`
	Status         Status  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewVacationResponse(r VacationRequest) VacationResponse {
	return VacationResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		VacationTypeID: r.VacationTypeID,
		StartDate:      calendar.Format(r.StartDate),
		EndDate:        calendar.Format(r.EndDate),
		DayCount:       r.DayCount(),
		Comment:        r.Comment,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateVacationResponse is the payload of a submission. Overlaps and an
// unreachable manager travel as envelope warnings.
type CreateVacationResponse struct {
	Vacation        VacationResponse `json:"vacation"`
	ManagerNotified bool             `json:"manager_notified"`
}

func NewCreateVacationResponse(result CreateResult, managerNotified bool) CreateVacationResponse {
	return CreateVacationResponse{
		Vacation:        NewVacationResponse(result.Request),
		ManagerNotified: managerNotified,
	}
}

type DepartmentVacationResponse struct {
	VacationResponse
	HasOverlap bool `json:"has_overlap"`
}

func NewDepartmentVacationResponses(items []DepartmentVacation) []DepartmentVacationResponse {
	out := make([]DepartmentVacationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, DepartmentVacationResponse{
			VacationResponse: NewVacationResponse(item.Request),
			HasOverlap:       item.HasOverlap,
		})
	}
	return out
}
