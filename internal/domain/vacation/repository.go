package vacation

import (
	"context"
)

// RequestRepository - interface for vacation_requests table
type RequestRepository interface {
	Create(ctx context.Context, request VacationRequest) (VacationRequest, error)
	GetByID(ctx context.Context, id string) (VacationRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (VacationRequest, error)
	ListApproved(ctx context.Context, employeeID string) ([]VacationRequest, error)
	ListApprovedByDeptAndPosition(ctx context.Context, departmentID, positionID, excludeEmployeeID string) ([]VacationRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationRequest, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]VacationRequest, error)
	Update(ctx context.Context, request VacationRequest) error
}

// UsageRepository - interface for vacation_usages table
type UsageRepository interface {
	// CreateIfAbsent inserts usage unless the same employee interval exists.
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, usage VacationUsage) (bool, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationUsage, error)
}
