package vacation

import (
	"context"
	"time"
)

type Service interface {
	// CreateRequest validates and persists a pending request, reports
	// overlapping approved requests and notifies the department manager.
	// When no manager exists the request is still persisted and returned
	// together with ErrManagerNotFound.
	CreateRequest(ctx context.Context, req CreateVacationRequest) (CreateResult, error)
	DecideRequest(ctx context.Context, req DecideVacationRequest) error
	RecalculateAll(ctx context.Context, asOf time.Time) (RecalculationResult, error)

	GetRequest(ctx context.Context, viewer Viewer, id string) (VacationRequest, error)
	ListMyRequests(ctx context.Context, employeeID string) ([]VacationRequest, error)
	ListDepartmentRequests(ctx context.Context, departmentID string) ([]DepartmentVacation, error)
}
