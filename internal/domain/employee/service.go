package employee

import (
	"context"
)

// EmployeeService exposes read access to the caller's own record.
type EmployeeService interface {
	GetProfile(ctx context.Context, employeeID string) (ProfileResponse, error)
}
