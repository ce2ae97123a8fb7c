package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate reads the row and holds a write lock on it until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	// Update writes the balance fields when emp.Version still matches the
	// stored version, and returns ErrVersionConflict otherwise.
	Update(ctx context.Context, emp Employee) (Employee, error)
	ListIDs(ctx context.Context) ([]string, error)
	FindManager(ctx context.Context, departmentID, managerRoleID string) (Employee, error)
}
