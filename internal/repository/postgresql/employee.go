package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, department_id, position_id, role_id, first_name, last_name, middle_name, email, hire_date,
	accumulated_vacation_days, total_accumulated_vacation_days, version, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.DepartmentID, &emp.PositionID, &emp.RoleID,
		&emp.FirstName, &emp.LastName, &emp.MiddleName, &emp.Email, &emp.HireDate,
		&emp.AccumulatedVacationDays, &emp.TotalAccumulatedVacationDays, &emp.Version,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
}

func (e *employeeRepositoryImpl) get(ctx context.Context, query, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET accumulated_vacation_days = $1,
			total_accumulated_vacation_days = $2,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $3 AND version = $4
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.AccumulatedVacationDays,
		emp.TotalAccumulatedVacationDays,
		emp.ID,
		emp.Version,
	).Scan(&emp.Version, &emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, emp.ID).Scan(&exists); err != nil {
				return employee.Employee{}, fmt.Errorf("failed to check employee with id %s: %w", emp.ID, err)
			}
			if !exists {
				return employee.Employee{}, employee.ErrEmployeeNotFound
			}
			return employee.Employee{}, employee.ErrVersionConflict
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}

	return emp, nil
}

// ListIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return ids, nil
}

// FindManager implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) FindManager(ctx context.Context, departmentID, managerRoleID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE department_id = $1 AND role_id = $2
		ORDER BY created_at, id
		LIMIT 1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, departmentID, managerRoleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to find manager of department %s: %w", departmentID, err)
	}
	return emp, nil
}
