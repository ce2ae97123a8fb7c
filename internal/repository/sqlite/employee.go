package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
)

const employeeColumns = `
	id, department_id, position_id, role_id, first_name, last_name, middle_name, email, hire_date,
	accumulated_vacation_days, total_accumulated_vacation_days, version, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		emp                           employee.Employee
		middle                        sql.NullString
		hireDate, createdAt, updatedAt string
	)
	err := row.Scan(
		&emp.ID, &emp.DepartmentID, &emp.PositionID, &emp.RoleID,
		&emp.FirstName, &emp.LastName, &middle, &emp.Email, &hireDate,
		&emp.AccumulatedVacationDays, &emp.TotalAccumulatedVacationDays, &emp.Version,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.MiddleName = stringPtr(middle)
	if emp.HireDate, err = parseDate(hireDate); err != nil {
		return employee.Employee{}, err
	}
	if emp.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return employee.Employee{}, err
	}
	if emp.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// GetByIDForUpdate implements employee.EmployeeRepository. Transactions
// begin IMMEDIATE, so the write lock is already held once this runs inside one.
func (e *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.GetByID(ctx, id)
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	now := time.Now().UTC()
	query := `
		UPDATE employees
		SET accumulated_vacation_days = ?,
			total_accumulated_vacation_days = ?,
			version = version + 1,
			updated_at = ?
		WHERE id = ? AND version = ?
	`

	res, err := q.ExecContext(ctx, query,
		emp.AccumulatedVacationDays,
		emp.TotalAccumulatedVacationDays,
		FormatTimestamp(now),
		emp.ID,
		emp.Version,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	if affected == 0 {
		var exists bool
		if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = ?)`, emp.ID).Scan(&exists); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to check employee with id %s: %w", emp.ID, err)
		}
		if !exists {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, employee.ErrVersionConflict
	}

	emp.Version++
	emp.UpdatedAt = now
	return emp, nil
}

// ListIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.QueryContext(ctx, `SELECT id FROM employees ORDER BY id`)
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
		WHERE department_id = ? AND role_id = ?
		ORDER BY created_at, id
		LIMIT 1`

	emp, err := scanEmployee(q.QueryRowContext(ctx, query, departmentID, managerRoleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to find manager of department %s: %w", departmentID, err)
	}
	return emp, nil
}
