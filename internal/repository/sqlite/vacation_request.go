package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

const vacationRequestSelect = `
	SELECT vr.id, vr.employee_id, vr.vacation_type_id, vr.start_date, vr.end_date, vr.comment, vr.status,
		vr.created_at, vr.updated_at, e.first_name, e.last_name, e.middle_name, e.department_id, e.position_id
	FROM vacation_requests vr
	INNER JOIN employees e ON vr.employee_id = e.id`

type vacationRequestRepositoryImpl struct {
	db *sql.DB
}

func NewVacationRequestRepository(db *sql.DB) vacation.RequestRepository {
	return &vacationRequestRepositoryImpl{db: db}
}

func scanVacationRequest(row rowScanner) (vacation.VacationRequest, error) {
	var (
		vr                   vacation.VacationRequest
		emp                  employee.Employee
		comment, middle      sql.NullString
		start, end, status   string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&vr.ID, &vr.EmployeeID, &vr.VacationTypeID, &start, &end, &comment, &status,
		&createdAt, &updatedAt, &emp.FirstName, &emp.LastName, &middle,
		&emp.DepartmentID, &emp.PositionID,
	)
	if err != nil {
		return vacation.VacationRequest{}, err
	}

	if vr.StartDate, err = parseDate(start); err != nil {
		return vacation.VacationRequest{}, err
	}
	if vr.EndDate, err = parseDate(end); err != nil {
		return vacation.VacationRequest{}, err
	}
	if vr.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return vacation.VacationRequest{}, err
	}
	if vr.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return vacation.VacationRequest{}, err
	}
	vr.Comment = stringPtr(comment)
	vr.Status = vacation.Status(status)

	emp.MiddleName = stringPtr(middle)
	name := emp.FullName()
	vr.EmployeeName = &name
	vr.DepartmentID = &emp.DepartmentID
	vr.PositionID = &emp.PositionID
	return vr, nil
}

func (r *vacationRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []vacation.VacationRequest
	for rows.Next() {
		vr, err := scanVacationRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, vr)
	}
	return requests, rows.Err()
}

// Create implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) Create(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	now := time.Now().UTC()
	query := `
		INSERT INTO vacation_requests (id, employee_id, vacation_type_id, start_date, end_date, comment, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		request.ID,
		request.EmployeeID,
		request.VacationTypeID,
		calendar.Format(request.StartDate),
		calendar.Format(request.EndDate),
		nullString(request.Comment),
		string(request.Status),
		FormatTimestamp(now),
		FormatTimestamp(now),
	)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	request.CreatedAt = now
	request.UpdatedAt = now
	return request, nil
}

// GetByID implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	vr, err := scanVacationRequest(q.QueryRowContext(ctx, vacationRequestSelect+` WHERE vr.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vacation.VacationRequest{}, vacation.ErrVacationRequestNotFound
		}
		return vacation.VacationRequest{}, fmt.Errorf("failed to get vacation request with id %s: %w", id, err)
	}
	return vr, nil
}

// GetByIDForUpdate implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (vacation.VacationRequest, error) {
	return r.GetByID(ctx, id)
}

// ListApproved implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListApproved(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE vr.employee_id = ? AND vr.status = ?
		ORDER BY vr.start_date`, employeeID, string(vacation.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations of employee %s: %w", employeeID, err)
	}
	return requests, nil
}

// ListApprovedByDeptAndPosition implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListApprovedByDeptAndPosition(ctx context.Context, departmentID, positionID, excludeEmployeeID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE e.department_id = ? AND e.position_id = ? AND vr.employee_id <> ? AND vr.status = ?
		ORDER BY vr.start_date`, departmentID, positionID, excludeEmployeeID, string(vacation.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations of department %s: %w", departmentID, err)
	}
	return requests, nil
}

// ListByEmployee implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE vr.employee_id = ?
		ORDER BY vr.created_at DESC, vr.id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations of employee %s: %w", employeeID, err)
	}
	return requests, nil
}

// ListByDepartment implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE e.department_id = ?
		ORDER BY vr.created_at DESC, vr.id`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations of department %s: %w", departmentID, err)
	}
	return requests, nil
}

// Update implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) Update(ctx context.Context, request vacation.VacationRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_requests
		SET status = ?, comment = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := q.ExecContext(ctx, query,
		string(request.Status),
		nullString(request.Comment),
		FormatTimestamp(time.Now()),
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vacation request with id %s: %w", request.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update vacation request with id %s: %w", request.ID, err)
	}
	if affected == 0 {
		return vacation.ErrVacationRequestNotFound
	}

	return nil
}
