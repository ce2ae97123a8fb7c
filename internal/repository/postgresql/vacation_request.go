package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const vacationRequestSelect = `
	SELECT vr.id, vr.employee_id, vr.vacation_type_id, vr.start_date, vr.end_date, vr.comment, vr.status,
		vr.created_at, vr.updated_at, e.first_name, e.last_name, e.middle_name, e.department_id, e.position_id
	FROM vacation_requests vr
	INNER JOIN employees e ON vr.employee_id = e.id`

type vacationRequestRepositoryImpl struct {
	db *database.DB
}

func NewVacationRequestRepository(db *database.DB) vacation.RequestRepository {
	return &vacationRequestRepositoryImpl{db: db}
}

func scanVacationRequest(row pgx.Row) (vacation.VacationRequest, error) {
	var (
		vr     vacation.VacationRequest
		status string
		emp    employee.Employee
	)
	err := row.Scan(
		&vr.ID, &vr.EmployeeID, &vr.VacationTypeID, &vr.StartDate, &vr.EndDate, &vr.Comment, &status,
		&vr.CreatedAt, &vr.UpdatedAt, &emp.FirstName, &emp.LastName, &emp.MiddleName,
		&emp.DepartmentID, &emp.PositionID,
	)
	if err != nil {
		return vacation.VacationRequest{}, err
	}

	vr.Status = vacation.Status(status)
	name := emp.FullName()
	vr.EmployeeName = &name
	vr.DepartmentID = &emp.DepartmentID
	vr.PositionID = &emp.PositionID
	return vr, nil
}

func (r *vacationRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
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

	query := `
		INSERT INTO vacation_requests (id, employee_id, vacation_type_id, start_date, end_date, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.VacationTypeID,
		request.StartDate,
		request.EndDate,
		request.Comment,
		string(request.Status),
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	return request, nil
}

// GetByID implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	return r.get(ctx, vacationRequestSelect+` WHERE vr.id = $1`, id)
}

// GetByIDForUpdate implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (vacation.VacationRequest, error) {
	return r.get(ctx, vacationRequestSelect+` WHERE vr.id = $1 FOR UPDATE OF vr`, id)
}

func (r *vacationRequestRepositoryImpl) get(ctx context.Context, query, id string) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	vr, err := scanVacationRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.VacationRequest{}, vacation.ErrVacationRequestNotFound
		}
		return vacation.VacationRequest{}, fmt.Errorf("failed to get vacation request with id %s: %w", id, err)
	}
	return vr, nil
}

// ListApproved implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListApproved(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE vr.employee_id = $1 AND vr.status = $2
		ORDER BY vr.start_date`, employeeID, string(vacation.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations of employee %s: %w", employeeID, err)
	}
	return requests, nil
}

// ListApprovedByDeptAndPosition implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListApprovedByDeptAndPosition(ctx context.Context, departmentID, positionID, excludeEmployeeID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE e.department_id = $1 AND e.position_id = $2 AND vr.employee_id <> $3 AND vr.status = $4
		ORDER BY vr.start_date`, departmentID, positionID, excludeEmployeeID, string(vacation.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations of department %s: %w", departmentID, err)
	}
	return requests, nil
}

// ListByEmployee implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE vr.employee_id = $1
		ORDER BY vr.created_at DESC, vr.id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations of employee %s: %w", employeeID, err)
	}
	return requests, nil
}

// ListByDepartment implements vacation.RequestRepository.
func (r *vacationRequestRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string) ([]vacation.VacationRequest, error) {
	requests, err := r.list(ctx, vacationRequestSelect+`
		WHERE e.department_id = $1
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
		SET status = $1, comment = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, string(request.Status), request.Comment, request.ID)
	if err != nil {
		return fmt.Errorf("failed to update vacation request with id %s: %w", request.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return vacation.ErrVacationRequestNotFound
	}

	return nil
}
