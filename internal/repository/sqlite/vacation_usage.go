package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

type vacationUsageRepositoryImpl struct {
	db *sql.DB
}

func NewVacationUsageRepository(db *sql.DB) vacation.UsageRepository {
	return &vacationUsageRepositoryImpl{db: db}
}

// CreateIfAbsent implements vacation.UsageRepository.
func (r *vacationUsageRepositoryImpl) CreateIfAbsent(ctx context.Context, usage vacation.VacationUsage) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_usages (id, employee_id, vacation_type_id, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, start_date, end_date) DO NOTHING
	`

	res, err := q.ExecContext(ctx, query,
		usage.ID,
		usage.EmployeeID,
		usage.VacationTypeID,
		calendar.Format(usage.StartDate),
		calendar.Format(usage.EndDate),
		FormatTimestamp(time.Now()),
	)
	if err != nil {
		return false, fmt.Errorf("failed to create vacation usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create vacation usage: %w", err)
	}

	return affected == 1, nil
}

// ListByEmployee implements vacation.UsageRepository.
func (r *vacationUsageRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.VacationUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, vacation_type_id, start_date, end_date, created_at
		FROM vacation_usages
		WHERE employee_id = ?
		ORDER BY start_date
	`

	rows, err := q.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation usages: %w", err)
	}
	defer rows.Close()

	var usages []vacation.VacationUsage
	for rows.Next() {
		var (
			u                     vacation.VacationUsage
			start, end, createdAt string
		)
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.VacationTypeID, &start, &end, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vacation usage: %w", err)
		}
		if u.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		if u.EndDate, err = parseDate(end); err != nil {
			return nil, err
		}
		if u.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}
