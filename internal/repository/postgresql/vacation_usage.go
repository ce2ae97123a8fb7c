package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
)

type vacationUsageRepositoryImpl struct {
	db *database.DB
}

func NewVacationUsageRepository(db *database.DB) vacation.UsageRepository {
	return &vacationUsageRepositoryImpl{db: db}
}

// CreateIfAbsent implements vacation.UsageRepository.
func (r *vacationUsageRepositoryImpl) CreateIfAbsent(ctx context.Context, usage vacation.VacationUsage) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_usages (id, employee_id, vacation_type_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, start_date, end_date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		usage.ID,
		usage.EmployeeID,
		usage.VacationTypeID,
		usage.StartDate,
		usage.EndDate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create vacation usage: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByEmployee implements vacation.UsageRepository.
func (r *vacationUsageRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.VacationUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, vacation_type_id, start_date, end_date, created_at
		FROM vacation_usages
		WHERE employee_id = $1
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation usages: %w", err)
	}
	defer rows.Close()

	var usages []vacation.VacationUsage
	for rows.Next() {
		var u vacation.VacationUsage
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.VacationTypeID, &u.StartDate, &u.EndDate, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vacation usage: %w", err)
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}
