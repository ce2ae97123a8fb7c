package vacation

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
)

// RecalculateAll implements vacation.Service. Each employee is recomputed in
// its own transaction; a failure is logged and counted and the run moves on.
// Cancellation is checked between employees.
func (s *VacationServiceImpl) RecalculateAll(ctx context.Context, asOf time.Time) (vacation.RecalculationResult, error) {
	var result vacation.RecalculationResult

	ids, err := s.employees.ListIDs(ctx)
	if err != nil {
		return result, upstream("list employees", err)
	}

	start := time.Now()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("vacation recalculation interrupted",
				"updated", result.UpdatedCount, "failed", result.FailedCount, "remaining", len(ids)-result.UpdatedCount-result.FailedCount)
			return result, err
		}

		if err := s.recalculateEmployee(ctx, id, asOf); err != nil {
			result.FailedCount++
			s.logger.Error("vacation recalculation failed for employee", "employee_id", id, "error", err)
			continue
		}
		result.UpdatedCount++
	}

	s.logger.Info("vacation recalculation finished",
		"as_of", asOf.Format(time.DateOnly),
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
		"duration", time.Since(start),
	)
	return result, nil
}

func (s *VacationServiceImpl) recalculateEmployee(ctx context.Context, employeeID string, asOf time.Time) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByIDForUpdate(ctx, employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return err
			}
			return upstream("lock employee", err)
		}

		approved, err := s.requests.ListApproved(ctx, emp.ID)
		if err != nil {
			return upstream("list approved vacations", err)
		}

		updated := s.ledger.Recompute(emp, dayCounts(approved), asOf)
		if updated.AccumulatedVacationDays == emp.AccumulatedVacationDays &&
			updated.TotalAccumulatedVacationDays == emp.TotalAccumulatedVacationDays {
			return nil
		}

		if _, err := s.employees.Update(ctx, updated); err != nil {
			if errors.Is(err, employee.ErrVersionConflict) {
				return err
			}
			return upstream("update employee balance", err)
		}
		return nil
	})
	return conflict(err)
}
