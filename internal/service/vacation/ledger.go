package vacation

import (
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
)

// Ledger keeps an employee's balance fields consistent with the approved
// requests. It never persists; callers write the returned employee inside
// their own transaction.
type Ledger struct {
	accrual *AccrualCalculator
}

func NewLedger(accrual *AccrualCalculator) *Ledger {
	return &Ledger{accrual: accrual}
}

// Recompute sets Total from accrual and Accumulated to Total minus the
// approved day counts. The result may be negative.
func (l *Ledger) Recompute(emp employee.Employee, approvedDayCounts []int, asOf time.Time) employee.Employee {
	used := 0
	for _, days := range approvedDayCounts {
		used += days
	}
	emp.TotalAccumulatedVacationDays = l.accrual.Calculate(emp.HireDate, asOf)
	emp.AccumulatedVacationDays = emp.TotalAccumulatedVacationDays - used
	return emp
}

// Debit spends days. Authorization happens before this is called.
func (l *Ledger) Debit(emp employee.Employee, days int) employee.Employee {
	emp.AccumulatedVacationDays -= days
	return emp
}

// Credit returns days to the balance.
func (l *Ledger) Credit(emp employee.Employee, days int) employee.Employee {
	emp.AccumulatedVacationDays += days
	return emp
}

func dayCounts(requests []vacation.VacationRequest) []int {
	counts := make([]int, 0, len(requests))
	for _, r := range requests {
		counts = append(counts, r.DayCount())
	}
	return counts
}
