package vacation

import (
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// DaysPerHalfYear is earned for every completed six-month period of service.
const DaysPerHalfYear = 14

var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(365)
	two           = decimal.NewFromInt(2)
)

type AccrualCalculator struct{}

func NewAccrualCalculator() *AccrualCalculator {
	return &AccrualCalculator{}
}

// Calculate returns the vacation days earned from hireDate up to asOf.
// Service length is approximated from calendar components: whole years,
// months as twelfths and days as 365ths.
func (c *AccrualCalculator) Calculate(hireDate, asOf time.Time) int {
	hire := calendar.Normalize(hireDate)
	now := calendar.Normalize(asOf)
	if now.Before(hire) {
		return 0
	}

	years := c.yearsElapsed(hire, now)
	halfYears := years.Mul(two).Floor().IntPart()
	if halfYears < 1 {
		return 0
	}
	return int(halfYears) * DaysPerHalfYear
}

func (c *AccrualCalculator) yearsElapsed(hire, asOf time.Time) decimal.Decimal {
	years := decimal.NewFromInt(int64(asOf.Year() - hire.Year()))
	months := decimal.NewFromInt(int64(asOf.Month() - hire.Month())).Div(monthsPerYear)
	days := decimal.NewFromInt(int64(asOf.Day() - hire.Day())).Div(daysPerYear)
	return years.Add(months).Add(days)
}
