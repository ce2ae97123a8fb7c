package vacation

import (
	"testing"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/stretchr/testify/assert"
)

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator()
	cases := []struct {
		name            string
		balance, days   int
		hasLongApproved bool
		want            error
	}{
		{"empty range", 28, 0, false, vacation.ErrInvalidRange},
		{"reversed range", 28, -3, true, vacation.ErrInvalidRange},
		{"more than balance", 10, 11, true, vacation.ErrInsufficientBalance},
		{"negative balance", -2, 1, true, vacation.ErrInsufficientBalance},
		{"long request within reserve", 28, 15, false, nil},
		{"long request breaks reserve", 20, 16, false, vacation.ErrBelowMinimumReserve},
		{"reserve applies to long requests", 20, 15, false, vacation.ErrBelowMinimumReserve},
		{"reserve exactly kept", 21, 14, false, nil},
		{"short request without long vacation", 20, 10, false, vacation.ErrLongVacationRequired},
		{"two week request", 28, 14, false, nil},
		{"short request leaving exactly fourteen", 20, 6, false, nil},
		{"short request after long vacation", 20, 10, true, nil},
		{"short request breaks reserve after long", 10, 4, true, vacation.ErrBelowMinimumReserve},
		{"insufficient wins over reserve", 5, 6, false, vacation.ErrInsufficientBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.balance, tc.days, tc.hasLongApproved)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, vacation.IsValidationError(err))
		})
	}
}

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		from, to vacation.Status
		noop     bool
		err      error
	}{
		{vacation.StatusPending, vacation.StatusApproved, false, nil},
		{vacation.StatusPending, vacation.StatusRejected, false, nil},
		{vacation.StatusApproved, vacation.StatusRejected, false, nil},
		{vacation.StatusRejected, vacation.StatusApproved, false, nil},
		{vacation.StatusApproved, vacation.StatusApproved, true, nil},
		{vacation.StatusRejected, vacation.StatusRejected, true, nil},
		{vacation.StatusApproved, vacation.StatusPending, false, vacation.ErrInvalidTransition},
		{vacation.StatusPending, vacation.StatusPending, false, vacation.ErrInvalidTransition},
		{vacation.StatusPending, vacation.Status("cancelled"), false, vacation.ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			noop, err := checkTransition(tc.from, tc.to)
			assert.Equal(t, tc.noop, noop)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger(NewAccrualCalculator())
	emp := newEmployeeValue(t)

	got := l.Recompute(emp, []int{5, 14}, mustDate(t, "2024-12-04"))
	assert.Equal(t, 28, got.TotalAccumulatedVacationDays)
	assert.Equal(t, 9, got.AccumulatedVacationDays)

	got = l.Recompute(emp, []int{30}, mustDate(t, "2024-12-04"))
	assert.Equal(t, -2, got.AccumulatedVacationDays, "negative balances are kept")

	got = l.Debit(got, 3)
	assert.Equal(t, -5, got.AccumulatedVacationDays)
	got = l.Credit(got, 10)
	assert.Equal(t, 5, got.AccumulatedVacationDays)
	assert.Equal(t, 28, got.TotalAccumulatedVacationDays)
}
