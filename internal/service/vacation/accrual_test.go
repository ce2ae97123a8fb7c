package vacation

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
)

func TestAccrualCalculator_Calculate(t *testing.T) {
	c := NewAccrualCalculator()
	cases := []struct {
		name       string
		hire, asOf time.Time
		want       int
	}{
		{"one year", calendar.Date(2023, time.December, 4), calendar.Date(2024, time.December, 4), 28},
		{"before hire", calendar.Date(2024, time.March, 1), calendar.Date(2024, time.February, 28), 0},
		{"hire day", calendar.Date(2024, time.March, 1), calendar.Date(2024, time.March, 1), 0},
		{"five months", calendar.Date(2024, time.January, 15), calendar.Date(2024, time.June, 15), 0},
		{"exactly six months across year", calendar.Date(2023, time.December, 4), calendar.Date(2024, time.June, 4), 14},
		{"one day short of six months", calendar.Date(2023, time.December, 4), calendar.Date(2024, time.June, 3), 0},
		{"month end hire", calendar.Date(2020, time.January, 31), calendar.Date(2020, time.July, 30), 0},
		{"two and a half years", calendar.Date(2020, time.January, 1), calendar.Date(2022, time.July, 1), 70},
		{"just under three years", calendar.Date(2020, time.January, 1), calendar.Date(2022, time.December, 31), 70},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Calculate(tc.hire, tc.asOf))
		})
	}
}

func TestAccrualCalculator_IgnoresClockTime(t *testing.T) {
	c := NewAccrualCalculator()
	hire := time.Date(2023, time.December, 4, 18, 30, 0, 0, time.UTC)
	asOf := time.Date(2024, time.December, 4, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 28, c.Calculate(hire, asOf))
}

func TestAccrualCalculator_MonotonicAndStepped(t *testing.T) {
	c := NewAccrualCalculator()
	hires := []time.Time{
		calendar.Date(2019, time.January, 31),
		calendar.Date(2019, time.February, 28),
		calendar.Date(2020, time.February, 29),
		calendar.Date(2021, time.August, 15),
	}
	for _, hire := range hires {
		prev := 0
		for d := hire; d.Before(hire.AddDate(4, 0, 0)); d = d.AddDate(0, 0, 1) {
			got := c.Calculate(hire, d)
			assert.GreaterOrEqual(t, got, prev, "hire %s as of %s", calendar.Format(hire), calendar.Format(d))
			assert.Zero(t, got%DaysPerHalfYear)
			prev = got
		}
	}
}
