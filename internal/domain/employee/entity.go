package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID           string
	DepartmentID string
	PositionID   string
	RoleID       string
	FirstName    string
	LastName     string
	MiddleName   *string
	Email        string
	HireDate     time.Time

	// Balance fields. Only the vacation ledger and the recalculation job write them.
	AccumulatedVacationDays      int
	TotalAccumulatedVacationDays int

	// Version is bumped on every balance write and checked by Update.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName renders "Last First Middle", skipping empty parts.
func (e Employee) FullName() string {
	parts := []string{e.LastName, e.FirstName}
	if e.MiddleName != nil {
		parts = append(parts, *e.MiddleName)
	}
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// ShortName renders "First Last".
func (e Employee) ShortName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
