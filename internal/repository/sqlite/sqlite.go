package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

// Dates are stored as YYYY-MM-DD text and instants as fixed-width UTC text,
// so both sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS departments (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS roles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vacation_types (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	department_id TEXT NOT NULL REFERENCES departments(id),
	position_id TEXT NOT NULL REFERENCES positions(id),
	role_id TEXT NOT NULL REFERENCES roles(id),
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	middle_name TEXT,
	email TEXT NOT NULL UNIQUE,
	hire_date TEXT NOT NULL,
	accumulated_vacation_days INTEGER NOT NULL DEFAULT 0,
	total_accumulated_vacation_days INTEGER NOT NULL DEFAULT 0,
	version INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_employees_department_role ON employees(department_id, role_id);

CREATE TABLE IF NOT EXISTS vacation_requests (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	vacation_type_id TEXT NOT NULL REFERENCES vacation_types(id),
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	comment TEXT,
	status TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS idx_vacation_requests_employee ON vacation_requests(employee_id, status);

CREATE TABLE IF NOT EXISTS vacation_usages (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	vacation_type_id TEXT NOT NULL REFERENCES vacation_types(id),
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	created_at TEXT NOT NULL,
	UNIQUE (employee_id, start_date, end_date)
);

CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	message TEXT NOT NULL,
	is_read INTEGER NOT NULL DEFAULT 0,
	is_manager_notification INTEGER NOT NULL DEFAULT 0,
	related_vacation_id TEXT REFERENCES vacation_requests(id) ON DELETE SET NULL,
	created_at TEXT NOT NULL,
	published_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_notifications_employee ON notifications(employee_id, created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_unpublished ON notifications(published_at, created_at);
`

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// FormatTimestamp renders t in the stored instant layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	return calendar.Parse(s)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '?')
	}
	return string(b)
}
