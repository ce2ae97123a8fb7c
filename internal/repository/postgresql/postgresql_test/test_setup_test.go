package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/postgresql"
)

// TestDatabaseSetup holds a migrated test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to reset test database: %v", err)
	}
	if err := setup.seedReference(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to seed test database: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows from every table
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"notifications",
		"vacation_usages",
		"vacation_requests",
		"employees",
		"vacation_types",
		"roles",
		"positions",
		"departments",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) seedReference(ctx context.Context) error {
	statements := []string{
		`INSERT INTO departments (id, name) VALUES ('engineering', 'Engineering')`,
		`INSERT INTO positions (id, name) VALUES ('developer', 'Developer')`,
		`INSERT INTO roles (id, name) VALUES ('manager', 'Manager'), ('employee', 'Employee')`,
		`INSERT INTO vacation_types (id, name) VALUES ('annual', 'Annual vacation')`,
	}
	for _, stmt := range statements {
		if _, err := t.DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddEmployee inserts an engineering developer with the given role and balance
func (t *TestDatabaseSetup) AddEmployee(ctx context.Context, id, roleID string, balance int) error {
	_, err := t.DB.Exec(ctx, `
		INSERT INTO employees (id, department_id, position_id, role_id, first_name, last_name, email, hire_date,
			accumulated_vacation_days, total_accumulated_vacation_days)
		VALUES ($1, 'engineering', 'developer', $2, 'Test', $1, $1 || '@example.com', '2023-12-04', $3, $3)
	`, id, roleID, balance)
	return err
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
