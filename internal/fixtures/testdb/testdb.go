// Package testdb opens seeded in-memory stores for package tests.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/sqlite"
	"github.com/google/uuid"
)

// Reference data IDs
const (
	DepartmentEngineering = "engineering"
	DepartmentSales       = "sales"

	PositionDeveloper = "developer"
	PositionAnalyst   = "analyst"

	RoleManager  = "manager"
	RoleEmployee = "employee"

	VacationTypeAnnual = "annual"
)

var referenceRows = map[string][][2]string{
	"departments":    {{DepartmentEngineering, "Engineering"}, {DepartmentSales, "Sales"}},
	"positions":      {{PositionDeveloper, "Developer"}, {PositionAnalyst, "Analyst"}},
	"roles":          {{RoleManager, "Manager"}, {RoleEmployee, "Employee"}},
	"vacation_types": {{VacationTypeAnnual, "Annual vacation"}},
}

// EmployeeSpec describes an employee row to insert. Zero fields fall back to
// an engineering developer hired on 2020-01-01.
type EmployeeSpec struct {
	DepartmentID string
	PositionID   string
	RoleID       string
	FirstName    string
	LastName     string
	HireDate     time.Time
	Accumulated  int
	Total        int
}

// Store fills an embedded database with reference data, employees and
// requests for tests.
type Store struct {
	DB  *sql.DB
	seq int
}

// NewStore opens a migrated in-memory database with reference data.
func NewStore(ctx context.Context) (*Store, error) {
	db, err := database.NewSQLiteDB(":memory:")
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	for table, rows := range referenceRows {
		for _, row := range rows {
			query := fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", table)
			if _, err := db.ExecContext(ctx, query, row[0], row[1]); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to seed %s: %w", table, err)
			}
		}
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// AddEmployee inserts an employee and returns it as stored.
func (s *Store) AddEmployee(ctx context.Context, spec EmployeeSpec) (employee.Employee, error) {
	s.seq++
	if spec.DepartmentID == "" {
		spec.DepartmentID = DepartmentEngineering
	}
	if spec.PositionID == "" {
		spec.PositionID = PositionDeveloper
	}
	if spec.RoleID == "" {
		spec.RoleID = RoleEmployee
	}
	if spec.FirstName == "" {
		spec.FirstName = fmt.Sprintf("Employee%d", s.seq)
	}
	if spec.LastName == "" {
		spec.LastName = "Tester"
	}
	if spec.HireDate.IsZero() {
		spec.HireDate = calendar.Date(2020, time.January, 1)
	}

	id := uuid.Must(uuid.NewV7()).String()
	// Distinct creation instants keep manager lookup order stable.
	created := time.Date(2020, time.January, 1, 0, 0, s.seq, 0, time.UTC)

	query := `
		INSERT INTO employees (id, department_id, position_id, role_id, first_name, last_name, email, hire_date,
			accumulated_vacation_days, total_accumulated_vacation_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.ExecContext(ctx, query,
		id, spec.DepartmentID, spec.PositionID, spec.RoleID, spec.FirstName, spec.LastName,
		fmt.Sprintf("employee%d@example.com", s.seq),
		calendar.Format(spec.HireDate),
		spec.Accumulated, spec.Total,
		sqlite.FormatTimestamp(created), sqlite.FormatTimestamp(created),
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to seed employee: %w", err)
	}

	return sqlite.NewEmployeeRepository(s.DB).GetByID(ctx, id)
}

// AddRequest inserts a request in the given status without touching balances.
func (s *Store) AddRequest(ctx context.Context, employeeID string, start, end time.Time, status vacation.Status) (vacation.VacationRequest, error) {
	repo := sqlite.NewVacationRequestRepository(s.DB)
	created, err := repo.Create(ctx, vacation.VacationRequest{
		ID:             uuid.Must(uuid.NewV7()).String(),
		EmployeeID:     employeeID,
		VacationTypeID: VacationTypeAnnual,
		StartDate:      start,
		EndDate:        end,
		Status:         status,
	})
	if err != nil {
		return vacation.VacationRequest{}, err
	}
	return repo.GetByID(ctx, created.ID)
}
