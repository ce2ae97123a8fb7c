package main

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/vacation-planner-go/internal/config"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/sqlite"
)

// store bundles the repositories of one backing database.
type store struct {
	tx            database.Transactor
	employees     employee.EmployeeRepository
	requests      vacation.RequestRepository
	usages        vacation.UsageRepository
	notifications notification.Repository
	close         func()
}

// openStore connects to the configured database and applies the schema.
func openStore(ctx context.Context, cfg config.DatabaseConfig, dsn string) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			tx:            postgresql.NewTransactor(db),
			employees:     postgresql.NewEmployeeRepository(db),
			requests:      postgresql.NewVacationRequestRepository(db),
			usages:        postgresql.NewVacationUsageRepository(db),
			notifications: postgresql.NewNotificationRepository(db),
			close:         db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			tx:            sqlite.NewTransactor(db),
			employees:     sqlite.NewEmployeeRepository(db),
			requests:      sqlite.NewVacationRequestRepository(db),
			usages:        sqlite.NewVacationUsageRepository(db),
			notifications: sqlite.NewNotificationRepository(db),
			close:         func() { db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
