package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_VersionedUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.AddEmployee(ctx, "emp-1", "employee", 28))
	require.NoError(t, setup.AddEmployee(ctx, "mgr-1", "manager", 28))

	repo := postgresql.NewEmployeeRepository(setup.DB)

	emp, err := repo.GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2023, time.December, 4), calendar.Normalize(emp.HireDate))

	stale := emp
	emp.AccumulatedVacationDays = 13
	updated, err := repo.Update(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, emp.Version+1, updated.Version)

	_, err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, employee.ErrVersionConflict)

	manager, err := repo.FindManager(ctx, "engineering", "manager")
	require.NoError(t, err)
	assert.Equal(t, "mgr-1", manager.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestVacationRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.AddEmployee(ctx, "emp-1", "employee", 28))

	requests := postgresql.NewVacationRequestRepository(setup.DB)
	usages := postgresql.NewVacationUsageRepository(setup.DB)

	created, err := requests.Create(ctx, vacation.VacationRequest{
		ID:             "req-1",
		EmployeeID:     "emp-1",
		VacationTypeID: "annual",
		StartDate:      calendar.Date(2025, time.January, 10),
		EndDate:        calendar.Date(2025, time.January, 24),
		Status:         vacation.StatusPending,
	})
	require.NoError(t, err)

	created.Status = vacation.StatusApproved
	require.NoError(t, requests.Update(ctx, created))

	approved, err := requests.ListApproved(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, 15, approved[0].DayCount())

	usage := vacation.VacationUsage{
		ID:             "usage-1",
		EmployeeID:     "emp-1",
		VacationTypeID: "annual",
		StartDate:      created.StartDate,
		EndDate:        created.EndDate,
	}
	inserted, err := usages.CreateIfAbsent(ctx, usage)
	require.NoError(t, err)
	assert.True(t, inserted)

	usage.ID = "usage-2"
	inserted, err = usages.CreateIfAbsent(ctx, usage)
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = requests.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, vacation.ErrVacationRequestNotFound)
}

func TestTransactor_RollsBackAndOutbox(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.AddEmployee(ctx, "emp-1", "employee", 28))

	tx := postgresql.NewTransactor(setup.DB)
	repo := postgresql.NewNotificationRepository(setup.DB)
	now := time.Date(2024, time.December, 4, 9, 0, 0, 0, time.UTC)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, notification.Notification{ID: "n-0", EmployeeID: "emp-1", Message: "rolled back", CreatedAt: now}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, repo.Create(ctx, notification.Notification{ID: "n-1", EmployeeID: "emp-1", Message: "kept", CreatedAt: now}))

	pending, err := repo.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "n-1", pending[0].ID)

	require.NoError(t, repo.MarkPublished(ctx, []string{"n-1"}, now))
	pending, err = repo.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, repo.MarkAsRead(ctx, []string{"n-1"}, "emp-1"))
	unread, err := repo.CountUnread(ctx, "emp-1")
	require.NoError(t, err)
	assert.Zero(t, unread)
}
