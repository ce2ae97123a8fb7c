package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/fixtures/testdb"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *testdb.Store {
	t.Helper()
	store, err := testdb.NewStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmployeeRepository_UpdateChecksVersion(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := sqlite.NewEmployeeRepository(store.DB)

	emp, err := store.AddEmployee(ctx, testdb.EmployeeSpec{Accumulated: 10, Total: 10})
	require.NoError(t, err)

	stale := emp
	emp.AccumulatedVacationDays = 5
	updated, err := repo.Update(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, emp.Version+1, updated.Version)

	stale.AccumulatedVacationDays = 3
	_, err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, employee.ErrVersionConflict)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AccumulatedVacationDays)

	missing := emp
	missing.ID = "missing"
	_, err = repo.Update(ctx, missing)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_FindManager(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := sqlite.NewEmployeeRepository(store.DB)

	_, err := store.AddEmployee(ctx, testdb.EmployeeSpec{})
	require.NoError(t, err)
	manager, err := store.AddEmployee(ctx, testdb.EmployeeSpec{RoleID: testdb.RoleManager, FirstName: "Maria", LastName: "Boss"})
	require.NoError(t, err)

	got, err := repo.FindManager(ctx, testdb.DepartmentEngineering, testdb.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, got.ID)

	_, err = repo.FindManager(ctx, testdb.DepartmentSales, testdb.RoleManager)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestVacationRequestRepository_ListApprovedByDeptAndPosition(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := sqlite.NewVacationRequestRepository(store.DB)

	me, err := store.AddEmployee(ctx, testdb.EmployeeSpec{})
	require.NoError(t, err)
	peer, err := store.AddEmployee(ctx, testdb.EmployeeSpec{FirstName: "Ivan", LastName: "Petrov"})
	require.NoError(t, err)
	analyst, err := store.AddEmployee(ctx, testdb.EmployeeSpec{PositionID: testdb.PositionAnalyst})
	require.NoError(t, err)

	jul1, jul10 := calendar.Date(2024, time.July, 1), calendar.Date(2024, time.July, 10)
	_, err = store.AddRequest(ctx, me.ID, jul1, jul10, vacation.StatusApproved)
	require.NoError(t, err)
	peerReq, err := store.AddRequest(ctx, peer.ID, jul1, jul10, vacation.StatusApproved)
	require.NoError(t, err)
	_, err = store.AddRequest(ctx, peer.ID, jul1, jul10, vacation.StatusPending)
	require.NoError(t, err)
	_, err = store.AddRequest(ctx, analyst.ID, jul1, jul10, vacation.StatusApproved)
	require.NoError(t, err)

	got, err := repo.ListApprovedByDeptAndPosition(ctx, testdb.DepartmentEngineering, testdb.PositionDeveloper, me.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, peerReq.ID, got[0].ID)
	require.NotNil(t, got[0].EmployeeName)
	assert.Equal(t, "Petrov Ivan", *got[0].EmployeeName)

	byDept, err := repo.ListByDepartment(ctx, testdb.DepartmentEngineering)
	require.NoError(t, err)
	assert.Len(t, byDept, 4)
}

func TestVacationRequestRepository_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := sqlite.NewVacationRequestRepository(store.DB)

	emp, err := store.AddEmployee(ctx, testdb.EmployeeSpec{})
	require.NoError(t, err)
	req, err := store.AddRequest(ctx, emp.ID, calendar.Date(2024, time.March, 1), calendar.Date(2024, time.March, 3), vacation.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 3, req.DayCount())

	comment := "enjoy"
	req.Status = vacation.StatusApproved
	req.Comment = &comment
	require.NoError(t, repo.Update(ctx, req))

	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusApproved, got.Status)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "enjoy", *got.Comment)
	assert.Equal(t, calendar.Date(2024, time.March, 1), got.StartDate)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, vacation.ErrVacationRequestNotFound)

	req.ID = "missing"
	assert.ErrorIs(t, repo.Update(ctx, req), vacation.ErrVacationRequestNotFound)
}

func TestVacationUsageRepository_CreateIfAbsentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := sqlite.NewVacationUsageRepository(store.DB)

	emp, err := store.AddEmployee(ctx, testdb.EmployeeSpec{})
	require.NoError(t, err)

	usage := vacation.VacationUsage{
		ID:             uuid.Must(uuid.NewV7()).String(),
		EmployeeID:     emp.ID,
		VacationTypeID: testdb.VacationTypeAnnual,
		StartDate:      calendar.Date(2024, time.August, 1),
		EndDate:        calendar.Date(2024, time.August, 14),
	}
	inserted, err := repo.CreateIfAbsent(ctx, usage)
	require.NoError(t, err)
	assert.True(t, inserted)

	usage.ID = uuid.Must(uuid.NewV7()).String()
	inserted, err = repo.CreateIfAbsent(ctx, usage)
	require.NoError(t, err)
	assert.False(t, inserted)

	usages, err := repo.ListByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, usages, 1)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	tx := sqlite.NewTransactor(store.DB)
	repo := sqlite.NewEmployeeRepository(store.DB)

	emp, err := store.AddEmployee(ctx, testdb.EmployeeSpec{Accumulated: 20, Total: 20})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := repo.GetByIDForUpdate(ctx, emp.ID)
		if err != nil {
			return err
		}
		locked.AccumulatedVacationDays = 0
		if _, err := repo.Update(ctx, locked); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.AccumulatedVacationDays)
}

func TestNotificationRepository_Outbox(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := sqlite.NewNotificationRepository(store.DB)

	emp, err := store.AddEmployee(ctx, testdb.EmployeeSpec{})
	require.NoError(t, err)
	other, err := store.AddEmployee(ctx, testdb.EmployeeSpec{})
	require.NoError(t, err)

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		n := notification.Notification{
			ID:         uuid.Must(uuid.NewV7()).String(),
			EmployeeID: emp.ID,
			Message:    "hello",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, n))
		ids = append(ids, n.ID)
	}

	pending, err := repo.ListUnpublished(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)

	require.NoError(t, repo.MarkPublished(ctx, []string{pending[0].ID, pending[1].ID}, base))
	pending, err = repo.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[2], pending[0].ID)

	assert.ErrorIs(t, repo.MarkAsRead(ctx, ids[:1], other.ID), notification.ErrNotificationNotFound)
	require.NoError(t, repo.MarkAsRead(ctx, ids[:1], emp.ID))

	unread, err := repo.CountUnread(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	list, err := repo.ListByEmployee(ctx, emp.ID, true)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
}

func TestEmployeeRepository_ListIDsWrapsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM employees`).WillReturnError(errors.New("connection reset"))

	_, err = sqlite.NewEmployeeRepository(db).ListIDs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list employees")
	assert.NoError(t, mock.ExpectationsWereMet())
}
