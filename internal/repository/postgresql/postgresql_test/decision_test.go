package postgresql_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/postgresql"
	notificationService "github.com/cmlabs-hris/vacation-planner-go/internal/service/notification"
	vacationService "github.com/cmlabs-hris/vacation-planner-go/internal/service/vacation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideRequest_ConcurrentSameRequestDebitsOnce(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.AddEmployee(ctx, "emp-1", "employee", 40))
	require.NoError(t, setup.AddEmployee(ctx, "mgr-1", "manager", 0))

	employees := postgresql.NewEmployeeRepository(setup.DB)
	notifications := postgresql.NewNotificationRepository(setup.DB)
	svc := vacationService.NewVacationService(
		postgresql.NewTransactor(setup.DB),
		employees,
		postgresql.NewVacationRequestRepository(setup.DB),
		postgresql.NewVacationUsageRepository(setup.DB),
		notificationService.NewOutboxSink(notifications),
		calendar.NewFixedClock(time.Date(2024, time.December, 4, 9, 0, 0, 0, time.UTC)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		vacationService.Config{ManagerRoleID: "manager"},
	)

	res, err := svc.CreateRequest(ctx, vacation.CreateVacationRequest{
		EmployeeID:     "emp-1",
		DepartmentID:   "engineering",
		VacationTypeID: "annual",
		StartDate:      calendar.Date(2025, time.January, 1),
		EndDate:        calendar.Date(2025, time.January, 14),
	})
	require.NoError(t, err)

	const deciders = 8
	errs := make([]error, deciders)
	var wg sync.WaitGroup
	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.DecideRequest(ctx, vacation.DecideVacationRequest{
				RequestID:    res.Request.ID,
				DepartmentID: "engineering",
				Status:       vacation.StatusApproved,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	emp, err := employees.GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 26, emp.AccumulatedVacationDays)

	inbox, err := notifications.ListByEmployee(ctx, "emp-1", false)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Your vacation request is approved", inbox[0].Message)
}
