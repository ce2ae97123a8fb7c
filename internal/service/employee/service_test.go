package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/fixtures/testdb"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	store, err := testdb.NewStore(ctx)
	require.NoError(t, err)
	defer store.Close()

	emp, err := store.AddEmployee(ctx, testdb.EmployeeSpec{
		FirstName:   "Anna",
		LastName:    "Smirnova",
		HireDate:    calendar.Date(2023, time.December, 4),
		Accumulated: 21,
		Total:       28,
	})
	require.NoError(t, err)

	svc := NewEmployeeService(sqlite.NewEmployeeRepository(store.DB))

	profile, err := svc.GetProfile(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.FirstName)
	assert.Equal(t, "2023-12-04", profile.HireDate)
	assert.Equal(t, 21, profile.AccumulatedVacationDays)
	assert.Equal(t, 28, profile.TotalAccumulatedVacationDays)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
