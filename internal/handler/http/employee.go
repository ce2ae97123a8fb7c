package http

import (
	"net/http"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
)

type EmployeeHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateVacationDays(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	vacationService vacation.Service
	clock           calendar.Clock
}

func NewEmployeeHandler(employeeService employee.EmployeeService, vacationService vacation.Service, clock calendar.Clock) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		vacationService: vacationService,
		clock:           clock,
	}
}

// GetMe implements EmployeeHandler.
func (h *employeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.employeeService.GetProfile(r.Context(), identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// UpdateVacationDays implements EmployeeHandler. It runs the same
// recalculation as the scheduled job, synchronously.
func (h *employeeHandlerImpl) UpdateVacationDays(w http.ResponseWriter, r *http.Request) {
	result, err := h.vacationService.RecalculateAll(r.Context(), h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation days recalculated", result)
}
