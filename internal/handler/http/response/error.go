package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Vacation rules
	case errors.Is(err, vacation.ErrInvalidRange):
		VacationRejected(w, "INVALID_RANGE", err.Error())
	case errors.Is(err, vacation.ErrInsufficientBalance):
		VacationRejected(w, "INSUFFICIENT_BALANCE", err.Error())
	case errors.Is(err, vacation.ErrBelowMinimumReserve):
		VacationRejected(w, "BELOW_MINIMUM_RESERVE", err.Error())
	case errors.Is(err, vacation.ErrLongVacationRequired):
		VacationRejected(w, "LONG_VACATION_REQUIRED", err.Error())
	case errors.Is(err, vacation.ErrInvalidTransition):
		VacationRejected(w, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, vacation.ErrManagerNotFound):
		UnprocessableEntity(w, "Department has no manager")

	// Lookup and access
	case errors.Is(err, vacation.ErrVacationRequestNotFound):
		NotFound(w, "Vacation request not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, vacation.ErrForbidden):
		Forbidden(w, err.Error())

	// Concurrency is checked before upstream; a conflict can wrap both.
	case errors.Is(err, vacation.ErrConcurrencyConflict):
		Conflict(w, "Vacation data was modified concurrently, please retry")
	case errors.Is(err, vacation.ErrUpstreamUnavailable):
		slog.Error("upstream failure", "error", err)
		ServiceUnavailable(w, "Service temporarily unavailable")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
