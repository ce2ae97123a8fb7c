package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type vacationHandlerImpl struct {
	vacationService vacation.Service
	managerRoleID   string
}

func NewVacationHandler(vacationService vacation.Service, managerRoleID string) VacationHandler {
	return &vacationHandlerImpl{
		vacationService: vacationService,
		managerRoleID:   managerRoleID,
	}
}

// CreateRequest implements VacationHandler.
func (h *vacationHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var body vacation.CreateVacationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := body.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := body.ToRequest(identity.EmployeeID, identity.DepartmentID)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.vacationService.CreateRequest(r.Context(), req)
	managerNotified := true
	if errors.Is(err, vacation.ErrManagerNotFound) && result.Request.ID != "" {
		managerNotified = false
		err = nil
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var warnings []response.Warning
	if len(result.Warnings) > 0 {
		warnings = append(warnings, response.Warning{
			Code:    response.WarningVacationOverlap,
			Message: vacation.OverlapWarningMessage,
			Details: result.Warnings,
		})
	}
	if !managerNotified {
		warnings = append(warnings, response.Warning{
			Code:    response.WarningManagerNotNotified,
			Message: "Department has no manager, the request awaits assignment",
		})
	}

	response.Created(w, "Vacation request submitted", vacation.NewCreateVacationResponse(result, managerNotified), warnings...)
}

// GetMyRequests implements VacationHandler.
func (h *vacationHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.vacationService.ListMyRequests(r.Context(), identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]vacation.VacationResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, vacation.NewVacationResponse(req))
	}
	response.Success(w, out)
}

// GetRequest implements VacationHandler.
func (h *vacationHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	req, err := h.vacationService.GetRequest(r.Context(), h.viewer(identity), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, vacation.NewVacationResponse(req))
}

// ListRequests implements VacationHandler. Managers see their department.
func (h *vacationHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	items, err := h.vacationService.ListDepartmentRequests(r.Context(), identity.DepartmentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, vacation.NewDepartmentVacationResponses(items))
}

// UpdateStatus implements VacationHandler.
func (h *vacationHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	var body vacation.UpdateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := body.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	err := h.vacationService.DecideRequest(r.Context(), vacation.DecideVacationRequest{
		RequestID:    requestID,
		DepartmentID: identity.DepartmentID,
		Status:       vacation.Status(body.Status),
		Comment:      body.Comment,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.vacationService.GetRequest(r.Context(), h.viewer(identity), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request status updated", vacation.NewVacationResponse(req))
}

func (h *vacationHandlerImpl) viewer(identity jwt.Identity) vacation.Viewer {
	return vacation.Viewer{
		EmployeeID:   identity.EmployeeID,
		DepartmentID: identity.DepartmentID,
		IsManager:    identity.RoleID == h.managerRoleID,
	}
}
