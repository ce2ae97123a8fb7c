package vacation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Config struct {
	// ManagerRoleID identifies the employee notified about new requests
	// in a department.
	ManagerRoleID string
}

type VacationServiceImpl struct {
	tx        database.Transactor
	employees employee.EmployeeRepository
	requests  vacation.RequestRepository
	usages    vacation.UsageRepository
	sink      notification.Sink
	clock     calendar.Clock
	logger    *slog.Logger
	cfg       Config

	accrual   *AccrualCalculator
	ledger    *Ledger
	validator *RequestValidator
	overlaps  *OverlapDetector
}

func NewVacationService(
	tx database.Transactor,
	employees employee.EmployeeRepository,
	requests vacation.RequestRepository,
	usages vacation.UsageRepository,
	sink notification.Sink,
	clock calendar.Clock,
	logger *slog.Logger,
	cfg Config,
) *VacationServiceImpl {
	accrual := NewAccrualCalculator()
	return &VacationServiceImpl{
		tx:        tx,
		employees: employees,
		requests:  requests,
		usages:    usages,
		sink:      sink,
		clock:     clock,
		logger:    logger,
		cfg:       cfg,
		accrual:   accrual,
		ledger:    NewLedger(accrual),
		validator: NewRequestValidator(),
		overlaps:  NewOverlapDetector(requests),
	}
}

var _ vacation.Service = (*VacationServiceImpl)(nil)

// CreateRequest implements vacation.Service.
func (s *VacationServiceImpl) CreateRequest(ctx context.Context, req vacation.CreateVacationRequest) (vacation.CreateResult, error) {
	start := calendar.Normalize(req.StartDate)
	end := calendar.Normalize(req.EndDate)

	var (
		requester      employee.Employee
		created        vacation.VacationRequest
		managerMissing bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByID(ctx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return err
			}
			return upstream("get employee", err)
		}
		if emp.DepartmentID != req.DepartmentID {
			return vacation.ErrForbidden
		}

		approved, err := s.requests.ListApproved(ctx, emp.ID)
		if err != nil {
			return upstream("list approved vacations", err)
		}
		dayCount := calendar.DaysInclusive(start, end)
		if err := s.validator.Validate(emp.AccumulatedVacationDays, dayCount, hasLongVacation(approved)); err != nil {
			return err
		}

		created, err = s.requests.Create(ctx, vacation.VacationRequest{
			ID:             uuid.Must(uuid.NewV7()).String(),
			EmployeeID:     emp.ID,
			VacationTypeID: req.VacationTypeID,
			StartDate:      start,
			EndDate:        end,
			Comment:        req.Comment,
			Status:         vacation.StatusPending,
		})
		if err != nil {
			return upstream("create vacation request", err)
		}
		name := emp.FullName()
		created.EmployeeName = &name
		created.DepartmentID = &emp.DepartmentID
		created.PositionID = &emp.PositionID

		manager, err := s.employees.FindManager(ctx, emp.DepartmentID, s.cfg.ManagerRoleID)
		switch {
		case errors.Is(err, employee.ErrEmployeeNotFound):
			managerMissing = true
		case err != nil:
			return upstream("find department manager", err)
		default:
			if err := s.emit(ctx, manager.ID, created.ID, true, fmt.Sprintf("New vacation request from %s", emp.ShortName())); err != nil {
				return err
			}
		}

		requester = emp
		return nil
	})
	if err != nil {
		return vacation.CreateResult{}, err
	}

	result := vacation.CreateResult{Request: created, Warnings: []vacation.OverlappingVacation{}}

	// The request is committed; overlap lookup failures only cost the warnings.
	warnings, err := s.overlaps.FindConflicts(ctx, requester, start, end)
	if err != nil {
		s.logger.Warn("overlap detection failed", "request_id", created.ID, "error", err)
	} else {
		result.Warnings = warnings
	}

	if managerMissing {
		s.logger.Warn("department has no manager", "department_id", requester.DepartmentID, "request_id", created.ID)
		return result, vacation.ErrManagerNotFound
	}
	return result, nil
}

// DecideRequest implements vacation.Service. A decision that loses a race
// with another writer is retried once.
func (s *VacationServiceImpl) DecideRequest(ctx context.Context, req vacation.DecideVacationRequest) error {
	err := s.decide(ctx, req)
	if errors.Is(err, vacation.ErrConcurrencyConflict) {
		s.logger.Info("retrying vacation decision after conflict", "request_id", req.RequestID, "error", err)
		err = s.decide(ctx, req)
	}
	return err
}

func (s *VacationServiceImpl) decide(ctx context.Context, req vacation.DecideVacationRequest) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, vacation.ErrVacationRequestNotFound) {
				return err
			}
			return upstream("get vacation request", err)
		}
		if request.DepartmentID == nil || *request.DepartmentID != req.DepartmentID {
			return vacation.ErrForbidden
		}

		noop, err := checkTransition(request.Status, req.Status)
		if err != nil {
			return err
		}
		if noop {
			return nil
		}

		emp, err := s.employees.GetByIDForUpdate(ctx, request.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return err
			}
			return upstream("lock employee", err)
		}

		days := request.DayCount()
		balanceChanged := true
		switch {
		case req.Status == vacation.StatusApproved:
			if emp.AccumulatedVacationDays < days {
				return vacation.ErrInsufficientBalance
			}
			emp = s.ledger.Debit(emp, days)
			if _, err := s.usages.CreateIfAbsent(ctx, vacation.VacationUsage{
				ID:             uuid.Must(uuid.NewV7()).String(),
				EmployeeID:     emp.ID,
				VacationTypeID: request.VacationTypeID,
				StartDate:      request.StartDate,
				EndDate:        request.EndDate,
			}); err != nil {
				return upstream("record vacation usage", err)
			}
		case request.Status == vacation.StatusApproved:
			emp = s.ledger.Credit(emp, days)
		default:
			balanceChanged = false
		}

		if balanceChanged {
			if _, err := s.employees.Update(ctx, emp); err != nil {
				if errors.Is(err, employee.ErrVersionConflict) {
					return err
				}
				return upstream("update employee balance", err)
			}
		}

		request.Status = req.Status
		request.Comment = req.Comment
		if err := s.requests.Update(ctx, request); err != nil {
			return upstream("update vacation request", err)
		}

		return s.emit(ctx, request.EmployeeID, request.ID, false, s.decisionMessage(request))
	})
	return conflict(err)
}

func (s *VacationServiceImpl) decisionMessage(request vacation.VacationRequest) string {
	status := cases.Lower(language.English).String(request.Status.DisplayName())
	msg := fmt.Sprintf("Your vacation request is %s", status)
	if request.Comment != nil && *request.Comment != "" {
		msg += fmt.Sprintf(". Comment: %s", *request.Comment)
	}
	return msg
}

func (s *VacationServiceImpl) emit(ctx context.Context, recipientID, vacationID string, toManager bool, message string) error {
	err := s.sink.Emit(ctx, notification.Notification{
		ID:                    uuid.Must(uuid.NewV7()).String(),
		EmployeeID:            recipientID,
		Message:               message,
		IsManagerNotification: toManager,
		RelatedVacationID:     &vacationID,
		CreatedAt:             s.clock.Now().UTC(),
	})
	if err != nil {
		return upstream("emit notification", err)
	}
	return nil
}

// GetRequest implements vacation.Service.
func (s *VacationServiceImpl) GetRequest(ctx context.Context, viewer vacation.Viewer, id string) (vacation.VacationRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vacation.ErrVacationRequestNotFound) {
			return vacation.VacationRequest{}, err
		}
		return vacation.VacationRequest{}, upstream("get vacation request", err)
	}

	if viewer.IsManager {
		if request.DepartmentID == nil || *request.DepartmentID != viewer.DepartmentID {
			return vacation.VacationRequest{}, vacation.ErrForbidden
		}
		return request, nil
	}
	if request.EmployeeID != viewer.EmployeeID {
		return vacation.VacationRequest{}, vacation.ErrForbidden
	}
	return request, nil
}

// ListMyRequests implements vacation.Service.
func (s *VacationServiceImpl) ListMyRequests(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	requests, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, upstream("list vacation requests", err)
	}
	return requests, nil
}

// ListDepartmentRequests implements vacation.Service.
func (s *VacationServiceImpl) ListDepartmentRequests(ctx context.Context, departmentID string) ([]vacation.DepartmentVacation, error) {
	requests, err := s.requests.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, upstream("list department vacation requests", err)
	}
	return s.overlaps.FlagDepartment(requests), nil
}

func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", vacation.ErrUpstreamUnavailable, op, err)
}

// conflict tags errors caused by a concurrent writer.
func conflict(err error) error {
	if err == nil || errors.Is(err, vacation.ErrConcurrencyConflict) {
		return err
	}
	if errors.Is(err, employee.ErrVersionConflict) || errors.Is(err, database.ErrConflict) {
		return fmt.Errorf("%w: %w", vacation.ErrConcurrencyConflict, err)
	}
	return err
}
