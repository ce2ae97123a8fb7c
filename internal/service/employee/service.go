package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, employeeID string) (employee.ProfileResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ProfileResponse{}, err
		}
		return employee.ProfileResponse{}, fmt.Errorf("failed to get employee profile: %w", err)
	}
	return employee.NewProfileResponse(emp), nil
}
