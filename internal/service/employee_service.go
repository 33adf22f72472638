package service

import (
	"context"
	"errors"
	"fmt"

	"kawanlib/internal/model"
	"kawanlib/internal/repository"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNIPTaken         = errors.New("employee with this NIP already exists")
)

// EmployeeService defines operations for employee records
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) (*model.Employee, error)
	GetEmployeeByID(ctx context.Context, id int) (*model.Employee, error)
	GetEmployees(ctx context.Context, filters model.EmployeeFilters) ([]model.Employee, error)
	UpdateEmployee(ctx context.Context, id int, req model.UpdateEmployeeRequest) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

type employeeService struct {
	repo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) (*model.Employee, error) {
	status := req.Status
	if status == "" {
		status = model.EmployeeStatusActive
	}

	employee := &model.Employee{
		NIP:        req.NIP,
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		HireDate:   req.HireDate,
		Status:     status,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNIPTaken
		}
		return nil, fmt.Errorf("failed to create employee in repo: %w", err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, id int) (*model.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee by ID: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *employeeService) GetEmployees(ctx context.Context, filters model.EmployeeFilters) ([]model.Employee, error) {
	employees, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees from repo: %w", err)
	}
	return employees, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id int, req model.UpdateEmployeeRequest) (*model.Employee, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee for update: %w", err)
	}
	if existing == nil {
		return nil, ErrEmployeeNotFound
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Position != nil {
		existing.Position = *req.Position
	}
	if req.Department != nil {
		existing.Department = *req.Department
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.HireDate != nil {
		existing.HireDate = *req.HireDate
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update employee in repo: %w", err)
	}
	return existing, nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find employee for deletion: %w", err)
	}
	if existing == nil {
		return ErrEmployeeNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee in repo: %w", err)
	}
	return nil
}
