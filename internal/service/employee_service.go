package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/pkg/apperror"
	"go-bizmanager/pkg/validator"
)

type EmployeeService interface {
	CreateEmployee(req *EmployeeRequest, actor model.Principal) (*model.Employee, error)
	UpdateEmployee(id uuid.UUID, req *EmployeeRequest, actor model.Principal) (*model.Employee, error)
	DeleteEmployee(id uuid.UUID, actor model.Principal) error
	GetEmployee(id uuid.UUID) (*model.Employee, error)
	GetAllEmployees() ([]model.Employee, error)
	SearchEmployees(query string) ([]model.Employee, error)
}

// EmployeeRequest is the create/update payload. HireDate defaults to now and
// IsActive to true when omitted.
type EmployeeRequest struct {
	FirstName  string           `json:"first_name" validate:"required"`
	LastName   string           `json:"last_name" validate:"required"`
	Email      string           `json:"email" validate:"required,email"`
	Phone      string           `json:"phone"`
	Position   string           `json:"position" validate:"required"`
	Department string           `json:"department" validate:"required"`
	HireDate   *time.Time       `json:"hire_date"`
	Salary     *decimal.Decimal `json:"salary" validate:"omitempty,gte=0"`
	Address    model.Address    `json:"address"`
	IsActive   *bool            `json:"is_active"`
	UserID     *uuid.UUID       `json:"user_id"`
}

const employeeEmailExists = "An employee with this email already exists"

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: repo, now: time.Now}
}

func (s *employeeService) CreateEmployee(req *EmployeeRequest, actor model.Principal) (*model.Employee, error) {
	if err := requireAdmin(actor, "create an employee"); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.FindByEmail(req.Email); err == nil {
		return nil, apperror.Conflict(employeeEmailExists)
	}

	employee := &model.Employee{IsActive: true, HireDate: s.now()}
	s.apply(employee, req)
	employee.CreatedBy = actor.Actor()
	employee.UpdatedBy = actor.Actor()

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, conflict(err, employeeEmailExists)
	}
	return employee, nil
}

func (s *employeeService) UpdateEmployee(id uuid.UUID, req *EmployeeRequest, actor model.Principal) (*model.Employee, error) {
	if err := requireAdmin(actor, "update an employee"); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "Employee")
	}

	if req.Email != employee.Email {
		if _, err := s.employeeRepo.FindByEmail(req.Email); err == nil {
			return nil, apperror.Conflict(employeeEmailExists)
		}
	}

	s.apply(employee, req)
	employee.UpdatedBy = actor.Actor()

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, conflict(err, employeeEmailExists)
	}
	return employee, nil
}

func (s *employeeService) apply(e *model.Employee, req *EmployeeRequest) {
	e.FirstName = strings.TrimSpace(req.FirstName)
	e.LastName = strings.TrimSpace(req.LastName)
	e.Email = req.Email
	e.Phone = req.Phone
	e.Position = req.Position
	e.Department = req.Department
	e.Salary = req.Salary
	e.Address = req.Address
	e.UserID = req.UserID
	if req.HireDate != nil {
		e.HireDate = *req.HireDate
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
}

func (s *employeeService) DeleteEmployee(id uuid.UUID, actor model.Principal) error {
	if err := requireAdmin(actor, "delete an employee"); err != nil {
		return err
	}
	return notFound(s.employeeRepo.Delete(id), "Employee")
}

func (s *employeeService) GetEmployee(id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "Employee")
	}
	return employee, nil
}

func (s *employeeService) GetAllEmployees() ([]model.Employee, error) {
	return s.employeeRepo.FindAll()
}

func (s *employeeService) SearchEmployees(query string) ([]model.Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("Missing search query")
	}
	return s.employeeRepo.Search(query)
}
