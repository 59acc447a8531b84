package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
)

type EmployeeRepository interface {
	Create(employee *model.Employee) error
	FindAll() ([]model.Employee, error)
	FindByID(id uuid.UUID) (*model.Employee, error)
	FindByEmail(email string) (*model.Employee, error)
	Search(query string) ([]model.Employee, error)
	Update(employee *model.Employee) error
	Delete(id uuid.UUID) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepo) FindAll() ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Order("created_at DESC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) FindByID(id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) FindByEmail(email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.First(&employee, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Search(query string) ([]model.Employee, error) {
	like := "%" + strings.ToLower(query) + "%"

	var employees []model.Employee
	err := r.db.
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ? OR LOWER(department) LIKE ?",
			like, like, like, like, like).
		Order("last_name ASC, first_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
