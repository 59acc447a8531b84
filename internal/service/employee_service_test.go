package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/testutil"
	"go-bizmanager/pkg/apperror"
)

func employeeRequest(email string) *EmployeeRequest {
	return &EmployeeRequest{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      email,
		Position:   "Analyst",
		Department: "Finance",
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	svc := NewEmployeeService(repository.NewEmployeeRepo(testutil.NewTestDB(t)))

	_, err := svc.CreateEmployee(employeeRequest("ada@example.com"), employee)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	before := time.Now()
	ada, err := svc.CreateEmployee(employeeRequest("ada@example.com"), admin)
	require.NoError(t, err)
	assert.True(t, ada.IsActive)
	assert.False(t, ada.HireDate.Before(before.Add(-time.Second)))

	_, err = svc.CreateEmployee(employeeRequest("ADA@example.com"), admin)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	missing := employeeRequest("x@example.com")
	missing.Department = ""
	_, err = svc.CreateEmployee(missing, admin)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	inactive := false
	req := employeeRequest("ada@example.com")
	req.Position = "Lead Analyst"
	req.IsActive = &inactive
	updated, err := svc.UpdateEmployee(ada.ID, req, admin)
	require.NoError(t, err)
	assert.Equal(t, "Lead Analyst", updated.Position)
	assert.False(t, updated.IsActive)

	stored, err := svc.GetEmployee(ada.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	found, err := svc.SearchEmployees("finance")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.SearchEmployees("")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.ErrorIs(t, svc.DeleteEmployee(ada.ID, employee), apperror.ErrForbidden)
	require.NoError(t, svc.DeleteEmployee(ada.ID, admin))
	assert.ErrorIs(t, svc.DeleteEmployee(ada.ID, admin), apperror.ErrNotFound)

	_, err = svc.GetEmployee(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
