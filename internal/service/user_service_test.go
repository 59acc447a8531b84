package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/testutil"
	"go-bizmanager/pkg/apperror"
)

func TestUserAdministration(t *testing.T) {
	svc := NewUserService(repository.NewUserRepo(testutil.NewTestDB(t)))

	_, err := svc.CreateUser(&CreateUserRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1"}, employee)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.CreateUser(&CreateUserRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: "owner"}, admin)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	eve, err := svc.CreateUser(&CreateUserRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: model.RoleAdmin}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, eve.Role)

	bob, err := svc.CreateUser(&CreateUserRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, bob.Role)

	_, err = svc.CreateUser(&CreateUserRequest{Name: "Bob", Email: "BOB@example.com", Password: "secret1"}, admin)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	oldHash := bob.Password
	newPassword := "another1"
	updated, err := svc.UpdateUser(bob.ID, &UpdateUserRequest{Name: "Robert", Email: "bob@example.com", Password: &newPassword, Role: model.RoleAdmin}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.NotEqual(t, oldHash, updated.Password)
	assert.True(t, updated.CheckPassword("another1"))

	_, err = svc.UpdateUser(bob.ID, &UpdateUserRequest{Name: "Robert", Email: "eve@example.com"}, admin)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	users, err := svc.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, svc.DeleteUser(bob.ID, admin))
	assert.ErrorIs(t, svc.DeleteUser(bob.ID, admin), apperror.ErrNotFound)

	_, err = svc.GetUserByID(bob.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.GetUserByID(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
