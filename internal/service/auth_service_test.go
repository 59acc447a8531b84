package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/testutil"
	"go-bizmanager/pkg/apperror"
	"go-bizmanager/pkg/jwt"
)

func newAuthService(t *testing.T) (AuthService, repository.UserRepository, *jwt.Manager) {
	t.Helper()
	repo := repository.NewUserRepo(testutil.NewTestDB(t))
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewAuthService(repo, tokens), repo, tokens
}

func TestRegisterAlwaysCreatesEmployee(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{Name: "Sam", Email: " Sam@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, user.Role)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = svc.Register(&RegisterRequest{Name: "Sam 2", Email: "sam@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.Register(&RegisterRequest{Name: "Short", Email: "short@example.com", Password: "123"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	user, err := svc.Register(&RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := svc.Login("sam@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleEmployee), claims.Role)

	_, err = svc.Login("sam@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperror.ErrAuth)

	_, err = svc.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperror.ErrAuth)

	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestMeAndResetPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	user, err := svc.Register(&RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "secret1"})
	require.NoError(t, err)

	me, err := svc.Me(model.Principal{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "Sam", me.Name)

	require.NoError(t, svc.ResetPassword("sam@example.com", "brand-new"))
	_, err = svc.Login("sam@example.com", "secret1")
	assert.ErrorIs(t, err, apperror.ErrAuth)
	_, err = svc.Login("sam@example.com", "brand-new")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword("ghost@example.com", "brand-new"), apperror.ErrNotFound)
	assert.ErrorIs(t, svc.ResetPassword("sam@example.com", "123"), apperror.ErrValidation)
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	created, err := svc.EnsureAdmin("admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin("admin@example.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.CountByRole(model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	resp, err := svc.Login("admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
}
