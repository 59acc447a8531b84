package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/pkg/apperror"
	"go-bizmanager/pkg/jwt"
	"go-bizmanager/pkg/validator"
)

var (
	ErrInvalidCredentials = apperror.Auth("Invalid email or password")
	ErrEmailExists        = apperror.Conflict("Email already registered")
)

type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(email, password string) (*LoginResponse, error)
	Me(principal model.Principal) (*model.UserResponse, error)
	ResetPassword(email, newPassword string) error
	EnsureAdmin(email, password string) (bool, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a self-service account. The role is always employe;
// admins are created through the user management endpoints.
func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.RoleEmployee,
	}
	user.CreatedBy = "system"
	user.UpdatedBy = "system"

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Wrap(err, "Failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, apperror.Validation("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Me(principal model.Principal) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(principal.UserID)
	if err != nil {
		return nil, notFound(err, "User")
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *authService) ResetPassword(email, newPassword string) error {
	if len(newPassword) < 6 {
		return apperror.Validation("New password must be at least 6 characters")
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return notFound(err, "User")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return apperror.Wrap(err, "Failed to hash password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

// EnsureAdmin creates the bootstrap administrator when no admin exists yet.
// It reports whether an account was created.
func (s *authService) EnsureAdmin(email, password string) (bool, error) {
	count, err := s.userRepo.CountByRole(model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	admin := &model.User{
		Name:  "Administrator",
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  model.RoleAdmin,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		return false, err
	}

	if existing, err := s.userRepo.FindByEmail(admin.Email); err == nil {
		existing.Role = model.RoleAdmin
		existing.Password = admin.Password
		existing.UpdatedBy = "system"
		if err := s.userRepo.Update(existing); err != nil {
			return false, err
		}
		zap.L().Warn("promoted existing account to admin", zap.String("email", admin.Email))
		return true, nil
	}

	if err := s.userRepo.Create(admin); err != nil {
		return false, err
	}
	return true, nil
}
