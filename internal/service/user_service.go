package service

import (
	"strings"

	"github.com/google/uuid"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/pkg/apperror"
	"go-bizmanager/pkg/validator"
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor model.Principal) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor model.Principal) (*model.User, error)
	DeleteUser(userID uuid.UUID, actor model.Principal) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role"`
}

type UpdateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password *string    `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	Role     model.Role `json:"role"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func resolveRole(role model.Role) (model.Role, error) {
	if role == "" {
		return model.RoleEmployee, nil
	}
	if !role.Valid() {
		return "", apperror.Validation("Invalid role: %s", role)
	}
	return role, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, actor model.Principal) (*model.User, error) {
	if err := requireAdmin(actor, "create a user"); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	role, err := resolveRole(req.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	user.CreatedBy = actor.Actor()
	user.UpdatedBy = actor.Actor()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Wrap(err, "Failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, conflict(err, ErrEmailExists.Message)
	}
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor model.Principal) (*model.User, error) {
	if err := requireAdmin(actor, "update a user"); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err, "User")
	}

	if req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
			return nil, ErrEmailExists
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, apperror.Validation("Invalid role: %s", req.Role)
		}
		user.Role = req.Role
	}
	user.UpdatedBy = actor.Actor()

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, apperror.Wrap(err, "Failed to hash password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, conflict(err, ErrEmailExists.Message)
	}
	return user, nil
}

func (s *userService) DeleteUser(userID uuid.UUID, actor model.Principal) error {
	if err := requireAdmin(actor, "delete a user"); err != nil {
		return err
	}
	if userID == actor.UserID {
		return apperror.Validation("You cannot delete your own account")
	}
	return notFound(s.userRepo.Delete(userID), "User")
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	response := user.ToResponse()
	return &response, nil
}
