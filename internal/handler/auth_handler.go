package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-bizmanager/internal/middleware"
	"go-bizmanager/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an employe account
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User registered successfully",
		"data":    user.ToResponse(),
	})
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Me returns the caller's profile
// GET /api/users/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.authService.Me(middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
