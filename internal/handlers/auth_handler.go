package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/services"
	"github.com/Marufhossain07/fit-sync-backend/pkg/utils"
)

type userAccountService interface {
	RegisterOrTouch(ctx context.Context, input services.RegisterUserInput) (*models.User, bool, error)
	UpdateName(ctx context.Context, email, name string) (bool, error)
}

type roleDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	service   userAccountService
	directory roleDirectory
	jwtSecret string
}

func NewAuthHandler(service userAccountService, directory roleDirectory, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		service:   service,
		directory: directory,
		jwtSecret: jwtSecret,
	}
}

type issueTokenRequest struct {
	Email string `json:"email"`
}

type registerUserRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	LastLogin string `json:"last_login"`
}

type updateNameRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IssueToken signs a 24h session token for an identity that was already
// authenticated upstream.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req issueTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	token, err := utils.GenerateToken(email, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": token})
}

// RegisterUser upserts the user by email: the first sign-in creates a member
// row, later sign-ins only refresh last_login.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req registerUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	lastLogin := time.Now().UTC()
	if raw := strings.TrimSpace(req.LastLogin); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "last_login must be a valid RFC3339 timestamp"})
		}
		lastLogin = parsed
	}

	user, created, err := h.service.RegisterOrTouch(c.Context(), services.RegisterUserInput{
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		LastLogin: lastLogin,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to register user"})
	}

	if !created {
		return c.JSON(fiber.Map{
			"message": "user already exists",
			"user":    user,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// UpdateName renames the caller on the users row and the mirrored trainer
// profile. The body email must be the token email.
func (h *AuthHandler) UpdateName(c *fiber.Ctx) error {
	tokenEmail, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	if email != tokenEmail {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must not be empty"})
	}

	updated, err := h.service.UpdateName(c.Context(), email, name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update name"})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "name updated"})
}

// CheckAdmin reports whether the caller is an admin. The path email must be
// the token email.
func (h *AuthHandler) CheckAdmin(c *fiber.Ctx) error {
	return h.checkRole(c, "admin", "admin")
}

// CheckTrainer reports whether the caller is a trainer.
func (h *AuthHandler) CheckTrainer(c *fiber.Ctx) error {
	return h.checkRole(c, "trainer", "trainer")
}

func (h *AuthHandler) checkRole(c *fiber.Ctx, role, key string) error {
	tokenEmail, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email != tokenEmail {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	user, err := h.directory.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(fiber.Map{key: false})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to lookup user"})
	}

	return c.JSON(fiber.Map{key: user.Role == role})
}

func callerEmail(c *fiber.Ctx) (string, error) {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return "", errors.New("missing email claim")
	}
	return email, nil
}

func normalizeEmail(raw string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(parsed.Address), nil
}
