package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
	"github.com/Marufhossain07/fit-sync-backend/internal/services"
)

type trainerApplicationService interface {
	Apply(ctx context.Context, input repository.CreateTrainerInput) (*models.Trainer, error)
	Approve(ctx context.Context, email string) error
	Reject(ctx context.Context, id int64, feedback string) error
	Revoke(ctx context.Context, id int64, email string) error
}

type trainerReader interface {
	GetByEmail(ctx context.Context, email string) (*models.Trainer, error)
	GetByID(ctx context.Context, id int64) (*models.Trainer, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]models.Trainer, error)
	ListBySkill(ctx context.Context, skill string) ([]models.Trainer, error)
}

type TrainerHandler struct {
	service     trainerApplicationService
	trainerRepo trainerReader
}

func NewTrainerHandler(service trainerApplicationService, trainerRepo trainerReader) *TrainerHandler {
	return &TrainerHandler{
		service:     service,
		trainerRepo: trainerRepo,
	}
}

type applyRequest struct {
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Age            *int     `json:"age"`
	Skills         []string `json:"skills"`
	AvailableHours []string `json:"available_hours"`
}

type rejectRequest struct {
	ID       int64  `json:"id"`
	Feedback string `json:"feedback"`
}

// Apply opens a trainer application for the caller.
func (h *TrainerHandler) Apply(c *fiber.Ctx) error {
	tokenEmail, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req applyRequest
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
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must not be empty"})
	}
	if len(req.Skills) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "skills must not be empty"})
	}

	trainer, err := h.service.Apply(c.Context(), repository.CreateTrainerInput{
		Email:          email,
		Name:           strings.TrimSpace(req.Name),
		Age:            req.Age,
		Skills:         req.Skills,
		AvailableHours: req.AvailableHours,
	})
	if err != nil {
		return mapTrainerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"trainer": trainer})
}

// Approve accepts a pending application and promotes the user to trainer.
func (h *TrainerHandler) Approve(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email"})
	}

	if err := h.service.Approve(c.Context(), email); err != nil {
		return mapTrainerError(c, err)
	}

	return c.JSON(fiber.Map{"message": "trainer approved"})
}

// Reject closes an application with admin feedback.
func (h *TrainerHandler) Reject(c *fiber.Ctx) error {
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application id"})
	}

	if err := h.service.Reject(c.Context(), req.ID, strings.TrimSpace(req.Feedback)); err != nil {
		return mapTrainerError(c, err)
	}

	return c.JSON(fiber.Map{"message": "feedback submitted"})
}

// Revoke deletes an accepted trainer and demotes the user back to member.
func (h *TrainerHandler) Revoke(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trainer id"})
	}

	email, err := normalizeEmail(c.Query("email"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	if err := h.service.Revoke(c.Context(), id, email); err != nil {
		return mapTrainerError(c, err)
	}

	return c.JSON(fiber.Map{"message": "trainer removed"})
}

// ListAccepted returns every accepted trainer.
func (h *TrainerHandler) ListAccepted(c *fiber.Ctx) error {
	trainers, err := h.trainerRepo.ListByStatus(c.Context(), "accepted")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch trainers"})
	}
	return c.JSON(fiber.Map{"trainers": trainers})
}

// ListBySkill returns accepted trainers teaching the named class.
func (h *TrainerHandler) ListBySkill(c *fiber.Ctx) error {
	skill := strings.TrimSpace(c.Params("name"))
	trainers, err := h.trainerRepo.ListBySkill(c.Context(), skill)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch trainers"})
	}
	return c.JSON(fiber.Map{"trainers": trainers})
}

// Details returns a single trainer profile by email.
func (h *TrainerHandler) Details(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	trainer, err := h.trainerRepo.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch trainer"})
	}
	return c.JSON(fiber.Map{"trainer": trainer})
}

// ListApplied returns the pending applications for the admin dashboard.
func (h *TrainerHandler) ListApplied(c *fiber.Ctx) error {
	trainers, err := h.trainerRepo.ListByStatus(c.Context(), "pending")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch applications"})
	}
	return c.JSON(fiber.Map{"applications": trainers})
}

// ActivityLog returns applications that are still pending or were rejected.
func (h *TrainerHandler) ActivityLog(c *fiber.Ctx) error {
	trainers, err := h.trainerRepo.ListByStatus(c.Context(), "pending", "rejected")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch activity log"})
	}
	return c.JSON(fiber.Map{"applications": trainers})
}

// AppliedByID returns one application for the admin review page.
func (h *TrainerHandler) AppliedByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application id"})
	}

	trainer, err := h.trainerRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch application"})
	}
	return c.JSON(fiber.Map{"application": trainer})
}

func mapTrainerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateApplication), errors.Is(err, services.ErrAlreadyTrainer):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrApplicationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process trainer request"})
	}
}
