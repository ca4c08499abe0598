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

type slotWorkflowService interface {
	PublishSlot(ctx context.Context, input repository.CreateSlotInput) (*models.Slot, error)
	WithdrawSlot(ctx context.Context, slotID int64, trainerEmail string) error
}

type slotReader interface {
	GetByID(ctx context.Context, id int64) (*models.Slot, error)
	ListByTrainer(ctx context.Context, email string) ([]models.Slot, error)
	ListAvailableByTrainer(ctx context.Context, email string) ([]models.Slot, error)
}

type SlotHandler struct {
	service  slotWorkflowService
	slotRepo slotReader
}

func NewSlotHandler(service slotWorkflowService, slotRepo slotReader) *SlotHandler {
	return &SlotHandler{
		service:  service,
		slotRepo: slotRepo,
	}
}

type publishSlotRequest struct {
	Email     string `json:"email"`
	SlotName  string `json:"slot_name"`
	SlotTime  string `json:"slot_time"`
	ClassName string `json:"class_name"`
}

// Publish creates a bookable slot for the calling trainer and bumps their
// availability counter.
func (h *SlotHandler) Publish(c *fiber.Ctx) error {
	tokenEmail, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req publishSlotRequest
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
	if strings.TrimSpace(req.SlotName) == "" || strings.TrimSpace(req.SlotTime) == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "slot_name and slot_time must not be empty"})
	}

	slot, err := h.service.PublishSlot(c.Context(), repository.CreateSlotInput{
		TrainerEmail: email,
		SlotName:     strings.TrimSpace(req.SlotName),
		SlotTime:     strings.TrimSpace(req.SlotTime),
		ClassName:    strings.TrimSpace(req.ClassName),
	})
	if err != nil {
		return mapSlotError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slot": slot})
}

// Withdraw deletes an unwanted slot and decrements the availability counter.
func (h *SlotHandler) Withdraw(c *fiber.Ctx) error {
	tokenEmail, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	slotID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || slotID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email != tokenEmail {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	if err := h.service.WithdrawSlot(c.Context(), slotID, email); err != nil {
		return mapSlotError(c, err)
	}

	return c.JSON(fiber.Map{"message": "slot withdrawn"})
}

// ListByTrainer returns every slot a trainer has published, booked or not.
func (h *SlotHandler) ListByTrainer(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	slots, err := h.slotRepo.ListByTrainer(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch slots"})
	}
	return c.JSON(fiber.Map{"slots": slots})
}

// ListAvailable returns the trainer's slots still open for booking.
func (h *SlotHandler) ListAvailable(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	slots, err := h.slotRepo.ListAvailableByTrainer(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch slots"})
	}
	return c.JSON(fiber.Map{"slots": slots})
}

// GetByID serves both the booking page and the payment page lookups.
func (h *SlotHandler) GetByID(c *fiber.Ctx) error {
	slotID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || slotID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	slot, err := h.slotRepo.GetByID(c.Context(), slotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Slot not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch slot"})
	}
	return c.JSON(fiber.Map{"slot": slot})
}

func mapSlotError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrSlotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Slot not found"})
	case errors.Is(err, services.ErrTrainerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process slot request"})
	}
}
