package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

type paymentRecorder interface {
	RecordPayment(ctx context.Context, input repository.CreatePaymentInput) (*models.Payment, error)
}

type PaymentHandler struct {
	service paymentRecorder
}

func NewPaymentHandler(service paymentRecorder) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type recordPaymentRequest struct {
	Email        string   `json:"email"`
	SlotID       int64    `json:"slot_id"`
	TrainerEmail string   `json:"trainer_email"`
	Classes      []string `json:"classes"`
	Price        float64  `json:"price"`
}

// Record books the slot for the payer and appends the payment to the ledger.
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	tokenEmail, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req recordPaymentRequest
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

	trainerEmail, err := normalizeEmail(req.TrainerEmail)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Invalid trainer email format"})
	}
	if req.SlotID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}
	if req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "price must not be negative"})
	}

	payment, err := h.service.RecordPayment(c.Context(), repository.CreatePaymentInput{
		Email:        email,
		SlotID:       req.SlotID,
		TrainerEmail: trainerEmail,
		Classes:      req.Classes,
		Price:        req.Price,
	})
	if err != nil {
		return mapSlotError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}
