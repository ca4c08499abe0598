package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type subscriberStore interface {
	Create(ctx context.Context, email, name string) (*models.Subscriber, error)
	List(ctx context.Context) ([]models.Subscriber, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type SubscriberHandler struct {
	subscriberRepo subscriberStore
}

func NewSubscriberHandler(subscriberRepo subscriberStore) *SubscriberHandler {
	return &SubscriberHandler{subscriberRepo: subscriberRepo}
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe records a newsletter signup. It is the one unauthenticated write
// in the API.
func (h *SubscriberHandler) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	subscriber, err := h.subscriberRepo.Create(c.Context(), email, strings.TrimSpace(req.Name))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to subscribe"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscriber": subscriber})
}

func (h *SubscriberHandler) List(c *fiber.Ctx) error {
	subscribers, err := h.subscriberRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch subscribers"})
	}
	return c.JSON(fiber.Map{"subscribers": subscribers})
}

func (h *SubscriberHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subscriber id"})
	}

	rows, err := h.subscriberRepo.Delete(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete subscriber"})
	}
	if rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscriber not found"})
	}

	return c.JSON(fiber.Map{"message": "subscriber removed"})
}
