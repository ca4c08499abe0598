package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

type reviewStore interface {
	Create(ctx context.Context, input repository.CreateReviewInput) (*models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
}

type ReviewHandler struct {
	reviewRepo reviewStore
}

func NewReviewHandler(reviewRepo reviewStore) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo}
}

type createReviewRequest struct {
	Name        string `json:"name"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "rating must be between 1 and 5"})
	}

	review, err := h.reviewRepo.Create(c.Context(), repository.CreateReviewInput{
		Email:       email,
		Name:        strings.TrimSpace(req.Name),
		Rating:      req.Rating,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	reviews, err := h.reviewRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}
