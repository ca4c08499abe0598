package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

const featuredClassLimit = 6

type classStore interface {
	Create(ctx context.Context, input repository.CreateClassInput) (*models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	Search(ctx context.Context, filter repository.ClassListFilter) ([]models.Class, error)
	Count(ctx context.Context, search string) (int, error)
	Featured(ctx context.Context, limit int) ([]models.Class, error)
}

type ClassHandler struct {
	classRepo classStore
}

func NewClassHandler(classRepo classStore) *ClassHandler {
	return &ClassHandler{classRepo: classRepo}
}

type createClassRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// Create adds a class to the catalog.
func (h *ClassHandler) Create(c *fiber.Ctx) error {
	var req createClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must not be empty"})
	}

	class, err := h.classRepo.Create(c.Context(), repository.CreateClassInput{
		Name:        name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Class already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class": class})
}

// List returns the whole catalog.
func (h *ClassHandler) List(c *fiber.Ctx) error {
	classes, err := h.classRepo.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(fiber.Map{"classes": classes})
}

// Search pages through the catalog by case-insensitive name match.
func (h *ClassHandler) Search(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	size := parsePositiveInt(c.Query("size"), defaultPageLimit)
	if size > maxPageLimit {
		size = maxPageLimit
	}
	search := strings.TrimSpace(c.Query("search"))

	classes, err := h.classRepo.Search(c.Context(), repository.ClassListFilter{
		Search: search,
		Offset: (page - 1) * size,
		Limit:  size,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	total, err := h.classRepo.Count(c.Context(), search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to count classes"})
	}

	return c.JSON(fiber.Map{
		"classes":    classes,
		"pagination": buildPaginationMeta(page, size, total),
	})
}

// Count returns the catalog size.
func (h *ClassHandler) Count(c *fiber.Ctx) error {
	total, err := h.classRepo.Count(c.Context(), "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to count classes"})
	}
	return c.JSON(fiber.Map{"count": total})
}

// Featured returns the most-booked classes.
func (h *ClassHandler) Featured(c *fiber.Ctx) error {
	classes, err := h.classRepo.Featured(c.Context(), featuredClassLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch featured classes"})
	}
	return c.JSON(fiber.Map{"classes": classes})
}
