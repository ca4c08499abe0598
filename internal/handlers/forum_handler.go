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
)

type forumStore interface {
	Create(ctx context.Context, input repository.CreateForumPostInput) (*models.ForumPost, error)
	List(ctx context.Context, offset, limit int) ([]models.ForumPost, error)
	Count(ctx context.Context) (int, error)
	AddVote(ctx context.Context, id int64, delta int) (int, error)
}

type ForumHandler struct {
	forumRepo forumStore
	directory roleDirectory
}

func NewForumHandler(forumRepo forumStore, directory roleDirectory) *ForumHandler {
	return &ForumHandler{
		forumRepo: forumRepo,
		directory: directory,
	}
}

type createForumPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create publishes a forum post. The author's role badge is read from the
// role directory, never from the request.
func (h *ForumHandler) Create(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createForumPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "title and content must not be empty"})
	}

	role := "member"
	user, err := h.directory.GetByEmail(c.Context(), email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to lookup user"})
	}
	if user != nil {
		role = user.Role
	}

	post, err := h.forumRepo.Create(c.Context(), repository.CreateForumPostInput{
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
		AuthorEmail: email,
		AuthorRole:  role,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create post"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// List pages through posts, newest first.
func (h *ForumHandler) List(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	size := parsePositiveInt(c.Query("size"), defaultPageLimit)
	if size > maxPageLimit {
		size = maxPageLimit
	}

	posts, err := h.forumRepo.List(c.Context(), (page-1)*size, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch posts"})
	}

	total, err := h.forumRepo.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to count posts"})
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": buildPaginationMeta(page, size, total),
	})
}

// Upvote adds one to the post's counter.
func (h *ForumHandler) Upvote(c *fiber.Ctx) error {
	return h.vote(c, 1)
}

// Downvote subtracts one. There is no floor; the counter may go negative.
func (h *ForumHandler) Downvote(c *fiber.Ctx) error {
	return h.vote(c, -1)
}

func (h *ForumHandler) vote(c *fiber.Ctx, delta int) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	upvote, err := h.forumRepo.AddVote(c.Context(), id, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update vote"})
	}

	return c.JSON(fiber.Map{"upvote": upvote})
}
