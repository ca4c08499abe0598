package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type statsUserStore interface {
	CountByRole(ctx context.Context, role string) (int, error)
}

type statsTrainerStore interface {
	CountByStatus(ctx context.Context, status string) (int, error)
}

type statsClassStore interface {
	Count(ctx context.Context, search string) (int, error)
}

type statsPaymentStore interface {
	Count(ctx context.Context) (int, error)
	TotalPrice(ctx context.Context) (float64, error)
	ListAll(ctx context.Context) ([]models.Payment, error)
}

type statsSubscriberStore interface {
	Count(ctx context.Context) (int, error)
}

type StatsHandler struct {
	userRepo       statsUserStore
	trainerRepo    statsTrainerStore
	classRepo      statsClassStore
	paymentRepo    statsPaymentStore
	subscriberRepo statsSubscriberStore
}

func NewStatsHandler(
	userRepo statsUserStore,
	trainerRepo statsTrainerStore,
	classRepo statsClassStore,
	paymentRepo statsPaymentStore,
	subscriberRepo statsSubscriberStore,
) *StatsHandler {
	return &StatsHandler{
		userRepo:       userRepo,
		trainerRepo:    trainerRepo,
		classRepo:      classRepo,
		paymentRepo:    paymentRepo,
		subscriberRepo: subscriberRepo,
	}
}

// BalanceStats assembles the admin dashboard: entity counts, total balance
// and the full payment history, newest first.
func (h *StatsHandler) BalanceStats(c *fiber.Ctx) error {
	trainers, err := h.trainerRepo.CountByStatus(c.Context(), "accepted")
	if err != nil {
		return statsError(c)
	}

	members, err := h.userRepo.CountByRole(c.Context(), "member")
	if err != nil {
		return statsError(c)
	}

	classes, err := h.classRepo.Count(c.Context(), "")
	if err != nil {
		return statsError(c)
	}

	payments, err := h.paymentRepo.Count(c.Context())
	if err != nil {
		return statsError(c)
	}

	subscribers, err := h.subscriberRepo.Count(c.Context())
	if err != nil {
		return statsError(c)
	}

	totalBalance, err := h.paymentRepo.TotalPrice(c.Context())
	if err != nil {
		return statsError(c)
	}

	history, err := h.paymentRepo.ListAll(c.Context())
	if err != nil {
		return statsError(c)
	}

	return c.JSON(fiber.Map{
		"stats": models.BalanceStats{
			Trainers:     trainers,
			Members:      members,
			Classes:      classes,
			Payments:     payments,
			Subscribers:  subscribers,
			TotalBalance: totalBalance,
			History:      history,
		},
	})
}

func statsError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"error": "Failed to fetch stats"})
}
