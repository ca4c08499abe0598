package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

func newIntegrationBookingService(pool *pgxpool.Pool) *BookingService {
	return NewBookingService(
		pool,
		repository.NewSlotRepository(pool),
		repository.NewTrainerRepository(pool),
		repository.NewClassRepository(pool),
		repository.NewPaymentRepository(pool),
	)
}

func createAcceptedTrainer(t *testing.T, ctx context.Context, pool *pgxpool.Pool, tag string) string {
	t.Helper()

	email := createMemberUser(t, ctx, pool, tag)
	service := newIntegrationTrainerService(pool)
	if _, err := service.Apply(ctx, repository.CreateTrainerInput{
		Email:  email,
		Name:   "Trainer " + tag,
		Skills: []string{"yoga"},
	}); err != nil {
		t.Fatalf("Apply %s: %v", tag, err)
	}
	if err := service.Approve(ctx, email); err != nil {
		t.Fatalf("Approve %s: %v", tag, err)
	}
	return email
}

func createTestClass(t *testing.T, ctx context.Context, pool *pgxpool.Pool, tag string) string {
	t.Helper()

	name := fmt.Sprintf("%s-%d", tag, time.Now().UnixNano())
	if _, err := repository.NewClassRepository(pool).Create(ctx, repository.CreateClassInput{Name: name}); err != nil {
		t.Fatalf("create class %s: %v", tag, err)
	}
	t.Cleanup(func() {
		if _, err := pool.Exec(ctx, "DELETE FROM classes WHERE name = $1", name); err != nil {
			t.Fatalf("cleanup class %s: %v", name, err)
		}
	})
	return name
}

func mustGetAvailableSlots(t *testing.T, ctx context.Context, pool *pgxpool.Pool, email string) int {
	t.Helper()

	trainer, err := repository.NewTrainerRepository(pool).GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail trainer %s: %v", email, err)
	}
	return trainer.AvailableSlots
}

func TestBookingServicePublishAndWithdrawNetZero(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	trainerEmail := createAcceptedTrainer(t, ctx, pool, "publish-withdraw")
	t.Cleanup(func() { cleanupAccounts(t, ctx, pool, trainerEmail) })

	before := mustGetAvailableSlots(t, ctx, pool, trainerEmail)

	slot, err := service.PublishSlot(ctx, repository.CreateSlotInput{
		TrainerEmail: trainerEmail,
		SlotName:     "Morning Flow",
		SlotTime:     "06:00-07:00",
		ClassName:    "Yoga",
	})
	if err != nil {
		t.Fatalf("PublishSlot: %v", err)
	}
	if slot.BookedBy != models.SlotUnbooked {
		t.Fatalf("expected fresh slot unbooked, got %q", slot.BookedBy)
	}
	if got := mustGetAvailableSlots(t, ctx, pool, trainerEmail); got != before+1 {
		t.Fatalf("expected counter %d after publish, got %d", before+1, got)
	}

	if err := service.WithdrawSlot(ctx, slot.ID, trainerEmail); err != nil {
		t.Fatalf("WithdrawSlot: %v", err)
	}
	if got := mustGetAvailableSlots(t, ctx, pool, trainerEmail); got != before {
		t.Fatalf("expected counter back to %d after withdraw, got %d", before, got)
	}
	if _, err := repository.NewSlotRepository(pool).GetByID(ctx, slot.ID); err == nil {
		t.Fatalf("expected slot gone after withdraw")
	}
}

func TestBookingServiceWithdrawRejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	ownerEmail := createAcceptedTrainer(t, ctx, pool, "withdraw-owner")
	otherEmail := createAcceptedTrainer(t, ctx, pool, "withdraw-other")
	t.Cleanup(func() { cleanupAccounts(t, ctx, pool, ownerEmail, otherEmail) })

	slot, err := service.PublishSlot(ctx, repository.CreateSlotInput{
		TrainerEmail: ownerEmail,
		SlotName:     "Evening Lift",
		SlotTime:     "18:00-19:00",
	})
	if err != nil {
		t.Fatalf("PublishSlot: %v", err)
	}

	if err := service.WithdrawSlot(ctx, slot.ID, otherEmail); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := repository.NewSlotRepository(pool).GetByID(ctx, slot.ID); err != nil {
		t.Fatalf("expected slot untouched after forbidden withdraw: %v", err)
	}
	if got := mustGetAvailableSlots(t, ctx, pool, ownerEmail); got != 1 {
		t.Fatalf("expected owner counter untouched at 1, got %d", got)
	}
}

func TestBookingServiceRecordPaymentAppliesAllEffects(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	trainerEmail := createAcceptedTrainer(t, ctx, pool, "payment-trainer")
	memberEmail := createMemberUser(t, ctx, pool, "payment-member")
	t.Cleanup(func() { cleanupAccounts(t, ctx, pool, trainerEmail, memberEmail) })

	className := createTestClass(t, ctx, pool, "payment-class")

	slot, err := service.PublishSlot(ctx, repository.CreateSlotInput{
		TrainerEmail: trainerEmail,
		SlotName:     "Noon HIIT",
		SlotTime:     "12:00-13:00",
		ClassName:    className,
	})
	if err != nil {
		t.Fatalf("PublishSlot: %v", err)
	}
	counterBefore := mustGetAvailableSlots(t, ctx, pool, trainerEmail)

	payment, err := service.RecordPayment(ctx, repository.CreatePaymentInput{
		Email:        memberEmail,
		SlotID:       slot.ID,
		TrainerEmail: trainerEmail,
		Classes:      []string{className},
		Price:        49.5,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.ID == 0 || payment.Price != 49.5 {
		t.Fatalf("unexpected payment row: %+v", payment)
	}

	booked, err := repository.NewSlotRepository(pool).GetByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("GetByID slot: %v", err)
	}
	if booked.BookedBy != memberEmail {
		t.Fatalf("expected slot booked by %s, got %q", memberEmail, booked.BookedBy)
	}

	if got := mustGetAvailableSlots(t, ctx, pool, trainerEmail); got != counterBefore-1 {
		t.Fatalf("expected counter %d after payment, got %d", counterBefore-1, got)
	}

	var bookedCount int
	if err := pool.QueryRow(ctx, "SELECT booked_count FROM classes WHERE name = $1", className).Scan(&bookedCount); err != nil {
		t.Fatalf("query booked_count: %v", err)
	}
	if bookedCount != 1 {
		t.Fatalf("expected booked_count 1, got %d", bookedCount)
	}
}

func TestBookingServiceRecordPaymentMissingSlot(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	trainerEmail := createAcceptedTrainer(t, ctx, pool, "payment-noslot")
	memberEmail := createMemberUser(t, ctx, pool, "payment-noslot-member")
	t.Cleanup(func() { cleanupAccounts(t, ctx, pool, trainerEmail, memberEmail) })

	_, err := service.RecordPayment(ctx, repository.CreatePaymentInput{
		Email:        memberEmail,
		SlotID:       999999999,
		TrainerEmail: trainerEmail,
		Price:        10,
	})
	if err != ErrSlotNotFound {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}

	if got := mustGetAvailableSlots(t, ctx, pool, trainerEmail); got != 0 {
		t.Fatalf("expected counter untouched after rollback, got %d", got)
	}
}
