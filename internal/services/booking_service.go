package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

// BookingService keeps the slot/trainer/class counters consistent. Every
// operation that updates more than one table runs inside a single
// transaction: publishing or withdrawing a slot moves the trainer's
// available_slots with it, and recording a payment updates the slot, the
// class counters, the trainer counter and the payment ledger together.
type BookingService struct {
	db          *pgxpool.Pool
	slotRepo    *repository.SlotRepository
	trainerRepo *repository.TrainerRepository
	classRepo   *repository.ClassRepository
	paymentRepo *repository.PaymentRepository
}

func NewBookingService(
	db *pgxpool.Pool,
	slotRepo *repository.SlotRepository,
	trainerRepo *repository.TrainerRepository,
	classRepo *repository.ClassRepository,
	paymentRepo *repository.PaymentRepository,
) *BookingService {
	return &BookingService{
		db:          db,
		slotRepo:    slotRepo,
		trainerRepo: trainerRepo,
		classRepo:   classRepo,
		paymentRepo: paymentRepo,
	}
}

// PublishSlot creates the slot and increments the owning trainer's
// available_slots counter.
func (s *BookingService) PublishSlot(ctx context.Context, input repository.CreateSlotInput) (*models.Slot, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSlotRepo := repository.NewSlotRepository(tx)
	txTrainerRepo := repository.NewTrainerRepository(tx)

	slot, err := txSlotRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	rows, err := txTrainerRepo.AdjustAvailableSlots(ctx, input.TrainerEmail, 1)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrTrainerNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return slot, nil
}

// WithdrawSlot deletes the slot and decrements the counter. Only the owning
// trainer may withdraw.
func (s *BookingService) WithdrawSlot(ctx context.Context, slotID int64, trainerEmail string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSlotRepo := repository.NewSlotRepository(tx)
	txTrainerRepo := repository.NewTrainerRepository(tx)

	slot, err := txSlotRepo.GetByIDForUpdate(ctx, slotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotNotFound
		}
		return err
	}
	if slot.TrainerEmail != trainerEmail {
		return ErrForbidden
	}

	if _, err := txSlotRepo.Delete(ctx, slotID); err != nil {
		return err
	}

	rows, err := txTrainerRepo.AdjustAvailableSlots(ctx, trainerEmail, -1)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTrainerNotFound
	}

	return tx.Commit(ctx)
}

// RecordPayment applies the four booking side effects in order: mark the
// slot booked by the payer, bump booked_count on every purchased class,
// decrement the trainer's available_slots, append the payment row.
// A slot that is already booked is overwritten without complaint; the
// previous booker simply loses the slot.
func (s *BookingService) RecordPayment(ctx context.Context, input repository.CreatePaymentInput) (*models.Payment, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSlotRepo := repository.NewSlotRepository(tx)
	txTrainerRepo := repository.NewTrainerRepository(tx)
	txClassRepo := repository.NewClassRepository(tx)
	txPaymentRepo := repository.NewPaymentRepository(tx)

	rows, err := txSlotRepo.SetBookedBy(ctx, input.SlotID, input.Email)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSlotNotFound
	}

	if _, err := txClassRepo.IncrementBookedCount(ctx, input.Classes); err != nil {
		return nil, err
	}

	rows, err = txTrainerRepo.AdjustAvailableSlots(ctx, input.TrainerEmail, -1)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrTrainerNotFound
	}

	payment, err := txPaymentRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return payment, nil
}
