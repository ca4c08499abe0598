package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

// TrainerService runs the member-to-trainer application workflow. Status
// lives on the trainers row and the access role on the users row; every
// transition that touches both runs inside one transaction so the two can
// never disagree.
type TrainerService struct {
	db          *pgxpool.Pool
	trainerRepo *repository.TrainerRepository
	userRepo    *repository.UserRepository
}

func NewTrainerService(
	db *pgxpool.Pool,
	trainerRepo *repository.TrainerRepository,
	userRepo *repository.UserRepository,
) *TrainerService {
	return &TrainerService{
		db:          db,
		trainerRepo: trainerRepo,
		userRepo:    userRepo,
	}
}

// Apply opens a pending application. A pending application for the same
// email is a conflict, an accepted one means the caller is already a
// trainer, and a rejected one is reset to pending with the new profile data.
func (s *TrainerService) Apply(ctx context.Context, input repository.CreateTrainerInput) (*models.Trainer, error) {
	existing, err := s.trainerRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if existing != nil {
		switch existing.Status {
		case "pending":
			return nil, ErrDuplicateApplication
		case "accepted":
			return nil, ErrAlreadyTrainer
		default:
			return s.trainerRepo.ResetToPending(ctx, input)
		}
	}

	return s.trainerRepo.Create(ctx, input)
}

// Approve accepts the application and promotes the user's role to trainer.
func (s *TrainerService) Approve(ctx context.Context, email string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txTrainerRepo := repository.NewTrainerRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)

	rows, err := txTrainerRepo.SetStatusByEmail(ctx, email, "accepted")
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrApplicationNotFound
	}

	rows, err = txUserRepo.SetRole(ctx, email, "trainer")
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return tx.Commit(ctx)
}

// Reject closes the application with feedback. The user's role is untouched.
func (s *TrainerService) Reject(ctx context.Context, id int64, feedback string) error {
	rows, err := s.trainerRepo.RejectWithFeedback(ctx, id, feedback)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// Revoke removes an accepted trainer entirely and demotes the user back to
// member.
func (s *TrainerService) Revoke(ctx context.Context, id int64, email string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txTrainerRepo := repository.NewTrainerRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)

	rows, err := txTrainerRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrApplicationNotFound
	}

	rows, err = txUserRepo.SetRole(ctx, email, "member")
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return tx.Commit(ctx)
}
