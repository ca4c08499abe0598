package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
)

// UserService owns the users table, which doubles as the role directory
// every authorization guard consults.
type UserService struct {
	db          *pgxpool.Pool
	userRepo    *repository.UserRepository
	trainerRepo *repository.TrainerRepository
}

func NewUserService(
	db *pgxpool.Pool,
	userRepo *repository.UserRepository,
	trainerRepo *repository.TrainerRepository,
) *UserService {
	return &UserService{
		db:          db,
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
	}
}

type RegisterUserInput struct {
	Email     string
	Name      string
	LastLogin time.Time
}

// RegisterOrTouch is the idempotent-by-email sign-in hook: the first call
// creates the user as a member, every later call only refreshes last_login.
// The bool reports whether a new row was created.
func (s *UserService) RegisterOrTouch(ctx context.Context, input RegisterUserInput) (*models.User, bool, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	if existing != nil {
		user, err := s.userRepo.UpdateLastLogin(ctx, input.Email, input.LastLogin)
		if err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	user := &models.User{
		Email:     input.Email,
		Name:      input.Name,
		Role:      "member",
		LastLogin: input.LastLogin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// UpdateName renames the user and, when one exists, the mirrored trainer
// profile, in one transaction.
func (s *UserService) UpdateName(ctx context.Context, email, name string) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txTrainerRepo := repository.NewTrainerRepository(tx)

	rows, err := txUserRepo.UpdateName(ctx, email, name)
	if err != nil {
		return false, err
	}

	// The trainer row is optional; zero rows here just means the user never
	// applied.
	if _, err := txTrainerRepo.UpdateName(ctx, email, name); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return rows > 0, nil
}
