package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type CreateTrainerInput struct {
	Email          string
	Name           string
	Age            *int
	Skills         []string
	AvailableHours []string
}

const trainerColumns = `id, email, name, age, skills, available_hours, status, available_slots, feedback, applied_at, updated_at`

type TrainerRepository struct {
	db DBTX
}

func NewTrainerRepository(db DBTX) *TrainerRepository {
	return &TrainerRepository{db: db}
}

func (r *TrainerRepository) Create(ctx context.Context, input CreateTrainerInput) (*models.Trainer, error) {
	query := fmt.Sprintf(`
		INSERT INTO trainers (email, name, age, skills, available_hours, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING %s
	`, trainerColumns)

	return r.scanTrainer(r.db.QueryRow(ctx, query,
		input.Email,
		input.Name,
		input.Age,
		input.Skills,
		input.AvailableHours,
	))
}

// ResetToPending re-opens a previously rejected application with fresh
// profile data and clears the rejection feedback.
func (r *TrainerRepository) ResetToPending(ctx context.Context, input CreateTrainerInput) (*models.Trainer, error) {
	query := fmt.Sprintf(`
		UPDATE trainers
		SET name = $2,
			age = $3,
			skills = $4,
			available_hours = $5,
			status = 'pending',
			feedback = NULL,
			applied_at = NOW(),
			updated_at = NOW()
		WHERE email = $1
		RETURNING %s
	`, trainerColumns)

	return r.scanTrainer(r.db.QueryRow(ctx, query,
		input.Email,
		input.Name,
		input.Age,
		input.Skills,
		input.AvailableHours,
	))
}

func (r *TrainerRepository) GetByEmail(ctx context.Context, email string) (*models.Trainer, error) {
	query := fmt.Sprintf(`SELECT %s FROM trainers WHERE email = $1`, trainerColumns)
	return r.scanTrainer(r.db.QueryRow(ctx, query, email))
}

func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*models.Trainer, error) {
	query := fmt.Sprintf(`SELECT %s FROM trainers WHERE id = $1`, trainerColumns)
	return r.scanTrainer(r.db.QueryRow(ctx, query, id))
}

func (r *TrainerRepository) ListByStatus(ctx context.Context, statuses ...string) ([]models.Trainer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM trainers
		WHERE status = ANY($1)
		ORDER BY applied_at DESC, id DESC
	`, trainerColumns)

	rows, err := r.db.Query(ctx, query, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainers := make([]models.Trainer, 0)
	for rows.Next() {
		var trainer models.Trainer
		if err := rows.Scan(
			&trainer.ID,
			&trainer.Email,
			&trainer.Name,
			&trainer.Age,
			&trainer.Skills,
			&trainer.AvailableHours,
			&trainer.Status,
			&trainer.AvailableSlots,
			&trainer.Feedback,
			&trainer.AppliedAt,
			&trainer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trainers = append(trainers, trainer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trainers, nil
}

// ListBySkill returns accepted trainers whose skills contain the class name,
// matched case-insensitively.
func (r *TrainerRepository) ListBySkill(ctx context.Context, skill string) ([]models.Trainer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM trainers
		WHERE status = 'accepted'
		  AND EXISTS (
			SELECT 1 FROM unnest(skills) AS s WHERE LOWER(s) = $1
		  )
		ORDER BY id ASC
	`, trainerColumns)

	rows, err := r.db.Query(ctx, query, strings.ToLower(skill))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainers := make([]models.Trainer, 0)
	for rows.Next() {
		var trainer models.Trainer
		if err := rows.Scan(
			&trainer.ID,
			&trainer.Email,
			&trainer.Name,
			&trainer.Age,
			&trainer.Skills,
			&trainer.AvailableHours,
			&trainer.Status,
			&trainer.AvailableSlots,
			&trainer.Feedback,
			&trainer.AppliedAt,
			&trainer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trainers = append(trainers, trainer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *TrainerRepository) SetStatusByEmail(ctx context.Context, email, status string) (int64, error) {
	query := `
		UPDATE trainers
		SET status = $2, updated_at = NOW()
		WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TrainerRepository) RejectWithFeedback(ctx context.Context, id int64, feedback string) (int64, error) {
	query := `
		UPDATE trainers
		SET status = 'rejected', feedback = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, feedback)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TrainerRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// AdjustAvailableSlots moves the trainer's availability counter by delta.
// Publishing a slot passes +1, withdrawing or consuming one passes -1.
func (r *TrainerRepository) AdjustAvailableSlots(ctx context.Context, email string, delta int) (int64, error) {
	query := `
		UPDATE trainers
		SET available_slots = available_slots + $2, updated_at = NOW()
		WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, delta)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TrainerRepository) UpdateName(ctx context.Context, email, name string) (int64, error) {
	query := `
		UPDATE trainers
		SET name = $2, updated_at = NOW()
		WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, name)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TrainerRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trainers WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TrainerRepository) scanTrainer(row pgx.Row) (*models.Trainer, error) {
	var trainer models.Trainer
	err := row.Scan(
		&trainer.ID,
		&trainer.Email,
		&trainer.Name,
		&trainer.Age,
		&trainer.Skills,
		&trainer.AvailableHours,
		&trainer.Status,
		&trainer.AvailableSlots,
		&trainer.Feedback,
		&trainer.AppliedAt,
		&trainer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}
