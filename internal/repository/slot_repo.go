package repository

import (
	"context"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type CreateSlotInput struct {
	TrainerEmail string
	SlotName     string
	SlotTime     string
	ClassName    string
}

type SlotRepository struct {
	db DBTX
}

func NewSlotRepository(db DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, input CreateSlotInput) (*models.Slot, error) {
	query := `
		INSERT INTO slots (trainer_email, slot_name, slot_time, class_name, booked_by)
		VALUES ($1, $2, $3, $4, 'none')
		RETURNING id, trainer_email, slot_name, slot_time, class_name, booked_by, created_at
	`
	var slot models.Slot
	err := r.db.QueryRow(ctx, query,
		input.TrainerEmail,
		input.SlotName,
		input.SlotTime,
		input.ClassName,
	).Scan(
		&slot.ID,
		&slot.TrainerEmail,
		&slot.SlotName,
		&slot.SlotTime,
		&slot.ClassName,
		&slot.BookedBy,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*models.Slot, error) {
	query := `
		SELECT id, trainer_email, slot_name, slot_time, class_name, booked_by, created_at
		FROM slots
		WHERE id = $1
	`
	var slot models.Slot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.TrainerEmail,
		&slot.SlotName,
		&slot.SlotTime,
		&slot.ClassName,
		&slot.BookedBy,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Slot, error) {
	query := `
		SELECT id, trainer_email, slot_name, slot_time, class_name, booked_by, created_at
		FROM slots
		WHERE id = $1
		FOR UPDATE
	`
	var slot models.Slot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.TrainerEmail,
		&slot.SlotName,
		&slot.SlotTime,
		&slot.ClassName,
		&slot.BookedBy,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) ListByTrainer(ctx context.Context, email string) ([]models.Slot, error) {
	query := `
		SELECT id, trainer_email, slot_name, slot_time, class_name, booked_by, created_at
		FROM slots
		WHERE trainer_email = $1
		ORDER BY id ASC
	`
	return r.listSlots(ctx, query, email)
}

// ListAvailableByTrainer returns the trainer's slots nobody has booked yet.
func (r *SlotRepository) ListAvailableByTrainer(ctx context.Context, email string) ([]models.Slot, error) {
	query := `
		SELECT id, trainer_email, slot_name, slot_time, class_name, booked_by, created_at
		FROM slots
		WHERE trainer_email = $1 AND booked_by = 'none'
		ORDER BY id ASC
	`
	return r.listSlots(ctx, query, email)
}

func (r *SlotRepository) SetBookedBy(ctx context.Context, id int64, email string) (int64, error) {
	query := `
		UPDATE slots
		SET booked_by = $2
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) listSlots(ctx context.Context, query string, args ...any) ([]models.Slot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]models.Slot, 0)
	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(
			&slot.ID,
			&slot.TrainerEmail,
			&slot.SlotName,
			&slot.SlotTime,
			&slot.ClassName,
			&slot.BookedBy,
			&slot.CreatedAt,
		); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
