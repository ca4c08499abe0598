package repository

import (
	"context"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type CreatePaymentInput struct {
	Email        string
	SlotID       int64
	TrainerEmail string
	Classes      []string
	Price        float64
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (email, slot_id, trainer_email, classes, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, slot_id, trainer_email, classes, price, paid_at
	`
	var payment models.Payment
	err := r.db.QueryRow(ctx, query,
		input.Email,
		input.SlotID,
		input.TrainerEmail,
		input.Classes,
		input.Price,
	).Scan(
		&payment.ID,
		&payment.Email,
		&payment.SlotID,
		&payment.TrainerEmail,
		&payment.Classes,
		&payment.Price,
		&payment.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListAll returns the full payment history, newest first.
func (r *PaymentRepository) ListAll(ctx context.Context) ([]models.Payment, error) {
	query := `
		SELECT id, email, slot_id, trainer_email, classes, price, paid_at
		FROM payments
		ORDER BY paid_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.Email,
			&payment.SlotID,
			&payment.TrainerEmail,
			&payment.Classes,
			&payment.Price,
			&payment.PaidAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *PaymentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PaymentRepository) TotalPrice(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(price), 0) FROM payments`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
