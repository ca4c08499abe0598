package repository

import (
	"context"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type CreateReviewInput struct {
	Email       string
	Name        string
	Rating      int
	Description string
}

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	query := `
		INSERT INTO reviews (email, name, rating, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, rating, description, created_at
	`
	var review models.Review
	err := r.db.QueryRow(ctx, query,
		input.Email,
		input.Name,
		input.Rating,
		input.Description,
	).Scan(
		&review.ID,
		&review.Email,
		&review.Name,
		&review.Rating,
		&review.Description,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	query := `
		SELECT id, email, name, rating, description, created_at
		FROM reviews
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.Email,
			&review.Name,
			&review.Rating,
			&review.Description,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
