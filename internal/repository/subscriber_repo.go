package repository

import (
	"context"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type SubscriberRepository struct {
	db DBTX
}

func NewSubscriberRepository(db DBTX) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Create(ctx context.Context, email, name string) (*models.Subscriber, error) {
	query := `
		INSERT INTO subscribers (email, name)
		VALUES ($1, $2)
		RETURNING id, email, name, subscribed_at
	`
	var subscriber models.Subscriber
	err := r.db.QueryRow(ctx, query, email, name).Scan(
		&subscriber.ID,
		&subscriber.Email,
		&subscriber.Name,
		&subscriber.SubscribedAt,
	)
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *SubscriberRepository) List(ctx context.Context) ([]models.Subscriber, error) {
	query := `
		SELECT id, email, name, subscribed_at
		FROM subscribers
		ORDER BY subscribed_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := make([]models.Subscriber, 0)
	for rows.Next() {
		var subscriber models.Subscriber
		if err := rows.Scan(
			&subscriber.ID,
			&subscriber.Email,
			&subscriber.Name,
			&subscriber.SubscribedAt,
		); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, subscriber)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subscribers, nil
}

func (r *SubscriberRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SubscriberRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
