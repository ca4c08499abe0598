package repository

import (
	"context"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type CreateClassInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

type ClassListFilter struct {
	Search string
	Offset int
	Limit  int
}

type ClassRepository struct {
	db DBTX
}

func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(ctx context.Context, input CreateClassInput) (*models.Class, error) {
	query := `
		INSERT INTO classes (name, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, image_url, booked_count, created_at
	`
	var class models.Class
	err := r.db.QueryRow(ctx, query, input.Name, input.Description, input.ImageURL).Scan(
		&class.ID,
		&class.Name,
		&class.Description,
		&class.ImageURL,
		&class.BookedCount,
		&class.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	query := `
		SELECT id, name, description, image_url, booked_count, created_at
		FROM classes
		ORDER BY id ASC
	`
	return r.listClasses(ctx, query)
}

// Search pages through classes whose name contains the search term,
// case-insensitively, in insertion order.
func (r *ClassRepository) Search(ctx context.Context, filter ClassListFilter) ([]models.Class, error) {
	query := `
		SELECT id, name, description, image_url, booked_count, created_at
		FROM classes
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id ASC
		OFFSET $2
		LIMIT $3
	`
	return r.listClasses(ctx, query, filter.Search, filter.Offset, filter.Limit)
}

func (r *ClassRepository) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM classes WHERE name ILIKE '%' || $1 || '%'`,
		search,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Featured returns the most-booked classes first.
func (r *ClassRepository) Featured(ctx context.Context, limit int) ([]models.Class, error) {
	query := `
		SELECT id, name, description, image_url, booked_count, created_at
		FROM classes
		ORDER BY booked_count DESC, id ASC
		LIMIT $1
	`
	return r.listClasses(ctx, query, limit)
}

// IncrementBookedCount bumps booked_count by one for every named class.
func (r *ClassRepository) IncrementBookedCount(ctx context.Context, names []string) (int64, error) {
	query := `
		UPDATE classes
		SET booked_count = booked_count + 1
		WHERE name = ANY($1)
	`
	tag, err := r.db.Exec(ctx, query, names)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *ClassRepository) listClasses(ctx context.Context, query string, args ...any) ([]models.Class, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Description,
			&class.ImageURL,
			&class.BookedCount,
			&class.CreatedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}
