package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, role, last_login)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Email, user.Name, user.Role, user.LastLogin).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, role, last_login, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, email string, lastLogin time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET last_login = $2, updated_at = NOW()
		WHERE email = $1
		RETURNING id, email, name, role, last_login, created_at, updated_at
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email, lastLogin).
		Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, email, name string) (int64, error) {
	query := `
		UPDATE users
		SET name = $2, updated_at = NOW()
		WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, name)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) SetRole(ctx context.Context, email, role string) (int64, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, role)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
