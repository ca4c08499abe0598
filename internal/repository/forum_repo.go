package repository

import (
	"context"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
)

type CreateForumPostInput struct {
	Title       string
	Content     string
	AuthorEmail string
	AuthorRole  string
}

type ForumRepository struct {
	db DBTX
}

func NewForumRepository(db DBTX) *ForumRepository {
	return &ForumRepository{db: db}
}

func (r *ForumRepository) Create(ctx context.Context, input CreateForumPostInput) (*models.ForumPost, error) {
	query := `
		INSERT INTO forum_posts (title, content, author_email, author_role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, author_email, author_role, upvote, created_at
	`
	var post models.ForumPost
	err := r.db.QueryRow(ctx, query,
		input.Title,
		input.Content,
		input.AuthorEmail,
		input.AuthorRole,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorEmail,
		&post.AuthorRole,
		&post.Upvote,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ForumRepository) List(ctx context.Context, offset, limit int) ([]models.ForumPost, error) {
	query := `
		SELECT id, title, content, author_email, author_role, upvote, created_at
		FROM forum_posts
		ORDER BY created_at DESC, id DESC
		OFFSET $1
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.ForumPost, 0)
	for rows.Next() {
		var post models.ForumPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.AuthorEmail,
			&post.AuthorRole,
			&post.Upvote,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *ForumRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM forum_posts`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// AddVote moves the post's vote counter by delta and returns the new value.
// The counter has no floor.
func (r *ForumRepository) AddVote(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE forum_posts
		SET upvote = upvote + $2
		WHERE id = $1
		RETURNING upvote
	`
	var upvote int
	if err := r.db.QueryRow(ctx, query, id, delta).Scan(&upvote); err != nil {
		return 0, err
	}
	return upvote, nil
}
