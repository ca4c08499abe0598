package models

import "time"

// ForumPost carries a single vote counter. Upvotes and downvotes both mutate
// it and there is no floor, so it can go negative.
type ForumPost struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorEmail string    `json:"author_email"`
	AuthorRole  string    `json:"author_role"`
	Upvote      int       `json:"upvote"`
	CreatedAt   time.Time `json:"created_at"`
}
