package models

import "time"

type Class struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	BookedCount int       `json:"booked_count"`
	CreatedAt   time.Time `json:"created_at"`
}
