package models

import "time"

// Trainer is both the application record and the trainer profile: a member
// applies with status "pending" and the same row becomes the accepted
// trainer's profile once an admin approves it.
type Trainer struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Age            *int      `json:"age"`
	Skills         []string  `json:"skills"`
	AvailableHours []string  `json:"available_hours"`
	Status         string    `json:"status"`
	AvailableSlots int       `json:"available_slots"`
	Feedback       *string   `json:"feedback"`
	AppliedAt      time.Time `json:"applied_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
