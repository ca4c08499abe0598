package models

import "time"

type Payment struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SlotID       int64     `json:"slot_id"`
	TrainerEmail string    `json:"trainer_email"`
	Classes      []string  `json:"classes"`
	Price        float64   `json:"price"`
	PaidAt       time.Time `json:"paid_at"`
}
