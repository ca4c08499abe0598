package models

import "time"

// SlotUnbooked is the booked_by sentinel for a slot nobody has paid for yet.
const SlotUnbooked = "none"

type Slot struct {
	ID           int64     `json:"id"`
	TrainerEmail string    `json:"trainer_email"`
	SlotName     string    `json:"slot_name"`
	SlotTime     string    `json:"slot_time"`
	ClassName    string    `json:"class_name"`
	BookedBy     string    `json:"booked_by"`
	CreatedAt    time.Time `json:"created_at"`
}
