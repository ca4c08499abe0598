package services

import "errors"

var (
	ErrForbidden            = errors.New("forbidden")
	ErrDuplicateApplication = errors.New("an application is already pending for this email")
	ErrAlreadyTrainer       = errors.New("this email already belongs to an accepted trainer")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrSlotNotFound         = errors.New("slot not found")
)
