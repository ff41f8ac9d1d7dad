package service

import "errors"

// Sentinel errors shared across domain services.
// Handlers match these with errors.Is and turn them into redirects,
// flash messages or error pages, never raw payloads.
var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("not authorized")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTrainNotFound        = errors.New("selected train not found")
	ErrPastDate             = errors.New("travel date cannot be in the past")
	ErrDuplicatePaidBooking = errors.New("a paid booking already exists for this train, date and passenger")

	ErrPaymentProcessing = errors.New("payment processing failed")
)
