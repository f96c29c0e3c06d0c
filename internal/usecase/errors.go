package usecase

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token format")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidFilter      = errors.New("invalid filter")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingsLoading    = errors.New("bookings are still loading")
	ErrBookingsLoadFailed = errors.New("bookings failed to load")
	ErrNoDetailSelected   = errors.New("no booking selected for detail")
)
