package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrSeatAlreadyBooked = errors.New("seat is already booked for this showtime")
	ErrSeatUnavailable   = errors.New("seat is not available")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrShowtimeNotFound  = errors.New("showtime not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrBookingNotFound   = errors.New("booking not found")
)
