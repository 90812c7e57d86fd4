// Package api holds the wire-level request and response types served by the
// HTTP layer.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stable error codes surfaced to clients.
const (
	CodeSeatAlreadyBooked = "SEAT_ALREADY_BOOKED"
	CodeSeatUnavailable   = "SEAT_UNAVAILABLE"
	CodeSeatNotFound      = "SEAT_NOT_FOUND"
	CodeShowtimeNotFound  = "SHOWTIME_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeBookingNotFound   = "BOOKING_NOT_FOUND"
	CodeNotFound          = "NOT_FOUND"
	CodeUserAlreadyExists = "USER_ALREADY_EXISTS"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternalError     = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Code             string            `json:"code"`
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type MovieRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Genre           string    `json:"genre" validate:"required,max=100"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0"`
	ReleaseDate     time.Time `json:"releaseDate" validate:"required"`
}

type MovieResponse struct {
	Id              int       `json:"id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	DurationMinutes int       `json:"durationMinutes"`
	ReleaseDate     time.Time `json:"releaseDate"`
}

type HallRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	TotalSeats int    `json:"totalSeats" validate:"required,gt=0,lte=260"`
}

type HallResponse struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	TotalSeats int    `json:"totalSeats"`
}

type ShowtimeRequest struct {
	MovieId   int       `json:"movieId" validate:"required,gt=0"`
	HallId    int       `json:"hallId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type ShowtimeResponse struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	HallId    int       `json:"hallId"`
	StartTime time.Time `json:"startTime"`
}

type SeatResponse struct {
	Id        int    `json:"id"`
	HallId    int    `json:"hallId"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type SeatAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// ShowtimeSeat reports a seat's availability for one specific showtime: the
// operational flag overlaid with the booking ledger.
type ShowtimeSeat struct {
	Id        int    `json:"id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type ShowtimeSeatMapResponse struct {
	ShowtimeId int            `json:"showtimeId"`
	HallId     int            `json:"hallId"`
	Seats      []ShowtimeSeat `json:"seats"`
}

type CreateBookingRequest struct {
	UserId     int             `json:"userId" validate:"required,gt=0"`
	ShowtimeId int             `json:"showtimeId" validate:"required,gt=0"`
	SeatLabel  string          `json:"seatLabel" validate:"required,max=10"`
	Price      decimal.Decimal `json:"price"`
}

type UpdateBookingRequest struct {
	SeatLabel *string          `json:"seatLabel,omitempty" validate:"omitempty,max=10"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type BookingResponse struct {
	Id          int             `json:"id"`
	UserId      int             `json:"userId"`
	ShowtimeId  int             `json:"showtimeId"`
	SeatLabel   string          `json:"seatLabel"`
	Price       decimal.Decimal `json:"price"`
	BookingTime time.Time       `json:"bookingTime"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
