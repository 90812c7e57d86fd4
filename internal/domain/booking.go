package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Booking is the ledger entry recording who holds which seat for which
// showtime. The ledger is the source of truth for per-showtime occupancy;
// at most one live booking may exist per (showtime, seat label).
type Booking struct {
	ID          int
	UserID      int
	ShowtimeID  int
	SeatLabel   string
	Price       decimal.Decimal
	BookingTime time.Time
}

// BookingRepository does not serialize concurrent writers itself; the engine
// holds the per-key lock across the existence check and the insert, and the
// store's unique constraint on (showtime_id, seat_label) is the backstop.
// Create must return ErrSeatAlreadyBooked on that conflict.
type BookingRepository interface {
	ExistsByShowtimeAndSeat(ctx context.Context, showtimeID int, seatLabel string) (bool, error)
	Create(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id int) error
	GetById(ctx context.Context, id int) (*Booking, error)
	GetByUser(ctx context.Context, userID int) ([]Booking, error)
	GetByShowtime(ctx context.Context, showtimeID int) ([]Booking, error)
	GetAll(ctx context.Context) ([]Booking, error)
	Update(ctx context.Context, booking *Booking) error
}
