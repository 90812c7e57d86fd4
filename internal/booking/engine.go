package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

// EventPublisher receives booking lifecycle notifications. Publishing is
// best effort and must never fail a request.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, booking domain.Booking)
	BookingCancelled(ctx context.Context, booking domain.Booking)
}

// Engine guarantees that a seat is booked at most once per showtime. It
// serializes concurrent reservations per (showtime, seat label) with an
// in-process keyed lock held across the whole check-claim-record sequence;
// the ledger's unique constraint covers the cross-process case. The ledger
// is the sole source of truth for per-showtime occupancy, so bookings for
// one showtime never affect another showtime's use of the same seat.
type Engine struct {
	logger    *slog.Logger
	users     domain.UserRepository
	showtimes domain.ShowtimeRepository
	seats     domain.SeatRepository
	bookings  domain.BookingRepository
	events    EventPublisher
	locks     *keyLock
}

func NewEngine(
	logger *slog.Logger,
	users domain.UserRepository,
	showtimes domain.ShowtimeRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository,
	events EventPublisher,
) *Engine {

	return &Engine{
		logger:    logger,
		users:     users,
		showtimes: showtimes,
		seats:     seats,
		bookings:  bookings,
		events:    events,
		locks:     newKeyLock(),
	}
}

func reservationKey(showtimeID int, seatLabel string) string {
	return fmt.Sprintf("%d:%s", showtimeID, seatLabel)
}

// Reserve claims seatLabel for showtimeID on behalf of userID. Exactly one
// of any set of concurrent calls for the same (showtime, seat) succeeds; the
// rest observe ErrSeatAlreadyBooked. The ledger insert is the only write, so
// a failure at any step leaves no partial state behind.
func (e *Engine) Reserve(
	ctx context.Context,
	userID, showtimeID int,
	seatLabel string,
	price decimal.Decimal,
) (*domain.Booking, error) {

	if _, err := e.users.GetById(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	showtime, err := e.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrShowtimeNotFound
		}
		return nil, err
	}

	key := reservationKey(showtimeID, seatLabel)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	booked, err := e.bookings.ExistsByShowtimeAndSeat(ctx, showtimeID, seatLabel)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, domain.ErrSeatAlreadyBooked
	}

	seat, err := e.seats.GetByLabelInHall(ctx, showtime.HallID, seatLabel)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrSeatNotFound
		}
		return nil, err
	}

	if !seat.Available {
		return nil, domain.ErrSeatUnavailable
	}

	booking := &domain.Booking{
		UserID:      userID,
		ShowtimeID:  showtimeID,
		SeatLabel:   seatLabel,
		Price:       price,
		BookingTime: time.Now().UTC(),
	}

	err = e.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	e.logger.Info("seat reserved",
		"booking_id", booking.ID,
		"showtime_id", showtimeID,
		"seat", seatLabel,
	)

	if e.events != nil {
		e.events.BookingConfirmed(ctx, *booking)
	}

	return booking, nil
}

// Cancel deletes the booking, which restores the seat's availability for
// that showtime. The deletion is the operation of record: a seat row that
// has since disappeared (hall shrunk or deleted) is logged and ignored.
func (e *Engine) Cancel(ctx context.Context, bookingID int) error {
	booking, err := e.bookings.GetById(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrBookingNotFound
		}
		return err
	}

	key := reservationKey(booking.ShowtimeID, booking.SeatLabel)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	if showtime, stErr := e.showtimes.GetById(ctx, booking.ShowtimeID); stErr == nil {
		_, seatErr := e.seats.GetByLabelInHall(ctx, showtime.HallID, booking.SeatLabel)
		if errors.Is(seatErr, domain.ErrRecordNotFound) {
			e.logger.Warn("seat record missing during cancellation",
				"booking_id", bookingID,
				"seat", booking.SeatLabel,
			)
		}
	}

	err = e.bookings.Delete(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrBookingNotFound
		}
		return err
	}

	e.logger.Info("booking cancelled",
		"booking_id", bookingID,
		"showtime_id", booking.ShowtimeID,
		"seat", booking.SeatLabel,
	)

	if e.events != nil {
		e.events.BookingCancelled(ctx, *booking)
	}

	return nil
}

// ByUser returns the user's bookings in stable insertion order.
func (e *Engine) ByUser(ctx context.Context, userID int) ([]domain.Booking, error) {
	if _, err := e.users.GetById(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return e.bookings.GetByUser(ctx, userID)
}

func (e *Engine) ByID(ctx context.Context, bookingID int) (*domain.Booking, error) {
	booking, err := e.bookings.GetById(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}
