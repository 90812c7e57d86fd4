package repository

import (
	"context"
	"errors"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBookingRepository is the booking ledger. The unique index on
// (showtime_id, seat_label) makes Create the final arbiter of the
// one-booking-per-seat-per-showtime invariant, whatever happened to checks
// further up the stack.
type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) ExistsByShowtimeAndSeat(
	ctx context.Context,
	showtimeID int,
	seatLabel string) (bool, error) {

	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE showtime_id = $1 AND seat_label = $2
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, showtimeID, seatLabel).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, showtime_id, seat_label, price, booking_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		booking.UserID,
		booking.ShowtimeID,
		booking.SeatLabel,
		booking.Price,
		booking.BookingTime).Scan(&booking.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatAlreadyBooked
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, showtime_id, seat_label, price, booking_time
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.SeatLabel,
		&booking.Price,
		&booking.BookingTime,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetByUser(ctx context.Context, userID int) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, showtime_id, seat_label, price, booking_time
		FROM bookings
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (p *PostgresBookingRepository) GetByShowtime(ctx context.Context, showtimeID int) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, showtime_id, seat_label, price, booking_time
		FROM bookings
		WHERE showtime_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, showtime_id, seat_label, price, booking_time
		FROM bookings
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (p *PostgresBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET seat_label = $1, price = $2
		WHERE id = $3
	`

	result, err := p.db.Exec(ctx, query, booking.SeatLabel, booking.Price, booking.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatAlreadyBooked
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowtimeID,
			&booking.SeatLabel,
			&booking.Price,
			&booking.BookingTime,
		)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
