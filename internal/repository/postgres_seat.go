package repository

import (
	"context"
	"errors"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByHall(ctx context.Context, hallID int) ([]domain.Seat, error) {
	query := `
		SELECT id, hall_id, label, is_available
		FROM seats
		WHERE hall_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (p *PostgresSeatRepository) GetAvailableByHall(ctx context.Context, hallID int) ([]domain.Seat, error) {
	query := `
		SELECT id, hall_id, label, is_available
		FROM seats
		WHERE hall_id = $1 AND is_available = TRUE
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (p *PostgresSeatRepository) GetByLabelInHall(
	ctx context.Context,
	hallID int,
	label string) (*domain.Seat, error) {

	query := `
		SELECT id, hall_id, label, is_available
		FROM seats
		WHERE hall_id = $1 AND label = $2
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, hallID, label).Scan(
		&seat.ID,
		&seat.HallID,
		&seat.Label,
		&seat.Available,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}

// UpdateAvailability is a single-row write; the new value is decided by the
// caller and persisted in one statement.
func (p *PostgresSeatRepository) UpdateAvailability(
	ctx context.Context,
	seatID int,
	available bool) (*domain.Seat, error) {

	query := `
		UPDATE seats
		SET is_available = $1
		WHERE id = $2
		RETURNING id, hall_id, label, is_available
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, available, seatID).Scan(
		&seat.ID,
		&seat.HallID,
		&seat.Label,
		&seat.Available,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}

func (p *PostgresSeatRepository) CreateForHall(ctx context.Context, hallID, from, to int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		return copySeatsForHall(ctx, tx, hallID, from, to)
	})
}

// copySeatsForHall bulk-inserts seats numbered from..to (1-based within the
// hall) with labels from the row/column scheme.
func copySeatsForHall(ctx context.Context, tx pgx.Tx, hallID, from, to int) error {
	rows := make([][]any, 0, to-from+1)
	for i := from; i <= to; i++ {
		rows = append(rows, []any{hallID, domain.SeatLabel(i), true})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"seats"},
		[]string{"hall_id", "label", "is_available"},
		pgx.CopyFromRows(rows),
	)

	return err
}

func scanSeats(rows pgx.Rows) ([]domain.Seat, error) {
	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.ID, &seat.HallID, &seat.Label, &seat.Available)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
