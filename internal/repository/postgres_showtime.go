package repository

import (
	"context"
	"errors"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, hall_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartTime).Scan(&showtime.ID)
}

func (p *PostgresShowtimeRepository) GetUpcoming(ctx context.Context) ([]domain.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time
		FROM showtimes
		WHERE start_time > NOW()
		ORDER BY start_time
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShowtimes(rows)
}

func (p *PostgresShowtimeRepository) GetByMovie(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time
		FROM showtimes
		WHERE movie_id = $1
		ORDER BY start_time
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShowtimes(rows)
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.HallID,
		&showtime.StartTime,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $1, hall_id = $2, start_time = $3
		WHERE id = $4
	`

	result, err := p.db.Exec(
		ctx,
		query,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartTime,
		showtime.ID)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowtimeRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanShowtimes(rows pgx.Rows) ([]domain.Showtime, error) {
	showtimes := make([]domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err := rows.Scan(&showtime.ID, &showtime.MovieID, &showtime.HallID, &showtime.StartTime)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}
