package repository

import (
	"context"
	"errors"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration_minutes, release_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.DurationMinutes,
		movie.ReleaseDate).Scan(&movie.ID)
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, titleTerm string) ([]domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration_minutes, release_date
		FROM movies
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, titleTerm)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.DurationMinutes,
			&movie.ReleaseDate,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration_minutes, release_date
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.DurationMinutes,
		&movie.ReleaseDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, genre = $2, duration_minutes = $3, release_date = $4
		WHERE id = $5
	`

	result, err := p.db.Exec(
		ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.DurationMinutes,
		movie.ReleaseDate,
		movie.ID)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
