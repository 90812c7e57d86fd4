package repository

import (
	"context"
	"errors"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

// Create inserts the hall and generates its seats in one transaction.
func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO halls (name, total_seats)
			VALUES ($1, $2)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, hall.Name, hall.TotalSeats).Scan(&hall.ID)
		if err != nil {
			return err
		}

		return copySeatsForHall(ctx, tx, hall.ID, 1, hall.TotalSeats)
	})
}

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]domain.Hall, error) {
	query := `SELECT id, name, total_seats FROM halls ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.Hall, 0)

	for rows.Next() {
		var hall domain.Hall

		err := rows.Scan(&hall.ID, &hall.Name, &hall.TotalSeats)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	query := `SELECT id, name, total_seats FROM halls WHERE id = $1`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, id).Scan(&hall.ID, &hall.Name, &hall.TotalSeats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

// Update persists the hall and, when the seat count grew, generates the new
// tail of seats. Shrinking the count leaves existing seats untouched.
func (p *PostgresHallRepository) Update(ctx context.Context, hall *domain.Hall) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var oldTotal int

		err := tx.QueryRow(ctx, `SELECT total_seats FROM halls WHERE id = $1 FOR UPDATE`, hall.ID).
			Scan(&oldTotal)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query := `
			UPDATE halls
			SET name = $1, total_seats = $2
			WHERE id = $3
		`

		_, err = tx.Exec(ctx, query, hall.Name, hall.TotalSeats, hall.ID)
		if err != nil {
			return err
		}

		if hall.TotalSeats > oldTotal {
			return copySeatsForHall(ctx, tx, hall.ID, oldTotal+1, hall.TotalSeats)
		}

		return nil
	})
}

// Delete removes the hall; seats go with it via ON DELETE CASCADE.
func (p *PostgresHallRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
