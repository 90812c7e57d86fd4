package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID              int
	Title           string
	Genre           string
	DurationMinutes int
	ReleaseDate     time.Time
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context, titleTerm string) ([]Movie, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
