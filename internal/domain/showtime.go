package domain

import (
	"context"
	"time"
)

type Showtime struct {
	ID        int
	MovieID   int
	HallID    int
	StartTime time.Time
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetUpcoming(ctx context.Context) ([]Showtime, error)
	GetByMovie(ctx context.Context, movieID int) ([]Showtime, error)
	GetById(ctx context.Context, id int) (*Showtime, error)
	Update(ctx context.Context, showtime *Showtime) error
	Delete(ctx context.Context, id int) error
}
