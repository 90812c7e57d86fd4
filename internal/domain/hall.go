package domain

import "context"

type Hall struct {
	ID         int
	Name       string
	TotalSeats int
}

// HallRepository owns the hall rows and the lifecycle of their seats:
// creating a hall generates its seats, enlarging a hall generates the new
// tail of seats, and deleting a hall cascades to them.
type HallRepository interface {
	Create(ctx context.Context, hall *Hall) error
	GetAll(ctx context.Context) ([]Hall, error)
	GetById(ctx context.Context, id int) (*Hall, error)
	Update(ctx context.Context, hall *Hall) error
	Delete(ctx context.Context, id int) error
}
