package domain

import (
	"context"
	"fmt"
)

type Seat struct {
	ID        int
	HallID    int
	Label     string
	Available bool
}

// SeatLabel derives the human label for the n-th seat of a hall (1-based).
// Rows hold ten seats each: 1..10 -> A1..A10, 11 -> B1, and so on.
func SeatLabel(n int) string {
	row := rune('A' + (n-1)/10)
	col := (n-1)%10 + 1

	return fmt.Sprintf("%c%d", row, col)
}

// SeatRepository is a plain registry. It carries no concurrency logic of its
// own; check-and-claim sequencing belongs to the booking engine.
type SeatRepository interface {
	GetByHall(ctx context.Context, hallID int) ([]Seat, error)
	GetAvailableByHall(ctx context.Context, hallID int) ([]Seat, error)
	GetByLabelInHall(ctx context.Context, hallID int, label string) (*Seat, error)
	UpdateAvailability(ctx context.Context, seatID int, available bool) (*Seat, error)
	CreateForHall(ctx context.Context, hallID, from, to int) error
}
