// Package event publishes booking lifecycle notifications to RabbitMQ so
// downstream consumers (mailers, analytics) can react without querying the
// primary database.
package event

import "time"

type BookingEvent struct {
	EventID     string    `json:"event_id"`
	BookingID   int       `json:"booking_id"`
	UserID      int       `json:"user_id"`
	ShowtimeID  int       `json:"showtime_id"`
	SeatLabel   string    `json:"seat_label"`
	Price       string    `json:"price"`
	BookingTime time.Time `json:"booking_time"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)
