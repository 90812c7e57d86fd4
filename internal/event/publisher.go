package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes booking events to durable queues. Publishing is
// best effort: failures are logged, never propagated, so the broker being
// down can not fail a reservation.
type AMQPPublisher struct {
	url    string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:    url,
		logger: logger,
	}
}

func (p *AMQPPublisher) BookingConfirmed(ctx context.Context, booking domain.Booking) {
	p.publish(ctx, QueueBookingConfirmed, booking)
}

func (p *AMQPPublisher) BookingCancelled(ctx context.Context, booking domain.Booking) {
	p.publish(ctx, QueueBookingCancelled, booking)
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, booking domain.Booking) {
	ch, err := p.channel()
	if err != nil {
		p.logger.Error("amqp channel unavailable", "queue", queue, "error", err)
		return
	}
	defer ch.Close()

	// Idempotent; durable so messages survive broker restarts.
	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		p.logger.Error("amqp queue declare failed", "queue", queue, "error", err)
		return
	}

	evt := BookingEvent{
		EventID:     uuid.NewString(),
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		SeatLabel:   booking.SeatLabel,
		Price:       booking.Price.String(),
		BookingTime: booking.BookingTime,
		OccurredAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("amqp event marshal failed", "queue", queue, "error", err)
		return
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.EventID,
		Timestamp:    evt.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.logger.Error("amqp publish failed", "queue", queue, "error", err)
		return
	}

	p.logger.Info("booking event published", "queue", queue, "booking_id", booking.ID)
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, err
		}
		p.conn = conn
	}

	return p.conn.Channel()
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}

	return p.conn.Close()
}
