package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// Channel часть amqp канала, нужная издателю
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Publisher публикует события бронирований в topic exchange
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	log      Logger
	now      func() time.Time

	mu sync.Mutex
	ch Channel
}

// NewPublisher подключается к RabbitMQ и объявляет durable topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("Events: connected to RabbitMQ, exchange=%s", exchange)

	p := newPublisher(ch, exchange, log)
	p.conn = conn
	return p, nil
}

func newPublisher(ch Channel, exchange string, log Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
		now:      time.Now,
	}
}

// PublishBooking публикует событие с routing key = тип события
func (p *Publisher) PublishBooking(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking) error {
	event := BookingEvent{
		ID:         uuid.NewString(),
		Type:       string(eventType),
		OccurredAt: p.now().UTC(),
		Booking:    newBookingPayload(booking),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPublish, eventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	}

	// amqp канал не потокобезопасен для публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(eventType), false, false, msg); err != nil {
		return fmt.Errorf("%w: %s for booking id=%d: %v", ErrPublish, eventType, booking.ID, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// NoopPublisher используется, когда события отключены
type NoopPublisher struct{}

func (NoopPublisher) PublishBooking(context.Context, domain.BookingEventType, *domain.Booking) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
