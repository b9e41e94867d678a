package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/types"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	published []published
	err       error
	closed    bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublisher_PublishBooking(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "booking.events", logger.NewNop())
	p.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

	booking := &domain.Booking{
		ID:               5,
		ServiceID:        2,
		BookingDate:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:        types.TimeString("10:00"),
		EndTime:          types.TimeString("10:30"),
		Status:           domain.StatusCancelled,
		ConfirmationCode: "ABC123",
	}

	require.NoError(t, p.PublishBooking(context.Background(), domain.EventBookingCancelled, booking))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "booking.events", got.exchange)
	assert.Equal(t, "booking.cancelled", got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.NotEmpty(t, got.msg.MessageId)

	var event BookingEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &event))
	assert.Equal(t, got.msg.MessageId, event.ID)
	assert.Equal(t, "2025-06-02", event.Booking.BookingDate)
	assert.Equal(t, "cancelled", event.Booking.Status)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newPublisher(ch, "booking.events", logger.NewNop())

	err := p.PublishBooking(context.Background(), domain.EventBookingCreated, &domain.Booking{ID: 1})
	assert.ErrorIs(t, err, ErrPublish)
}
