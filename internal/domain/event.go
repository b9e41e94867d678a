package domain

// BookingEventType routing key of a booking lifecycle event
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingCancelled     BookingEventType = "booking.cancelled"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
)
