package domain

// Default business hours
const (
	DefaultOpenHour       = 9
	DefaultCloseHour      = 18
	DefaultBreakStartHour = 12
	DefaultBreakEndHour   = 13
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 100
	MaxServiceDescription     = 1000
	MaxCustomerNameLength     = 100
	MaxNotesLength            = 500
	MaxReviewCommentLength    = 1000
	MinRating                 = 1
	MaxRating                 = 5
	ConfirmationCodeLength    = 6
)

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses список допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
