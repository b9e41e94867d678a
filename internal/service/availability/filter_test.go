package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/types"
)

func booked(date string, start, end types.TimeString) *domain.Booking {
	d, _ := time.Parse(domain.DateFormat, date)
	return &domain.Booking{
		BookingDate: d,
		StartTime:   start,
		EndTime:     end,
		Status:      domain.StatusConfirmed,
	}
}

func TestIsAvailable(t *testing.T) {
	date := day(2025, 6, 2)
	bookings := []*domain.Booking{booked("2025-06-02", "10:00", "11:00")}

	tests := []struct {
		name       string
		start, end types.TimeString
		want       bool
	}{
		{name: "ends at booking start", start: "09:00", end: "10:00", want: true},
		{name: "starts at booking end", start: "11:00", end: "12:00", want: true},
		{name: "exact match", start: "10:00", end: "11:00", want: false},
		{name: "starts inside", start: "10:30", end: "11:30", want: false},
		{name: "ends inside", start: "09:30", end: "10:30", want: false},
		{name: "contains booking", start: "09:00", end: "12:00", want: false},
		{name: "inside booking", start: "10:15", end: "10:45", want: false},
		{name: "far away", start: "14:00", end: "15:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailable(bookings, date, tt.start, tt.end))
		})
	}
}

func TestIsAvailable_IgnoresOtherDatesAndNil(t *testing.T) {
	bookings := []*domain.Booking{
		nil,
		booked("2025-06-03", "10:00", "11:00"),
	}

	assert.True(t, IsAvailable(bookings, day(2025, 6, 2), "10:00", "11:00"))
	assert.False(t, IsAvailable(bookings, day(2025, 6, 3), "10:00", "11:00"))
	assert.True(t, IsAvailable(nil, day(2025, 6, 2), "10:00", "11:00"))
}

func TestFilterAvailable(t *testing.T) {
	date := day(2025, 6, 2)
	candidates := GenerateSlots(domain.DefaultBusinessHours(), 60, date, day(2025, 6, 1))
	bookings := []*domain.Booking{
		booked("2025-06-02", "10:00", "11:00"),
		booked("2025-06-02", "14:30", "15:00"),
	}

	got := FilterAvailable(candidates, bookings, date)

	assert.Equal(t, []string{"09:00", "11:00", "13:00", "15:00", "16:00", "17:00"}, starts(got))

	// подмножество кандидатов, без пересечений с бронями
	for _, slot := range got {
		assert.Contains(t, candidates, slot)
		for _, b := range bookings {
			s, e := slot.StartTime.Minutes(), slot.EndTime.Minutes()
			assert.False(t, s < b.EndTime.Minutes() && e > b.StartTime.Minutes())
		}
	}
}

func TestFilterAvailable_NoBookings(t *testing.T) {
	date := day(2025, 6, 2)
	candidates := GenerateSlots(domain.DefaultBusinessHours(), 45, date, day(2025, 6, 1))

	assert.Equal(t, candidates, FilterAvailable(candidates, nil, date))
	assert.Empty(t, FilterAvailable(nil, nil, date))
}

func TestFitsBusinessHours(t *testing.T) {
	hours := domain.DefaultBusinessHours()

	assert.True(t, FitsBusinessHours(hours, "09:00", "09:30"))
	assert.True(t, FitsBusinessHours(hours, "17:15", "18:00"))
	assert.True(t, FitsBusinessHours(hours, "11:00", "13:00"))
	assert.True(t, FitsBusinessHours(hours, "13:00", "14:00"))
	assert.False(t, FitsBusinessHours(hours, "08:30", "09:30"))
	assert.False(t, FitsBusinessHours(hours, "17:30", "18:30"))
	assert.False(t, FitsBusinessHours(hours, "12:00", "12:30"))
	assert.False(t, FitsBusinessHours(hours, "12:45", "13:15"))
	assert.False(t, FitsBusinessHours(hours, "10:00", "10:00"))

	hours.ExcludeBreakOverlap = true
	assert.False(t, FitsBusinessHours(hours, "11:00", "13:00"))
	assert.True(t, FitsBusinessHours(hours, "11:00", "12:00"))
}
