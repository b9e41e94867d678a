package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessHours_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hours   BusinessHours
		wantErr bool
	}{
		{name: "defaults", hours: DefaultBusinessHours()},
		{name: "no break", hours: BusinessHours{Start: 8, End: 20, BreakStart: 8, BreakEnd: 8}},
		{name: "full day", hours: BusinessHours{Start: 0, End: 24}},
		{name: "start after end", hours: BusinessHours{Start: 18, End: 9}, wantErr: true},
		{name: "end past midnight", hours: BusinessHours{Start: 9, End: 25, BreakStart: 12, BreakEnd: 13}, wantErr: true},
		{name: "break outside hours", hours: BusinessHours{Start: 9, End: 18, BreakStart: 7, BreakEnd: 8}, wantErr: true},
		{name: "inverted break", hours: BusinessHours{Start: 9, End: 18, BreakStart: 13, BreakEnd: 12}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hours.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBusinessHours)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReminderTaskID(t *testing.T) {
	assert.Equal(t, "booking-reminder-42", ReminderTaskID(42))
}
