package domain

import "github.com/abhi96256/Appoinment/pkg/types"

// Slot is a candidate appointment window. Two slots are equal iff all fields are equal.
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
