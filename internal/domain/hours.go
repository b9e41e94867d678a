package domain

import (
	"errors"
	"time"
)

// ErrInvalidBusinessHours is returned by BusinessHours.Validate
var ErrInvalidBusinessHours = errors.New("invalid business hours")

// BusinessHours is the daily window (whole hours) in which slots are generated.
// Candidate start hours h satisfy Start <= h < End and skip BreakStart <= h < BreakEnd.
type BusinessHours struct {
	Start      int
	End        int
	BreakStart int
	BreakEnd   int

	// ExcludeBreakOverlap additionally drops slots that start before the break and end inside or after it
	ExcludeBreakOverlap bool
}

// DefaultBusinessHours 09:00-18:00 with a 12:00-13:00 break
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Start:      DefaultOpenHour,
		End:        DefaultCloseHour,
		BreakStart: DefaultBreakStartHour,
		BreakEnd:   DefaultBreakEndHour,
	}
}

// Validate checks 0 <= Start < End <= 24 and Start <= BreakStart <= BreakEnd <= End.
// An empty break (BreakStart == BreakEnd) is allowed.
func (h BusinessHours) Validate() error {
	if h.Start < 0 || h.End > 24 || h.Start >= h.End {
		return ErrInvalidBusinessHours
	}
	if h.BreakStart > h.BreakEnd || h.BreakStart < h.Start || h.BreakEnd > h.End {
		return ErrInvalidBusinessHours
	}
	return nil
}

// HasBreak returns true if the break window is non-empty
func (h BusinessHours) HasBreak() bool {
	return h.BreakEnd > h.BreakStart
}

// BusinessHoursSource where the effective hours came from
type BusinessHoursSource string

const (
	HoursSourceService BusinessHoursSource = "service"
	HoursSourceGlobal  BusinessHoursSource = "global"
	HoursSourceDefault BusinessHoursSource = "default"
)

// BusinessHoursConfig is a stored override of business hours.
// Supports hierarchical configuration:
// 1. Service-specific (service_id)
// 2. Global (service_id IS NULL)
// Deployment defaults from config.toml apply when neither exists.
type BusinessHoursConfig struct {
	ID        int64
	ServiceID *int64 // NULL = global
	Hours     BusinessHours
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal returns true if this is the global override
func (c *BusinessHoursConfig) IsGlobal() bool {
	return c.ServiceID == nil
}

// EffectiveBusinessHours resolved hours together with their origin
type EffectiveBusinessHours struct {
	ServiceID *int64
	Hours     BusinessHours
	Source    BusinessHoursSource
}
