package models

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// UpdateHoursRequest запрос на установку рабочих часов.
// ServiceID == nil задает глобальные часы
type UpdateHoursRequest struct {
	ServiceID           *int64 `json:"serviceId,omitempty"`
	StartHour           int    `json:"startHour"`
	EndHour             int    `json:"endHour"`
	BreakStartHour      int    `json:"breakStartHour"`
	BreakEndHour        int    `json:"breakEndHour"`
	ExcludeBreakOverlap bool   `json:"excludeBreakOverlap"`
}

// ToDomainHours конвертирует запрос в domain модель
func (r *UpdateHoursRequest) ToDomainHours() domain.BusinessHours {
	return domain.BusinessHours{
		Start:               r.StartHour,
		End:                 r.EndHour,
		BreakStart:          r.BreakStartHour,
		BreakEnd:            r.BreakEndHour,
		ExcludeBreakOverlap: r.ExcludeBreakOverlap,
	}
}

// HoursResponse действующие рабочие часы
type HoursResponse struct {
	ServiceID           *int64     `json:"serviceId,omitempty"`
	Source              string     `json:"source"` // service | global | default
	StartHour           int        `json:"startHour"`
	EndHour             int        `json:"endHour"`
	BreakStartHour      int        `json:"breakStartHour"`
	BreakEndHour        int        `json:"breakEndHour"`
	ExcludeBreakOverlap bool       `json:"excludeBreakOverlap"`
	OpenTime            string     `json:"openTime"`  // "09:00"
	CloseTime           string     `json:"closeTime"` // "18:00"
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// FromEffective конвертирует действующие часы в DTO
func FromEffective(e domain.EffectiveBusinessHours, updatedAt *time.Time) *HoursResponse {
	return &HoursResponse{
		ServiceID:           e.ServiceID,
		Source:              string(e.Source),
		StartHour:           e.Hours.Start,
		EndHour:             e.Hours.End,
		BreakStartHour:      e.Hours.BreakStart,
		BreakEndHour:        e.Hours.BreakEnd,
		ExcludeBreakOverlap: e.Hours.ExcludeBreakOverlap,
		OpenTime:            hh(e.Hours.Start),
		CloseTime:           hh(e.Hours.End),
		UpdatedAt:           updatedAt,
	}
}

func hh(h int) string {
	if h == 24 {
		return "24:00"
	}
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format(domain.TimeFormat)
}
