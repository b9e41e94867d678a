package domain

import "time"

// Service represents a bookable service from the catalog
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	Description     *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if customers may book the service
func (s *Service) IsBookable() bool {
	return s.IsActive
}
