package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// validateService проверяет бизнес-ограничения услуги
func validateService(s *domain.Service) error {
	name := strings.TrimSpace(s.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be between 1 and %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if s.DurationMinutes < domain.MinServiceDurationMinutes || s.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if s.Price < 0 || !hasAtMostTwoDecimals(s.Price) {
		return fmt.Errorf("%w: price must be a non-negative amount with at most 2 decimals", ErrInvalidInput)
	}

	if s.Description != nil && utf8.RuneCountInString(*s.Description) > domain.MaxServiceDescription {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxServiceDescription)
	}

	return nil
}

func hasAtMostTwoDecimals(v float64) bool {
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
