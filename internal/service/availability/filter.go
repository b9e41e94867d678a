package availability

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/types"
)

// IsAvailable true, если ни одна бронь на ту же дату не пересекается с [start, end).
//
// Пересечение проверяется тремя условиями:
//   - start внутри [bs, be)
//   - end внутри (bs, be]
//   - [start, end) целиком накрывает [bs, be)
//
// Касание границ (бронь заканчивается в start или начинается в end) пересечением не считается.
// Список ожидается уже отфильтрованным по статусу "confirmed", статус здесь не проверяется.
func IsAvailable(bookings []*domain.Booking, date time.Time, start, end types.TimeString) bool {
	s, e := start.Minutes(), end.Minutes()

	for _, booking := range bookings {
		if booking == nil || !SameDate(booking.BookingDate, date) {
			continue
		}

		bs, be := booking.StartTime.Minutes(), booking.EndTime.Minutes()
		if overlaps(s, e, bs, be) {
			return false
		}
	}

	return true
}

func overlaps(s, e, bs, be int) bool {
	return (s >= bs && s < be) ||
		(e > bs && e <= be) ||
		(s <= bs && e >= be)
}

// FilterAvailable оставляет свободные слоты, сохраняя исходный порядок
func FilterAvailable(candidates []domain.Slot, bookings []*domain.Booking, date time.Time) []domain.Slot {
	available := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if IsAvailable(bookings, date, slot.StartTime, slot.EndTime) {
			available = append(available, slot)
		}
	}
	return available
}

// FitsBusinessHours проверяет произвольный интервал брони против рабочих часов:
// начало не раньше открытия, конец не позже закрытия, начало не попадает в перерыв.
func FitsBusinessHours(hours domain.BusinessHours, start, end types.TimeString) bool {
	s, e := start.Minutes(), end.Minutes()
	if s < 0 || e < 0 || e <= s {
		return false
	}

	open, closing := hours.Start*60, hours.End*60
	if s < open || e > closing {
		return false
	}

	if hours.HasBreak() {
		breakStart, breakEnd := hours.BreakStart*60, hours.BreakEnd*60
		if s >= breakStart && s < breakEnd {
			return false
		}
		if hours.ExcludeBreakOverlap && s < breakEnd && e > breakStart {
			return false
		}
	}

	return true
}
