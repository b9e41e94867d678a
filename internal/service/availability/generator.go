package availability

import (
	"fmt"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/types"
)

// GenerateSlots перечисляет окна записи длительностью durationMinutes на targetDate.
//
// Слоты начинаются ровно в начале часа h, где hours.Start <= h < hours.End,
// часы перерыва (hours.BreakStart <= h < hours.BreakEnd) пропускаются.
// Конец слота округляется вверх до часа: h + ceil(durationMinutes/60).
// Слот, не помещающийся до hours.End, отбрасывается.
//
// Для дат строго раньше сегодняшней (сравнение по календарной дате now) возвращается пустой список.
// Прошедшие часы сегодняшнего дня не отсекаются.
func GenerateSlots(hours domain.BusinessHours, durationMinutes int, targetDate, now time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0)

	if durationMinutes <= 0 || IsDateInPast(targetDate, now) {
		return slots
	}

	spanHours := ceilDiv(durationMinutes, 60)

	for h := hours.Start; h < hours.End; h++ {
		if h >= hours.BreakStart && h < hours.BreakEnd {
			continue
		}

		endHour := h + spanHours
		if endHour > hours.End {
			continue
		}

		if hours.ExcludeBreakOverlap && hours.HasBreak() && h < hours.BreakStart && endHour > hours.BreakStart {
			continue
		}

		slots = append(slots, domain.Slot{
			StartTime:       hourString(h),
			EndTime:         hourString(endHour),
			DurationMinutes: durationMinutes,
		})
	}

	return slots
}

// hourString "HH:00". Часы ограничены BusinessHours (0..24), поэтому без проверки
func hourString(h int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:00", h))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// IsDateInPast true, если календарная дата date раньше календарной даты now.
// Даты сравниваются по компонентам год/месяц/день без учёта часового пояса представления.
func IsDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// SameDate сравнение с точностью до дня
func SameDate(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
