package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// ErrTimeOverflow возвращается, когда арифметика выходит за пределы суток
var ErrTimeOverflow = errors.New("time of day overflow")

const minutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" без даты и часового пояса.
// Хранится в нормализованном виде, поэтому строки можно сравнивать лексикографически.
// Диапазон 00:00..24:00, где 24:00 означает конец суток.
type TimeString string

// NewTimeStringFromString разбирает "H:MM", "HH:MM" или "HH:MM:SS" (секунды отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, err := parseComponent(parts[0], 1, 2, 24)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minute, err := parseComponent(parts[1], 2, 2, 59)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	second := 0
	if len(parts) == 3 {
		if second, err = parseComponent(parts[2], 2, 2, 59); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}
	// "24:00" допустимо только как конец суток
	if hour == 24 && (minute != 0 || second != 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return FromMinutes(hour*60 + minute)
}

func parseComponent(s string, minLen, maxLen, maxValue int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, ErrInvalidTimeString
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeString
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v > maxValue {
		return 0, ErrInvalidTimeString
	}
	return v, nil
}

// NewTimeString берет часы и минуты из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// FromHour возвращает "HH:00"
func FromHour(hour int) (TimeString, error) {
	return FromMinutes(hour * 60)
}

// FromMinutes строит время из количества минут от полуночи.
// 1440 ("24:00") допустимо как конец суток.
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes количество минут от полуночи. Для некорректного значения возвращает -1
func (t TimeString) Minutes() int {
	parsed, err := NewTimeStringFromString(string(t))
	if err != nil {
		return -1
	}
	return parsed.minutesUnchecked()
}

func (t TimeString) minutesUnchecked() int {
	h, _ := strconv.Atoi(string(t[0:2]))
	m, _ := strconv.Atoi(string(t[3:5]))
	return h*60 + m
}

// Hour часовая компонента
func (t TimeString) Hour() int {
	m := t.Minutes()
	if m < 0 {
		return -1
	}
	return m / 60
}

// AddMinutes прибавляет минуты. Переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	start := t.Minutes()
	if start < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return FromMinutes(start + minutes)
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal то же время суток
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// Format12h форматирует как "2:30 PM"
func (t TimeString) Format12h() string {
	m := t.Minutes()
	if m < 0 {
		return string(t)
	}
	hour, minute := (m/60)%24, m%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// Scan реализует sql.Scanner (колонки TIME приходят как "15:04:05")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// UnmarshalText нормализует значение при декодировании JSON
func (t *TimeString) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = ""
		return nil
	}
	return t.scanString(string(text))
}

// MarshalText отдает значение как есть
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t), nil
}
