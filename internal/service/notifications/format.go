package notifications

import (
	"strings"
	"time"
	"unicode"
)

const longDateLayout = "Monday, January 2, 2006"

func formatDate(date time.Time) string {
	return date.Format(longDateLayout)
}

// NormalizePhone приводит номер к международному формату.
// Оставляет цифры и ведущий '+'; ведущий 0 и отсутствие '+' заменяются кодом страны
func NormalizePhone(phone, countryCode string) string {
	phone = strings.TrimSpace(phone)
	plus := strings.HasPrefix(phone, "+")

	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case cleaned == "":
		return ""
	case plus:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return countryCode + cleaned[1:]
	default:
		return countryCode + cleaned
	}
}
