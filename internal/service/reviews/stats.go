package reviews

import (
	"math"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// ratingStats считает среднюю оценку (до 0.1) и распределение 5..1 по количеству отзывов на оценку
func ratingStats(counts map[int]int) domain.RatingStats {
	stats := domain.RatingStats{Distribution: make(map[int]int, domain.MaxRating)}

	sum := 0
	for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
		n := counts[rating]
		stats.Distribution[rating] = n
		stats.TotalReviews += n
		sum += rating * n
	}

	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*10) / 10
	}

	return stats
}
