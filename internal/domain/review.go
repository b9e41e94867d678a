package domain

import "time"

// Review represents customer feedback tied to a completed booking
type Review struct {
	ID            int64
	ServiceID     int64
	BookingID     int64
	CustomerName  string
	CustomerEmail string
	Rating        int
	Comment       *string
	IsVerified    bool
	IsApproved    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Service *Service
}

// ReviewsFilter фильтр для списка отзывов
type ReviewsFilter struct {
	ServiceID  *int64
	Rating     *int
	IsApproved *bool
	Limit      uint64
	Offset     uint64
}

// RatingStats aggregated rating of a service
type RatingStats struct {
	AverageRating float64
	TotalReviews  int
	Distribution  map[int]int // rating (1..5) -> count
}
