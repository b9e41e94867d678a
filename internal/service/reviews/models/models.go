package models

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	ServiceID     int64
	BookingID     int64
	CustomerName  string
	CustomerEmail string
	Rating        int
	Comment       *string
}

// ToDomain конвертирует запрос в проверенный отзыв
func (r *CreateReviewRequest) ToDomain() *domain.Review {
	return &domain.Review{
		ServiceID:     r.ServiceID,
		BookingID:     r.BookingID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Comment:       r.Comment,
		IsVerified:    true,
		IsApproved:    true,
	}
}

// ListReviewsRequest запрос на список отзывов
type ListReviewsRequest struct {
	Page       int
	Limit      int
	ServiceID  *int64
	Rating     *int
	IsApproved *bool
}

// ToDomainFilter конвертирует запрос в фильтр. Возвращает нормализованные page и limit
func (r *ListReviewsRequest) ToDomainFilter() (domain.ReviewsFilter, int, int) {
	page, limit, offset := domain.NormalizePage(r.Page, r.Limit)
	return domain.ReviewsFilter{
		ServiceID:  r.ServiceID,
		Rating:     r.Rating,
		IsApproved: r.IsApproved,
		Limit:      uint64(limit),
		Offset:     uint64(offset),
	}, page, limit
}

// ServiceRef краткие данные услуги в отзыве
type ServiceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID            int64       `json:"id"`
	ServiceID     int64       `json:"serviceId"`
	BookingID     int64       `json:"bookingId"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Rating        int         `json:"rating"`
	Comment       *string     `json:"comment,omitempty"`
	IsVerified    bool        `json:"isVerified"`
	IsApproved    bool        `json:"isApproved"`
	Service       *ServiceRef `json:"service,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// PaginationResponse метаданные страницы
type PaginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ReviewListResponse ответ со списком отзывов (админ)
type ReviewListResponse struct {
	Reviews    []ReviewResponse
	Pagination *PaginationResponse
}

// ServiceReviewsResponse отзывы услуги со статистикой
type ServiceReviewsResponse struct {
	Reviews            []ReviewResponse    `json:"reviews"`
	AverageRating      float64             `json:"averageRating"`
	TotalReviews       int                 `json:"totalReviews"`
	RatingDistribution map[int]int         `json:"ratingDistribution"`
	Pagination         *PaginationResponse `json:"-"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	resp := &ReviewResponse{
		ID:            r.ID,
		ServiceID:     r.ServiceID,
		BookingID:     r.BookingID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Comment:       r.Comment,
		IsVerified:    r.IsVerified,
		IsApproved:    r.IsApproved,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.Service != nil {
		resp.Service = &ServiceRef{ID: r.Service.ID, Name: r.Service.Name}
	}

	return resp
}

// FromDomainReviewList конвертирует список отзывов
func FromDomainReviewList(reviews []*domain.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		if dto := FromDomainReview(r); dto != nil {
			resp = append(resp, *dto)
		}
	}
	return resp
}

// FromDomainPagination конвертирует метаданные страницы
func FromDomainPagination(p domain.Pagination) *PaginationResponse {
	return &PaginationResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, Pages: p.Pages}
}
