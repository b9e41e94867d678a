package models

import (
	"errors"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на список бронирований (админ)
type ListBookingsRequest struct {
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
	Status *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Date   *time.Time `json:"date,omitempty"`   // Конкретная дата (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр. Возвращает нормализованные page и limit
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, int, int, error) {
	page, limit, offset := domain.NormalizePage(r.Page, r.Limit)

	filter := domain.BookingsFilter{
		Date:   r.Date,
		Limit:  uint64(limit),
		Offset: uint64(offset),
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, page, limit, err
		}
		filter.Status = &status
	}

	return filter, page, limit, nil
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// ServiceResponse услуга внутри бронирования
type ServiceResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64            `json:"id"`
	ServiceID        int64            `json:"serviceId"`
	CustomerName     string           `json:"customerName"`
	CustomerEmail    string           `json:"customerEmail"`
	CustomerPhone    string           `json:"customerPhone"`
	BookingDate      string           `json:"bookingDate"` // "2025-10-15"
	StartTime        string           `json:"startTime"`   // "10:00"
	EndTime          string           `json:"endTime"`     // "10:30"
	Status           string           `json:"status"`
	Notes            *string          `json:"notes,omitempty"`
	ConfirmationCode string           `json:"confirmationCode"`
	Service          *ServiceResponse `json:"service,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// PaginationResponse метаданные страницы
type PaginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse   `json:"bookings"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Status:           string(b.Status),
		Notes:            b.Notes,
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.Service != nil {
		resp.Service = FromDomainService(b.Service)
	}

	return resp
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Duration:    s.DurationMinutes,
		Price:       s.Price,
		Description: s.Description,
		IsActive:    s.IsActive,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainPagination конвертирует метаданные страницы
func FromDomainPagination(p domain.Pagination) *PaginationResponse {
	return &PaginationResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, Pages: p.Pages}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
