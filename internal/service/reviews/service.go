package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	reviewRepo "github.com/abhi96256/Appoinment/internal/infra/storage/review"
	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
	"github.com/abhi96256/Appoinment/pkg/ptr"
)

// Service сервис отзывов
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Create создает проверенный отзыв.
// Отзыв возможен только по завершённому бронированию клиента на эту услугу, один на бронирование
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review for booking id=%d service id=%d", req.BookingID, req.ServiceID)

	// 1. Валидация
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем право на отзыв
	_, err := s.bookingRepo.GetCompletedForReview(ctx, req.BookingID, req.ServiceID, req.CustomerEmail)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Create: booking id=%d not eligible for review", req.BookingID)
			return nil, ErrNotEligible
		}
		s.logger.Error("Create: booking repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - booking repository error: %v", ErrInternal, err)
	}

	// 3. Один отзыв на бронирование
	exists, err := s.reviewRepo.ExistsForBooking(ctx, req.BookingID)
	if err != nil {
		s.logger.Error("Create: review repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - review repository error: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Create: review for booking id=%d already exists", req.BookingID)
		return nil, ErrReviewExists
	}

	// 4. Сохраняем; уникальный индекс по booking_id ловит гонку
	created, err := s.reviewRepo.Create(ctx, req.ToDomain())
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewExists) {
			return nil, ErrReviewExists
		}
		s.logger.Error("Create: failed to save review: %v", err)
		return nil, fmt.Errorf("%w: Create - review repository error: %v", ErrInternal, err)
	}

	// 5. Перечитываем вместе с услугой
	full, err := s.reviewRepo.GetByID(ctx, created.ID)
	if err != nil {
		s.logger.Warn("Create: failed to reload review id=%d: %v", created.ID, err)
		full = created
	}

	s.logger.Info("Create: created review id=%d", full.ID)
	return models.FromDomainReview(full), nil
}

// ListForService одобренные отзывы услуги со статистикой оценок
func (s *Service) ListForService(ctx context.Context, serviceID int64, req *models.ListReviewsRequest) (*models.ServiceReviewsResponse, error) {
	req.ServiceID = &serviceID
	req.IsApproved = ptr.Ptr(true)

	if req.Rating != nil && (*req.Rating < domain.MinRating || *req.Rating > domain.MaxRating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	filter, page, limit := req.ToDomainFilter()

	reviews, total, err := s.list(ctx, "ListForService", filter)
	if err != nil {
		return nil, err
	}

	counts, err := s.reviewRepo.RatingCounts(ctx, serviceID)
	if err != nil {
		s.logger.Error("ListForService: rating counts error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListForService - rating counts error: %v", ErrInternal, err)
	}

	stats := ratingStats(counts)

	return &models.ServiceReviewsResponse{
		Reviews:            models.FromDomainReviewList(reviews),
		AverageRating:      stats.AverageRating,
		TotalReviews:       total,
		RatingDistribution: stats.Distribution,
		Pagination:         models.FromDomainPagination(domain.NewPagination(total, page, limit)),
	}, nil
}

// List все отзывы под фильтром (админ)
func (s *Service) List(ctx context.Context, req *models.ListReviewsRequest) (*models.ReviewListResponse, error) {
	filter, page, limit := req.ToDomainFilter()

	reviews, total, err := s.list(ctx, "List", filter)
	if err != nil {
		return nil, err
	}

	return &models.ReviewListResponse{
		Reviews:    models.FromDomainReviewList(reviews),
		Pagination: models.FromDomainPagination(domain.NewPagination(total, page, limit)),
	}, nil
}

// SetApproved одобряет или скрывает отзыв
func (s *Service) SetApproved(ctx context.Context, id int64, approved bool) (*models.ReviewResponse, error) {
	if err := s.reviewRepo.SetApproved(ctx, id, approved); err != nil {
		return nil, s.mapNotFound("SetApproved", id, err)
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound("SetApproved", id, err)
	}

	s.logger.Info("SetApproved: review id=%d approved=%t", id, approved)
	return models.FromDomainReview(review), nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return s.mapNotFound("Delete", id, err)
	}

	s.logger.Info("Delete: deleted review id=%d", id)
	return nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.ReviewsFilter) ([]*domain.Review, int, error) {
	reviews, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, 0, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	total, err := s.reviewRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("%s: count error: %v", op, err)
		return nil, 0, fmt.Errorf("%w: %s - count error: %v", ErrInternal, op, err)
	}

	return reviews, total, nil
}

func (s *Service) mapNotFound(op string, id int64, err error) error {
	if errors.Is(err, reviewRepo.ErrReviewNotFound) {
		s.logger.Warn("%s: review id=%d not found", op, id)
		return ErrReviewNotFound
	}
	s.logger.Error("%s: repository error for review id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateCreate(req *models.CreateReviewRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)

	if req.ServiceID <= 0 || req.BookingID <= 0 {
		return fmt.Errorf("%w: service and booking ids are required", ErrInvalidInput)
	}
	if req.CustomerName == "" || utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be between 1 and %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxReviewCommentLength {
		return fmt.Errorf("%w: comment must not exceed %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}
	return nil
}
