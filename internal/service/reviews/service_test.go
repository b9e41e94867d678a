package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	reviewRepo "github.com/abhi96256/Appoinment/internal/infra/storage/review"
	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/ptr"
)

type fakeReviewRepo struct {
	reviews       map[int64]*domain.Review
	nextID        int64
	skipExistence bool
	lastFilter    domain.ReviewsFilter
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*domain.Review), nextID: 1}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	for _, existing := range r.reviews {
		if existing.BookingID == review.BookingID {
			return nil, reviewRepo.ErrReviewExists
		}
	}
	review.ID = r.nextID
	r.nextID++
	cp := *review
	r.reviews[review.ID] = &cp
	return review, nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, reviewRepo.ErrReviewNotFound
	}
	cp := *review
	cp.Service = &domain.Service{ID: review.ServiceID, Name: "Haircut"}
	return &cp, nil
}

func (r *fakeReviewRepo) ExistsForBooking(_ context.Context, bookingID int64) (bool, error) {
	if r.skipExistence {
		return false, nil
	}
	for _, review := range r.reviews {
		if review.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) matching(filter domain.ReviewsFilter) []*domain.Review {
	out := make([]*domain.Review, 0)
	for _, review := range r.reviews {
		if filter.ServiceID != nil && review.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.Rating != nil && review.Rating != *filter.Rating {
			continue
		}
		if filter.IsApproved != nil && review.IsApproved != *filter.IsApproved {
			continue
		}
		out = append(out, review)
	}
	return out
}

func (r *fakeReviewRepo) List(_ context.Context, filter domain.ReviewsFilter) ([]*domain.Review, error) {
	r.lastFilter = filter
	return r.matching(filter), nil
}

func (r *fakeReviewRepo) Count(_ context.Context, filter domain.ReviewsFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *fakeReviewRepo) RatingCounts(_ context.Context, serviceID int64) (map[int]int, error) {
	counts := make(map[int]int)
	for _, review := range r.reviews {
		if review.ServiceID == serviceID && review.IsApproved {
			counts[review.Rating]++
		}
	}
	return counts, nil
}

func (r *fakeReviewRepo) SetApproved(_ context.Context, id int64, approved bool) error {
	review, ok := r.reviews[id]
	if !ok {
		return reviewRepo.ErrReviewNotFound
	}
	review.IsApproved = approved
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return reviewRepo.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

// fakeBookingRepo знает одно завершённое бронирование id=10 услуги 1 клиента asha@example.com
type fakeBookingRepo struct{}

func (fakeBookingRepo) GetCompletedForReview(_ context.Context, bookingID, serviceID int64, email string) (*domain.Booking, error) {
	if bookingID == 10 && serviceID == 1 && email == "asha@example.com" {
		return &domain.Booking{ID: 10, ServiceID: 1, CustomerEmail: email, Status: domain.StatusCompleted}, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func validRequest() *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		ServiceID:     1,
		BookingID:     10,
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Rating:        5,
		Comment:       ptr.Ptr("Great"),
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo, fakeBookingRepo{}, logger.NewNop())

	resp, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.IsVerified)
	assert.True(t, resp.IsApproved)
	require.NotNil(t, resp.Service)
	assert.Equal(t, "Haircut", resp.Service.Name)

	_, err = svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReviewExists)

	// гонка: проверка прошла, уникальный индекс сработал
	repo.skipExistence = true
	_, err = svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestCreate_NotEligible(t *testing.T) {
	svc := NewService(newFakeReviewRepo(), fakeBookingRepo{}, logger.NewNop())

	req := validRequest()
	req.CustomerEmail = "someone@example.com"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotEligible)

	req = validRequest()
	req.ServiceID = 2
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeReviewRepo(), fakeBookingRepo{}, logger.NewNop())

	req := validRequest()
	req.Rating = 6
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.CustomerName = "  "
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForService_Stats(t *testing.T) {
	repo := newFakeReviewRepo()
	for i, rating := range []int{5, 5, 4, 2} {
		repo.reviews[int64(i+1)] = &domain.Review{ID: int64(i + 1), ServiceID: 1, BookingID: int64(100 + i), Rating: rating, IsApproved: true}
	}
	repo.reviews[9] = &domain.Review{ID: 9, ServiceID: 1, BookingID: 200, Rating: 1, IsApproved: false}
	repo.reviews[8] = &domain.Review{ID: 8, ServiceID: 2, BookingID: 201, Rating: 1, IsApproved: true}

	svc := NewService(repo, fakeBookingRepo{}, logger.NewNop())

	resp, err := svc.ListForService(context.Background(), 1, &models.ListReviewsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 4)
	assert.Equal(t, 4, resp.TotalReviews)
	assert.Equal(t, 4.0, resp.AverageRating)
	assert.Equal(t, map[int]int{5: 2, 4: 1, 3: 0, 2: 1, 1: 0}, resp.RatingDistribution)
	assert.Equal(t, &models.PaginationResponse{Total: 4, Page: 1, Limit: 10, Pages: 1}, resp.Pagination)

	resp, err = svc.ListForService(context.Background(), 1, &models.ListReviewsRequest{Rating: ptr.Ptr(5)})
	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 2)
	assert.Equal(t, 4.0, resp.AverageRating, "stats cover all approved reviews")

	_, err = svc.ListForService(context.Background(), 1, &models.ListReviewsRequest{Rating: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRatingStats_Rounding(t *testing.T) {
	stats := ratingStats(map[int]int{5: 1, 4: 2})
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, 3, stats.TotalReviews)

	empty := ratingStats(nil)
	assert.Zero(t, empty.AverageRating)
	assert.Len(t, empty.Distribution, 5)
}

func TestSetApprovedAndDelete(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.reviews[1] = &domain.Review{ID: 1, ServiceID: 1, BookingID: 10, Rating: 3, IsApproved: true}
	svc := NewService(repo, fakeBookingRepo{}, logger.NewNop())

	resp, err := svc.SetApproved(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, resp.IsApproved)

	list, err := svc.List(context.Background(), &models.ListReviewsRequest{IsApproved: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 1)

	_, err = svc.SetApproved(context.Background(), 7, true)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrReviewNotFound)
}
