package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	"github.com/abhi96256/Appoinment/internal/service/bookings/models"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/ptr"
	"github.com/abhi96256/Appoinment/pkg/types"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	lastFilter domain.BookingsFilter
	listErr    error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetConfirmedByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Status == domain.StatusConfirmed && b.BookingDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.CustomerEmail != nil && b.CustomerEmail != *filter.CustomerEmail {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context, _ domain.BookingsFilter) (int, error) {
	return 23, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sideEffects struct {
	cancelledNotified []int64
	scheduled         []int64
	reminderCancelled []int64
	events            []domain.BookingEventType
}

func (s *sideEffects) BookingCancelled(b *domain.Booking) {
	s.cancelledNotified = append(s.cancelledNotified, b.ID)
}

func (s *sideEffects) Schedule(_ context.Context, b *domain.Booking) error {
	s.scheduled = append(s.scheduled, b.ID)
	return nil
}

func (s *sideEffects) Cancel(_ context.Context, id int64) error {
	s.reminderCancelled = append(s.reminderCancelled, id)
	return errors.New("task not found")
}

func (s *sideEffects) PublishBooking(_ context.Context, e domain.BookingEventType, _ *domain.Booking) error {
	s.events = append(s.events, e)
	return nil
}

func booking(id int64, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		ServiceID:        1,
		CustomerName:     "Asha",
		CustomerEmail:    "asha@example.com",
		BookingDate:      day,
		StartTime:        types.TimeString(start),
		EndTime:          types.TimeString(end),
		Status:           status,
		ConfirmationCode: "ABC123",
	}
}

func newService(repo *fakeRepo) (*Service, *sideEffects) {
	fx := &sideEffects{}
	return NewService(repo, fakeTx{}, fx, fx, fx, logger.NewNop()), fx
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(booking(1, "10:00", "10:30", domain.StatusConfirmed))
	svc, fx := newService(repo)

	resp, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, []int64{1}, fx.cancelledNotified)
	assert.Equal(t, []int64{1}, fx.reminderCancelled)
	assert.Equal(t, []domain.BookingEventType{domain.EventBookingCancelled}, fx.events)

	_, err = svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	_, err = svc.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_ReconfirmChecksAvailability(t *testing.T) {
	repo := newFakeRepo(
		booking(1, "10:00", "11:00", domain.StatusCancelled),
		booking(2, "10:30", "11:30", domain.StatusConfirmed),
		booking(3, "14:00", "15:00", domain.StatusCancelled),
	)
	svc, fx := newService(repo)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)

	resp, err := svc.UpdateStatus(context.Background(), 3, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, []int64{3}, fx.scheduled)
	assert.Equal(t, []domain.BookingEventType{domain.EventBookingStatusChanged}, fx.events)
}

func TestUpdateStatus_Complete(t *testing.T) {
	repo := newFakeRepo(booking(1, "10:00", "10:30", domain.StatusConfirmed))
	svc, fx := newService(repo)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, []int64{1}, fx.reminderCancelled)
	assert.Empty(t, fx.cancelledNotified)

	// тот же статус: без побочных эффектов
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, fx.events, 1)

	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_Pagination(t *testing.T) {
	repo := newFakeRepo(booking(1, "10:00", "10:30", domain.StatusConfirmed))
	svc, _ := newService(repo)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Page:   3,
		Limit:  10,
		Status: ptr.Ptr("confirmed"),
		Date:   &day,
	})
	require.NoError(t, err)

	assert.Equal(t, &models.PaginationResponse{Total: 23, Page: 3, Limit: 10, Pages: 3}, resp.Pagination)
	assert.Equal(t, uint64(10), repo.lastFilter.Limit)
	assert.Equal(t, uint64(20), repo.lastFilter.Offset)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("db down")
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetCustomerBookings(t *testing.T) {
	other := booking(2, "11:00", "11:30", domain.StatusConfirmed)
	other.CustomerEmail = "other@example.com"
	repo := newFakeRepo(booking(1, "10:00", "10:30", domain.StatusConfirmed), other)
	svc, _ := newService(repo)

	resp, err := svc.GetCustomerBookings(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Nil(t, resp.Pagination)
}
