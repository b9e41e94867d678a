package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/domain"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
	err      error
}

func (f *fakeBookingRepo) GetConfirmedByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, f.err
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	err      error
}

func (f *fakeServiceRepo) GetActive(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok || !s.IsActive {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeHours struct {
	hours domain.BusinessHours
}

func (f fakeHours) Resolve(_ context.Context, serviceID *int64) (domain.EffectiveBusinessHours, error) {
	return domain.EffectiveBusinessHours{ServiceID: serviceID, Hours: f.hours, Source: domain.HoursSourceDefault}, nil
}

type fakeMetrics struct {
	served []int
}

func (f *fakeMetrics) ObserveSlotsServed(n int) {
	f.served = append(f.served, n)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	bookings *fakeBookingRepo
	services *fakeServiceRepo
	metrics  *fakeMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		services: &fakeServiceRepo{services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25, IsActive: true},
			2: {ID: 2, Name: "Hair Color", DurationMinutes: 120, Price: 80, IsActive: true},
			3: {ID: 3, Name: "Retired", DurationMinutes: 60, IsActive: false},
		}},
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.services, fakeHours{hours: domain.DefaultBusinessHours()}, f.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute_FiltersBookedSlots(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = []*domain.Booking{
		{BookingDate: date(2025, 6, 2), StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
		{BookingDate: date(2025, 6, 2), StartTime: "17:00", EndTime: "18:00", Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date(2025, 6, 2)})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"09:00", "11:00", "13:00", "14:00", "15:00", "16:00"}, starts)
	assert.Equal(t, "Haircut", resp.Service.Name)
	assert.Equal(t, []int{6}, f.metrics.served)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date(2025, 5, 31)})
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, f.bookings.calls)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 99, Date: date(2025, 6, 2)})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: 3, Date: date(2025, 6, 2)})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 0, Date: date(2025, 6, 2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	f := newFixture()
	f.bookings.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date(2025, 6, 2)})
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture()
	f.services.err = errors.New("connection reset")

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date(2025, 6, 2)})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_LongServiceStraddlesBreak(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 2, Date: date(2025, 6, 2)})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, domain.Slot{StartTime: "11:00", EndTime: "13:00", DurationMinutes: 120})
	assert.Equal(t, domain.Slot{StartTime: "16:00", EndTime: "18:00", DurationMinutes: 120}, resp.Slots[len(resp.Slots)-1])
}
