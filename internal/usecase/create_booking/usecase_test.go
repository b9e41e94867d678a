package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/ptr"
	"github.com/abhi96256/Appoinment/pkg/txmanager"
	"github.com/abhi96256/Appoinment/pkg/types"
)

// fakeBookingRepo хранит брони в памяти и эмулирует уникальные индексы
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	nextID    int64
	createErr error
}

func (f *fakeBookingRepo) GetConfirmedByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.Status == domain.StatusConfirmed && b.BookingDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, b := range f.bookings {
		if b.ConfirmationCode == booking.ConfirmationCode {
			return nil, fmt.Errorf("%w: Create", bookingRepo.ErrDuplicateConfirmationCode)
		}
		if b.Status == domain.StatusConfirmed && b.BookingDate.Equal(booking.BookingDate) && b.StartTime == booking.StartTime {
			return nil, fmt.Errorf("%w: Create", bookingRepo.ErrSlotNotAvailable)
		}
	}
	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

type fakeServiceRepo struct{}

func (fakeServiceRepo) GetActive(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 1:
		return &domain.Service{ID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25, IsActive: true}, nil
	case 2:
		return &domain.Service{ID: 2, Name: "Hair Color", DurationMinutes: 120, Price: 80, IsActive: true}, nil
	case 500:
		return nil, errors.New("db down")
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeHours struct{ hours domain.BusinessHours }

func (f fakeHours) Resolve(_ context.Context, serviceID *int64) (domain.EffectiveBusinessHours, error) {
	return domain.EffectiveBusinessHours{ServiceID: serviceID, Hours: f.hours, Source: domain.HoursSourceDefault}, nil
}

// fakeTx сериализует вызовы мьютексом, как SERIALIZABLE + FOR UPDATE в БД
type fakeTx struct {
	mu  sync.Mutex
	err error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type seqCodes struct {
	codes []string
	i     int
}

func (s *seqCodes) Generate() (string, error) {
	code := s.codes[s.i%len(s.codes)]
	s.i++
	return code, nil
}

type recorder struct {
	mu        sync.Mutex
	notified  []int64
	scheduled []int64
	published []domain.BookingEventType
	created   int
	conflicts []string
}

func (r *recorder) BookingConfirmed(b *domain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, b.ID)
}

func (r *recorder) Schedule(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, b.ID)
	return errors.New("redis unavailable")
}

func (r *recorder) PublishBooking(_ context.Context, e domain.BookingEventType, _ *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, e)
	return nil
}

func (r *recorder) IncBookingCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *recorder) IncBookingConflict(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, stage)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo *fakeBookingRepo
	tx   *fakeTx
	rec  *recorder
	uc   *UseCase
}

func newFixture() *fixture {
	f := &fixture{repo: &fakeBookingRepo{}, tx: &fakeTx{}, rec: &recorder{}}
	f.uc = NewUseCase(
		f.repo,
		fakeServiceRepo{},
		fakeHours{hours: domain.DefaultBusinessHours()},
		f.tx,
		f.rec,
		f.rec,
		f.rec,
		f.rec,
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)})
	return f
}

var bookingDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func request(serviceID int64, start string) *Request {
	return &Request{
		ServiceID:     serviceID,
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
		Date:          bookingDay,
		StartTime:     types.TimeString(start),
		Notes:         ptr.Ptr("first visit"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(1, "10:30"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, "10:30", b.StartTime.String())
	assert.Equal(t, "11:00", b.EndTime.String())
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Len(t, b.ConfirmationCode, domain.ConfirmationCodeLength)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, b.ConfirmationCode)
	require.NotNil(t, b.Service)
	assert.Equal(t, "Haircut", b.Service.Name)

	assert.Equal(t, []int64{1}, f.rec.notified)
	assert.Equal(t, []int64{1}, f.rec.scheduled, "reminder failure must not fail the booking")
	assert.Equal(t, []domain.BookingEventType{domain.EventBookingCreated}, f.rec.published)
	assert.Equal(t, 1, f.rec.created)
}

func TestExecute_Conflicts(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request(1, "10:00"))
	require.NoError(t, err)

	// ровно то же время
	_, err = f.uc.Execute(context.Background(), request(1, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// пересечение внутри брони
	_, err = f.uc.Execute(context.Background(), request(1, "10:15"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// вплотную после брони
	_, err = f.uc.Execute(context.Background(), request(1, "10:30"))
	assert.NoError(t, err)

	// вплотную до брони
	_, err = f.uc.Execute(context.Background(), request(1, "09:30"))
	assert.NoError(t, err)

	assert.Equal(t, []string{conflictStageCheck, conflictStageCheck}, f.rec.conflicts)
}

func TestExecute_ConcurrentRequestsSingleWinner(t *testing.T) {
	f := newFixture()

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uc := *f.uc
			uc.codes = &seqCodes{codes: []string{fmt.Sprintf("CODE%02d", i)}}
			_, errs[i] = uc.Execute(context.Background(), request(1, "14:00"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
	assert.Equal(t, 1, succeeded)
}

func TestExecute_CodeCollisionRetries(t *testing.T) {
	f := newFixture()
	f.uc.WithCodeGenerator(&seqCodes{codes: []string{"AAAAAA"}})

	_, err := f.uc.Execute(context.Background(), request(1, "09:00"))
	require.NoError(t, err)

	// все попытки дают тот же код
	_, err = f.uc.Execute(context.Background(), request(1, "15:00"))
	assert.ErrorIs(t, err, ErrInternal)

	f.uc.WithCodeGenerator(&seqCodes{codes: []string{"AAAAAA", "BBBBBB"}})
	resp, err := f.uc.Execute(context.Background(), request(1, "15:00"))
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", resp.Booking.ConfirmationCode)
}

func TestExecute_UniqueIndexAndSerializationMapToConflict(t *testing.T) {
	f := newFixture()
	f.repo.createErr = fmt.Errorf("%w: Create: duplicate key", bookingRepo.ErrSlotNotAvailable)

	_, err := f.uc.Execute(context.Background(), request(1, "09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	f = newFixture()
	f.tx.err = fmt.Errorf("%w: commit", txmanager.ErrSerializationFailure)

	_, err = f.uc.Execute(context.Background(), request(1, "09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{conflictStageSerialization}, f.rec.conflicts)
	assert.Empty(t, f.rec.notified)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	past := request(1, "10:00")
	past.Date = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(ctx, past)
	assert.ErrorIs(t, err, ErrBookingDateInPast)

	_, err = f.uc.Execute(ctx, request(99, "10:00"))
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(ctx, request(500, "10:00"))
	assert.ErrorIs(t, err, ErrInternal)

	_, err = f.uc.Execute(ctx, request(2, "23:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = f.uc.Execute(ctx, request(1, "08:30"))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	_, err = f.uc.Execute(ctx, request(1, "17:45"))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	_, err = f.uc.Execute(ctx, request(1, "12:15"))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	bad := request(1, "10:00")
	bad.CustomerName = "  "
	_, err = f.uc.Execute(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = request(1, "10:00")
	bad.StartTime = "25:00"
	_, err = f.uc.Execute(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, f.repo.bookings)
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture()
	req := request(1, "09:00")
	req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestRandomCodeGenerator(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := RandomCodeGenerator{}.Generate()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 90)
}
