package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	"github.com/abhi96256/Appoinment/internal/service/availability"
	"github.com/abhi96256/Appoinment/pkg/txmanager"
)

// maxCodeAttempts количество попыток вставки при коллизии кода подтверждения
const maxCodeAttempts = 3

// Стадии конфликта для метрик
const (
	conflictStageCheck         = "check"
	conflictStageUnique        = "unique_index"
	conflictStageSerialization = "serialization"
)

var errCodeCollision = errors.New("create_booking: confirmation code collision")

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	hours        HoursResolver
	txManager    TransactionManager
	codes        CodeGenerator
	notifier     Notifier
	reminders    ReminderScheduler
	events       EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	hours HoursResolver,
	txManager TransactionManager,
	notifier Notifier,
	reminders ReminderScheduler,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		hours:        hours,
		txManager:    txManager,
		codes:        RandomCodeGenerator{},
		notifier:     notifier,
		reminders:    reminders,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithCodeGenerator подменяет генератор кодов подтверждения (для тестов)
func (uc *UseCase) WithCodeGenerator(g CodeGenerator) *UseCase {
	uc.codes = g
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// подтверждённые брони на дату блокируются (FOR UPDATE). Уникальный индекс
// (booking_date, start_time) по подтверждённым броням страхует от гонки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, email=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if availability.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrBookingDateInPast
	}

	// 3. Получаем активную услугу
	service, err := uc.serviceRepo.GetActive(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Время окончания: начало + длительность услуги в минутах
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: %s + %d minutes overflows the day", req.StartTime, service.DurationMinutes)
		return nil, ErrInvalidTimeSlot
	}

	// 5. Рабочие часы
	hours, err := uc.hours.Resolve(ctx, &service.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve business hours: %v", ErrInternal, err)
	}

	if !availability.FitsBusinessHours(hours.Hours, req.StartTime, endTime) {
		uc.logger.Warn("CreateBooking: %s-%s is outside business hours %+v (source: %s)",
			req.StartTime, endTime, hours.Hours, hours.Source)
		return nil, ErrOutsideBusinessHours
	}

	// 6. Резервирование. Коллизия кода подтверждения повторяется с новым кодом
	var created *domain.Booking
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := uc.codes.Generate()
		if err != nil {
			uc.logger.Error("CreateBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			ServiceID:        service.ID,
			CustomerName:     req.CustomerName,
			CustomerEmail:    req.CustomerEmail,
			CustomerPhone:    req.CustomerPhone,
			BookingDate:      req.Date,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			Status:           domain.StatusConfirmed,
			Notes:            req.Notes,
			ConfirmationCode: code,
		}

		created, err = uc.reserve(ctx, booking)
		if errors.Is(err, errCodeCollision) {
			uc.logger.Warn("CreateBooking: confirmation code collision, attempt %d/%d", attempt, maxCodeAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	if created == nil {
		uc.logger.Error("CreateBooking: could not generate a unique confirmation code in %d attempts", maxCodeAttempts)
		return nil, fmt.Errorf("%w: confirmation code attempts exhausted", ErrInternal)
	}

	created.Service = service
	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d code=%s", created.ID, created.ConfirmationCode)

	// 7. Побочные эффекты после коммита, на ответ не влияют
	uc.afterCommit(ctx, created)

	return &Response{Booking: created}, nil
}

// reserve проверяет доступность и вставляет бронь в одной транзакции
func (uc *UseCase) reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Подтверждённые брони на дату с блокировкой
		bookings, err := uc.bookingRepo.GetConfirmedByDate(txCtx, booking.BookingDate)
		if err != nil {
			return err
		}

		// 6.2. Проверка пересечений
		if !availability.IsAvailable(bookings, booking.BookingDate, booking.StartTime, booking.EndTime) {
			uc.logger.Warn("CreateBooking: %s %s-%s overlaps a confirmed booking",
				booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime)
			uc.metrics.IncBookingConflict(conflictStageCheck)
			return ErrSlotNotAvailable
		}

		// 6.3. Вставка
		result, err = uc.bookingRepo.Create(txCtx, booking)
		return err
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, ErrSlotNotAvailable):
		return nil, ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
		uc.logger.Warn("CreateBooking: unique slot index rejected insert: %v", err)
		uc.metrics.IncBookingConflict(conflictStageUnique)
		return nil, ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrSerialization), errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
		uc.metrics.IncBookingConflict(conflictStageSerialization)
		return nil, ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrDuplicateConfirmationCode):
		return nil, errCodeCollision
	default:
		uc.logger.Error("CreateBooking: failed to reserve slot: %v", err)
		return nil, fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
	}
}

// afterCommit уведомления, напоминание и событие. Ошибки только логируются
func (uc *UseCase) afterCommit(ctx context.Context, booking *domain.Booking) {
	uc.notifier.BookingConfirmed(booking)

	if err := uc.reminders.Schedule(ctx, booking); err != nil {
		uc.logger.Warn("CreateBooking: failed to schedule reminder for booking id=%d: %v", booking.ID, err)
	}

	if err := uc.events.PublishBooking(ctx, domain.EventBookingCreated, booking); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v",
			domain.EventBookingCreated, booking.ID, err)
	}
}
