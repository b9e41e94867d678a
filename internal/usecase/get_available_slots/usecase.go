package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhi96256/Appoinment/internal/domain"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	"github.com/abhi96256/Appoinment/internal/service/availability"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	hours        HoursResolver
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	hours HoursResolver,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		hours:        hours,
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

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем активную услугу
	service, err := uc.serviceRepo.GetActive(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Рабочие часы с учетом иерархии (услуга -> глобальные -> по умолчанию)
	hours, err := uc.hours.Resolve(ctx, &service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve business hours: %v", ErrInternal, err)
	}

	response := &Response{
		Service: service,
		Date:    req.Date,
		Hours:   hours,
		Slots:   []domain.Slot{},
	}

	// 5. Генерируем кандидатов. Для прошедшей даты список пуст, в БД не ходим
	candidates := availability.GenerateSlots(hours.Hours, service.DurationMinutes, req.Date, now)
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidate slots for service=%d, date=%s",
			req.ServiceID, req.Date.Format(domain.DateFormat))
		uc.metrics.ObserveSlotsServed(0)
		return response, nil
	}

	// 6. Подтверждённые бронирования на дату
	bookings, err := uc.bookingRepo.GetConfirmedByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Отбрасываем занятые слоты
	response.Slots = availability.FilterAvailable(candidates, bookings, req.Date)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for service=%d, date=%s (hours source: %s)",
		len(response.Slots), len(candidates), req.ServiceID, req.Date.Format(domain.DateFormat), hours.Source)
	uc.metrics.ObserveSlotsServed(len(response.Slots))

	return response, nil
}
