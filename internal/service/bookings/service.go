package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	"github.com/abhi96256/Appoinment/internal/service/availability"
	"github.com/abhi96256/Appoinment/internal/service/bookings/models"
	"github.com/abhi96256/Appoinment/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	reminders   ReminderScheduler
	events      EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	reminders ReminderScheduler,
	events EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		reminders:   reminders,
		events:      events,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с услугой
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией и пагинацией
// Сортировка: сначала поздние даты, внутри дня по времени начала
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, page, limit, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	logMsg := fmt.Sprintf("List: fetching bookings page=%d limit=%d", page, limit)
	if filter.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *filter.Status)
	}
	if filter.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", filter.Date.Format(domain.DateFormat))
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings)
	resp.Pagination = models.FromDomainPagination(domain.NewPagination(total, page, limit))

	s.logger.Info("List: fetched %d of %d bookings", len(bookings), total)
	return resp, nil
}

// GetCustomerBookings получает все бронирования клиента по email
func (s *Service) GetCustomerBookings(ctx context.Context, email string) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for email=%s", email)

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{CustomerEmail: &email})
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for email=%s", len(bookings), email)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Снимает напоминание, уведомляет клиента и публикует событие. Ошибки побочных эффектов только логируются
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	}

	if err := s.setStatus(ctx, "Cancel", booking, domain.StatusCancelled); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус бронирования.
// Возврат в confirmed повторно проверяет, что время не занято другой подтверждённой бронью
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	// 1. Валидируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := s.get(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if booking.Status == newStatus {
		s.logger.Info("UpdateStatus: booking id=%d already has status=%s", id, newStatus)
		return models.FromDomainBooking(booking), nil
	}

	// 3. Обновляем статус
	if newStatus == domain.StatusConfirmed {
		err = s.reconfirm(ctx, booking)
	} else {
		err = s.setStatus(ctx, "UpdateStatus", booking, newStatus)
	}
	if err != nil {
		return nil, err
	}

	// 4. Побочные эффекты
	s.afterStatusChange(ctx, booking)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", id, newStatus)
	return models.FromDomainBooking(booking), nil
}

// reconfirm возвращает бронь в confirmed атомарно с проверкой доступности
func (s *Service) reconfirm(ctx context.Context, booking *domain.Booking) error {
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		confirmed, err := s.bookingRepo.GetConfirmedByDate(txCtx, booking.BookingDate)
		if err != nil {
			return err
		}

		if !availability.IsAvailable(confirmed, booking.BookingDate, booking.StartTime, booking.EndTime) {
			return ErrSlotNotAvailable
		}

		return s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed)
	})

	switch {
	case err == nil:
		booking.Status = domain.StatusConfirmed
		return nil
	case errors.Is(err, ErrSlotNotAvailable),
		errors.Is(err, bookingRepo.ErrSlotNotAvailable),
		errors.Is(err, bookingRepo.ErrSerialization),
		errors.Is(err, txmanager.ErrSerializationFailure):
		s.logger.Warn("UpdateStatus: booking id=%d cannot be confirmed, time is taken: %v", booking.ID, err)
		return ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	default:
		s.logger.Error("UpdateStatus: failed to confirm booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}
}

func (s *Service) setStatus(ctx context.Context, op string, booking *domain.Booking, status domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during update", op, booking.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking.Status = status
	return nil
}

// afterStatusChange напоминания, уведомления и события по новому статусу
func (s *Service) afterStatusChange(ctx context.Context, booking *domain.Booking) {
	eventType := domain.EventBookingStatusChanged

	switch booking.Status {
	case domain.StatusConfirmed:
		if err := s.reminders.Schedule(ctx, booking); err != nil {
			s.logger.Warn("afterStatusChange: failed to schedule reminder for booking id=%d: %v", booking.ID, err)
		}
	case domain.StatusCancelled:
		eventType = domain.EventBookingCancelled
		if err := s.reminders.Cancel(ctx, booking.ID); err != nil {
			s.logger.Warn("afterStatusChange: failed to cancel reminder for booking id=%d: %v", booking.ID, err)
		}
		s.notifier.BookingCancelled(booking)
	case domain.StatusCompleted:
		if err := s.reminders.Cancel(ctx, booking.ID); err != nil {
			s.logger.Warn("afterStatusChange: failed to cancel reminder for booking id=%d: %v", booking.ID, err)
		}
	}

	if err := s.events.PublishBooking(ctx, eventType, booking); err != nil {
		s.logger.Warn("afterStatusChange: failed to publish %s for booking id=%d: %v", eventType, booking.ID, err)
	}
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
