package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

const (
	channelEmail = "email"
	channelSMS   = "sms"
)

// Config параметры уведомлений
type Config struct {
	Timeout     time.Duration
	CountryCode string // "+91"
	Currency    string // символ валюты в сообщениях
}

// Service собирает и отправляет уведомления клиенту.
// nil mailer или sms означает, что канал отключен
type Service struct {
	mailer  Mailer
	sms     SMSSender
	metrics Metrics
	cfg     Config
	logger  Logger

	wg sync.WaitGroup
}

// NewService создает сервис уведомлений
func NewService(mailer Mailer, sms SMSSender, metrics Metrics, cfg Config, logger Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "+91"
	}
	return &Service{
		mailer:  mailer,
		sms:     sms,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

// BookingConfirmed асинхронно отправляет подтверждение бронирования
func (s *Service) BookingConfirmed(booking *domain.Booking) {
	s.dispatch(kindConfirmation, booking)
}

// BookingCancelled асинхронно отправляет уведомление об отмене
func (s *Service) BookingCancelled(booking *domain.Booking) {
	s.dispatch(kindCancellation, booking)
}

// Reminder синхронно отправляет напоминание.
// Ошибка возвращается, только если не удалось ни по одному включенному каналу
func (s *Service) Reminder(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, kindReminder, booking)
}

// Wait ждет завершения фоновых отправок или отмены ctx
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) dispatch(k kind, booking *domain.Booking) {
	if booking == nil {
		return
	}

	// копия: вызывающий может менять бронь после возврата
	b := *booking

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
		defer cancel()

		if err := s.send(ctx, k, &b); err != nil {
			s.logger.Warn("Notify: %s for booking id=%d failed: %v", k, b.ID, err)
		}
	}()
}

func (s *Service) send(ctx context.Context, k kind, booking *domain.Booking) error {
	msg, err := buildMessage(k, booking, s.cfg.Currency)
	if err != nil {
		s.logger.Error("Notify: failed to build %s for booking id=%d: %v", k, booking.ID, err)
		return err
	}

	var errs []error
	attempted := 0

	if s.mailer == nil {
		s.logger.Info("Notify: email disabled, skipping %s for booking id=%d", k, booking.ID)
	} else {
		attempted++
		err := s.mailer.Send(ctx, booking.CustomerEmail, msg.Subject, msg.HTML)
		s.metrics.IncNotification(channelEmail, string(k), err)
		if err != nil {
			errs = append(errs, err)
			s.logger.Warn("Notify: email %s to %s failed: %v", k, booking.CustomerEmail, err)
		} else {
			s.logger.Info("Notify: email %s sent for booking id=%d", k, booking.ID)
		}
	}

	phone := NormalizePhone(booking.CustomerPhone, s.cfg.CountryCode)
	switch {
	case s.sms == nil:
		s.logger.Info("Notify: sms disabled, skipping %s for booking id=%d", k, booking.ID)
	case phone == "":
		s.logger.Info("Notify: booking id=%d has no phone, skipping sms %s", booking.ID, k)
	default:
		attempted++
		err := s.sms.Send(ctx, phone, msg.SMS)
		s.metrics.IncNotification(channelSMS, string(k), err)
		if err != nil {
			errs = append(errs, err)
			s.logger.Warn("Notify: sms %s to %s failed: %v", k, phone, err)
		} else {
			s.logger.Info("Notify: sms %s sent for booking id=%d", k, booking.ID)
		}
	}

	if attempted > 0 && len(errs) == attempted {
		return errors.Join(errs...)
	}
	return nil
}
