package hours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	hoursRepo "github.com/abhi96256/Appoinment/internal/infra/storage/hours"
	"github.com/abhi96256/Appoinment/internal/service/hours/models"
)

// Service сервис рабочих часов.
// Приоритет применения:
// 1. Часы конкретной услуги
// 2. Глобальные часы (service_id IS NULL)
// 3. Значения по умолчанию из конфигурации
type Service struct {
	hoursRepo   HoursRepository
	serviceRepo ServiceRepository
	txManager   TransactionManager
	defaults    domain.BusinessHours
	logger      Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	hoursRepo HoursRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	defaults domain.BusinessHours,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo:   hoursRepo,
		serviceRepo: serviceRepo,
		txManager:   txManager,
		defaults:    defaults,
		logger:      logger,
	}
}

// Resolve возвращает действующие рабочие часы для услуги (или глобальные при serviceID == nil)
func (s *Service) Resolve(ctx context.Context, serviceID *int64) (domain.EffectiveBusinessHours, error) {
	effective, _, err := s.resolve(ctx, serviceID)
	return effective, err
}

// Get действующие рабочие часы в виде DTO
func (s *Service) Get(ctx context.Context, serviceID *int64) (*models.HoursResponse, error) {
	if serviceID != nil {
		if _, err := s.serviceRepo.GetByID(ctx, *serviceID); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("Get: service id=%d not found", *serviceID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Get: failed to get service id=%d: %v", *serviceID, err)
			return nil, fmt.Errorf("%w: Get - service repository error: %v", ErrInternal, err)
		}
	}

	effective, updatedAt, err := s.resolve(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	return models.FromEffective(effective, updatedAt), nil
}

// Update создает или заменяет рабочие часы услуги или глобальные
func (s *Service) Update(ctx context.Context, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Update: setting business hours for service=%s", describe(req.ServiceID))

	// 1. Валидация
	hours := req.ToDomainHours()
	if err := hours.Validate(); err != nil {
		s.logger.Warn("Update: invalid hours %+v", hours)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Запись в транзакции (UPDATE, затем INSERT при отсутствии строки)
	var saved *domain.BusinessHoursConfig
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.hoursRepo.Upsert(ctx, &domain.BusinessHoursConfig{
			ServiceID: req.ServiceID,
			Hours:     hours,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, hoursRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", describe(req.ServiceID))
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: business hours id=%d saved", saved.ID)
	return models.FromEffective(toEffective(saved), &saved.UpdatedAt), nil
}

// Reset удаляет переопределение, после чего действует следующий уровень
func (s *Service) Reset(ctx context.Context, serviceID *int64) error {
	s.logger.Info("Reset: removing business hours for service=%s", describe(serviceID))

	if err := s.hoursRepo.DeleteByService(ctx, serviceID); err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			return ErrHoursNotFound
		}
		s.logger.Error("Reset: repository error: %v", err)
		return fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) resolve(ctx context.Context, serviceID *int64) (domain.EffectiveBusinessHours, *time.Time, error) {
	config, err := s.hoursRepo.GetWithHierarchy(ctx, serviceID)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			return domain.EffectiveBusinessHours{
				ServiceID: serviceID,
				Hours:     s.defaults,
				Source:    domain.HoursSourceDefault,
			}, nil, nil
		}
		s.logger.Error("Resolve: repository error for service=%s: %v", describe(serviceID), err)
		return domain.EffectiveBusinessHours{}, nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	effective := toEffective(config)
	if serviceID != nil {
		effective.ServiceID = serviceID
	}
	return effective, &config.UpdatedAt, nil
}

func toEffective(config *domain.BusinessHoursConfig) domain.EffectiveBusinessHours {
	source := domain.HoursSourceService
	if config.IsGlobal() {
		source = domain.HoursSourceGlobal
	}
	return domain.EffectiveBusinessHours{
		ServiceID: config.ServiceID,
		Hours:     config.Hours,
		Source:    source,
	}
}

func describe(serviceID *int64) string {
	if serviceID == nil {
		return "global"
	}
	return fmt.Sprintf("%d", *serviceID)
}
