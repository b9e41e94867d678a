package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhi96256/Appoinment/internal/domain"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	"github.com/abhi96256/Appoinment/internal/service/catalog/models"
	"github.com/abhi96256/Appoinment/pkg/ptr"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает активные услуги, отсортированные по имени
func (s *Service) List(ctx context.Context) ([]models.ServiceResponse, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Get возвращает активную услугу
func (s *Service) Get(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Get: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Get: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Create создает услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	service := req.ToDomain()
	service.Name = strings.TrimSpace(service.Name)

	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d name=%s", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу, включая неактивные
func (s *Service) Update(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	// 1. Получаем текущую услугу
	service, err := s.serviceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", req.ID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения и валидируем
	req.ApplyTo(service)
	service.Name = strings.TrimSpace(service.Name)
	if err := validateService(service); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", req.ID, err)
		return nil, err
	}

	// 3. Сохраняем
	updated, err := s.serviceRepo.Update(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%d", updated.ID)
	return models.FromDomainService(updated), nil
}

// Delete мягко удаляет услугу. Существующие бронирования сохраняются
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deactivated service id=%d", id)
	return nil
}

// defaultServices стартовый каталог для пустой базы
var defaultServices = []domain.Service{
	{Name: "Haircut", DurationMinutes: 30, Price: 25.00, Description: ptr.Ptr("Professional haircut and styling")},
	{Name: "Hair Color", DurationMinutes: 120, Price: 80.00, Description: ptr.Ptr("Full hair coloring service")},
	{Name: "Manicure", DurationMinutes: 45, Price: 35.00, Description: ptr.Ptr("Complete nail care and polish")},
	{Name: "Facial Treatment", DurationMinutes: 60, Price: 65.00, Description: ptr.Ptr("Deep cleansing facial treatment")},
	{Name: "Massage Therapy", DurationMinutes: 90, Price: 100.00, Description: ptr.Ptr("Relaxing full-body massage")},
}

// SeedDefaults создает стартовые услуги, если таблица пуста. Возвращает количество созданных
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	total, err := s.serviceRepo.Count(ctx)
	if err != nil {
		s.logger.Error("SeedDefaults: count error: %v", err)
		return 0, fmt.Errorf("%w: SeedDefaults - count error: %v", ErrInternal, err)
	}

	if total > 0 {
		s.logger.Info("SeedDefaults: catalog already has %d services, skipping", total)
		return 0, nil
	}

	created := 0
	for _, def := range defaultServices {
		service := def
		service.IsActive = true
		if _, err := s.serviceRepo.Create(ctx, &service); err != nil {
			s.logger.Error("SeedDefaults: failed to create %s: %v", def.Name, err)
			return created, fmt.Errorf("%w: SeedDefaults - create %s: %v", ErrInternal, def.Name, err)
		}
		created++
	}

	s.logger.Info("SeedDefaults: seeded %d default services", created)
	return created, nil
}
