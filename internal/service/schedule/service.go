package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	userRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

// Service сервис каталога услуг и рабочего времени профессионалов
type Service struct {
	scheduleRepo ScheduleRepository
	serviceRepo  ServiceRepository
	userRepo     UserRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// ListServices каталог услуг для формы бронирования
func (s *Service) ListServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, domain.ServicesFilter{
		CompanyID:      req.CompanyID,
		ProfessionalID: req.ProfessionalID,
	})
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	result := &models.ServiceListResponse{Services: make([]models.ServiceResponse, 0, len(services))}
	for _, svc := range services {
		result.Services = append(result.Services, *models.FromDomainService(svc))
	}
	return result, nil
}

// GetWorkingHours недельное расписание профессионала
func (s *Service) GetWorkingHours(ctx context.Context, professionalID string) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: professional=%s", professionalID)

	if err := s.checkProfessional(ctx, "GetWorkingHours", professionalID); err != nil {
		return nil, err
	}

	hours, err := s.scheduleRepo.ListByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(professionalID, hours), nil
}

// UpdateWorkingHours заменяет недельное расписание профессионала.
// Доступно самому профессионалу и админу. Дни, которых нет в запросе, становятся выходными.
// Уже созданные записи не затрагиваются.
func (s *Service) UpdateWorkingHours(ctx context.Context, professionalID string, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	if !req.Session.Valid() {
		return nil, ErrUnauthenticated
	}
	s.logger.Info("UpdateWorkingHours: professional=%s by user=%s, days=%d", professionalID, req.Session.UserID, len(req.Days))

	if req.Session.UserID != professionalID && !req.Session.IsAdmin() {
		s.logger.Warn("UpdateWorkingHours: user=%s cannot edit schedule of professional=%s", req.Session.UserID, professionalID)
		return nil, ErrAccessDenied
	}

	// 1. Валидация
	hours, err := validateDays(professionalID, req.Days)
	if err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed for professional=%s: %v", professionalID, err)
		return nil, err
	}

	// 2. Профессионал должен существовать
	if err := s.checkProfessional(ctx, "UpdateWorkingHours", professionalID); err != nil {
		return nil, err
	}

	// 3. Удаление и вставка в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceForProfessional(txCtx, professionalID, hours)
	})
	if err != nil {
		s.logger.Error("UpdateWorkingHours: failed to replace schedule for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: saved %d working days for professional=%s", len(hours), professionalID)

	result := make([]*domain.WorkingHours, 0, len(hours))
	for i := range hours {
		result = append(result, &hours[i])
	}
	return models.FromDomainWorkingHours(professionalID, result), nil
}

func (s *Service) checkProfessional(ctx context.Context, method, professionalID string) error {
	user, err := s.userRepo.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: professional id=%s not found", method, professionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get user id=%s: %v", method, professionalID, err)
		return fmt.Errorf("%w: %s - failed to get professional: %v", ErrInternal, method, err)
	}
	if !user.IsProfessional() {
		s.logger.Warn("%s: user id=%s is not a professional", method, professionalID)
		return ErrProfessionalNotFound
	}
	return nil
}

// validateDays проверяет каждый день и отсутствие повторов, результат упорядочен по дню недели
func validateDays(professionalID string, days []models.WorkingDay) ([]domain.WorkingHours, error) {
	seen := make(map[time.Weekday]bool, len(days))
	hours := make([]domain.WorkingHours, 0, len(days))

	for _, day := range days {
		wh, err := day.ToDomain(professionalID)
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d: %v", ErrInvalidInput, day.Weekday, err)
		}
		if err := wh.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if seen[wh.Weekday] {
			return nil, fmt.Errorf("%w: weekday %d is listed twice", ErrInvalidInput, day.Weekday)
		}
		seen[wh.Weekday] = true
		hours = append(hours, wh)
	}

	sort.Slice(hours, func(i, j int) bool { return hours[i].Weekday < hours[j].Weekday })
	return hours, nil
}
