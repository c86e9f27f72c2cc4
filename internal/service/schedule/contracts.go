package schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочего времени
type ScheduleRepository interface {
	ListByProfessional(ctx context.Context, professionalID string) ([]*domain.WorkingHours, error)
	ReplaceForProfessional(ctx context.Context, professionalID string, hours []domain.WorkingHours) error
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

