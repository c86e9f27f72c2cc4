package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// CreateIfSlotFree атомарно проверяет слот и вставляет запись, иначе ErrSlotTaken
	CreateIfSlotFree(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория рабочего времени
type ScheduleRepository interface {
	GetForWeekday(ctx context.Context, professionalID string, weekday time.Weekday) (*domain.WorkingHours, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker блокировка слота на время проверки и вставки
type SlotLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Notifier отправляет уведомление пользователю
type Notifier interface {
	Notify(ctx context.Context, userID, title, message string) error
}

// EventPublisher публикует события о записях
type EventPublisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

// Metrics бизнес-метрики бронирования
type Metrics interface {
	IncAppointmentsCreated()
	IncBookingConflicts()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
