package notifications

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]*domain.Notification, error)
	ListAll(ctx context.Context) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string) (bool, error)
}

// Metrics бизнес-метрики уведомлений
type Metrics interface {
	IncNotificationsRead()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
