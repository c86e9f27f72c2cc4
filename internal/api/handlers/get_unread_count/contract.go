package get_unread_count

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/notifications/models"
)

type NotificationService interface {
	UnreadCount(ctx context.Context, session domain.Session) (*models.UnreadCountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
