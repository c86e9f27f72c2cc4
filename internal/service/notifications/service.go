package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-SchedulingService/internal/service/notifications/models"
)

// Service сервис уведомлений
type Service struct {
	notificationRepo NotificationRepository
	metrics          Metrics
	pollInterval     time.Duration
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	notificationRepo NotificationRepository,
	metrics Metrics,
	pollInterval time.Duration,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		metrics:          metrics,
		pollInterval:     pollInterval,
		logger:           logger,
	}
}

// Notify создает непрочитанное уведомление пользователю
func (s *Service) Notify(ctx context.Context, userID, title, message string) error {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	switch {
	case userID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case title == "" || utf8.RuneCountInString(title) > domain.MaxNotificationTitleLength:
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxNotificationTitleLength)
	case utf8.RuneCountInString(message) > domain.MaxNotificationMessageLength:
		return fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxNotificationMessageLength)
	}

	n := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
	}

	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("Notify: failed to create notification for user=%s: %v", userID, err)
		return fmt.Errorf("%w: Notify - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Notify: created notification id=%s for user=%s", n.ID, userID)
	return nil
}

// List уведомления пользователя сессии
func (s *Service) List(ctx context.Context, session domain.Session, unreadOnly bool) (*models.NotificationListResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}

	list, err := s.notificationRepo.ListByUser(ctx, session.UserID, unreadOnly)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d notifications for user=%s unreadOnly=%t", len(list), session.UserID, unreadOnly)
	return models.FromDomainNotificationList(list), nil
}

// UnreadCount количество непрочитанных уведомлений пользователя сессии
func (s *Service) UnreadCount(ctx context.Context, session domain.Session) (*models.UnreadCountResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}

	count, err := s.notificationRepo.CountUnread(ctx, session.UserID)
	if err != nil {
		s.logger.Error("UnreadCount: repository error for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: UnreadCount - repository error: %v", ErrInternal, err)
	}

	return &models.UnreadCountResponse{
		Count:               count,
		PollIntervalSeconds: int(s.pollInterval / time.Second),
	}, nil
}

// MarkRead помечает уведомление прочитанным. Повторный вызов ничего не меняет.
// Доступно владельцу уведомления и админу.
func (s *Service) MarkRead(ctx context.Context, id string, session domain.Session) (*models.NotificationResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}
	s.logger.Info("MarkRead: notification id=%s by user=%s", id, session.UserID)

	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("MarkRead", id, err)
	}

	if n.UserID != session.UserID && !session.IsAdmin() {
		s.logger.Warn("MarkRead: user=%s cannot access notification id=%s", session.UserID, id)
		return nil, ErrAccessDenied
	}

	if n.Read {
		return models.FromDomainNotification(n), nil
	}

	changed, err := s.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("MarkRead", id, err)
	}
	if changed {
		s.metrics.IncNotificationsRead()
	}

	n.Read = true
	return models.FromDomainNotification(n), nil
}

// ListAll все уведомления системы. Только для админа.
func (s *Service) ListAll(ctx context.Context, session domain.Session) (*models.NotificationListResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}
	if !session.IsAdmin() {
		s.logger.Warn("ListAll: user=%s with role=%s is not admin", session.UserID, session.Role)
		return nil, ErrAccessDenied
	}

	list, err := s.notificationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(list), nil
}

func (s *Service) mapRepoError(method, id string, err error) error {
	if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
		s.logger.Warn("%s: notification id=%s not found", method, id)
		return ErrNotificationNotFound
	}
	s.logger.Error("%s: repository error for notification id=%s: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}
