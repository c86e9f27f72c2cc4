package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// NotificationResponse уведомление
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse список уведомлений, сначала новые
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// UnreadCountResponse счетчик непрочитанных и рекомендуемый интервал опроса
type UnreadCountResponse struct {
	Count               int `json:"count"`
	PollIntervalSeconds int `json:"pollIntervalSeconds"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	result := &NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		result.Notifications = append(result.Notifications, *FromDomainNotification(n))
	}
	return result
}
