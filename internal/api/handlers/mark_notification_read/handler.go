package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/notifications"
)

const (
	msgMissingSession = "отсутствует ID пользователя"
	msgNotFound       = "уведомление не найдено"
	msgForbidden      = "уведомление принадлежит другому пользователю"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notificationId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("PATCH /notifications/{id}/read - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.MarkRead(r.Context(), notificationID, session)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Notification not found: notification_id=%s", notificationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notifications.ErrAccessDenied):
			h.logger.Warn("PATCH /notifications/{id}/read - Access denied: notification_id=%s, user_id=%s", notificationID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed: notification_id=%s, error=%v", notificationID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Notification read: notification_id=%s", notificationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
