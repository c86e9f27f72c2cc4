package get_notifications

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const (
	msgMissingSession = "отсутствует ID пользователя"
	msgInvalidUnread  = "параметр unread должен быть true или false"
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

// Handle GET /api/v1/notifications
// Query params: unread (bool, default false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	unreadOnly := false
	if v := r.URL.Query().Get("unread"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /notifications - Invalid unread flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUnread)
			return
		}
		unreadOnly = parsed
	}

	result, err := h.service.List(r.Context(), session, unreadOnly)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /notifications - Notifications retrieved: user_id=%s, count=%d", session.UserID, len(result.Notifications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
