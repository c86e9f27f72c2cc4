package admin_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const msgMissingSession = "отсутствует ID пользователя"

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

// Handle GET /api/v1/admin/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/notifications - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.ListAll(r.Context(), session)
	if err != nil {
		h.logger.Warn("GET /admin/notifications - Failed: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /admin/notifications - Notifications retrieved: count=%d", len(result.Notifications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
