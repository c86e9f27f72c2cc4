package get_user_role

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/users"
)

const (
	msgMissingSession = "отсутствует ID пользователя"
	msgNotFound       = "пользователь не найден"
	msgForbidden      = "роль другого пользователя доступна только администратору"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/role - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.GetRole(r.Context(), userID, session)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("GET /users/{id}/role - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/role - Access denied: user_id=%s, requested_by=%s", userID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{id}/role - Failed: user_id=%s, error=%v", userID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
