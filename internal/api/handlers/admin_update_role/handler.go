package admin_update_role

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/users"
	"github.com/m04kA/SMC-SchedulingService/internal/service/users/models"
)

const (
	msgMissingSession     = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRole        = "роль должна быть cliente, profissional или admin"
	msgSelfRoleChange     = "администратор не может изменить собственную роль"
	msgNotFound           = "пользователь не найден"
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

// Handle PATCH /api/v1/admin/users/{userId}/role
// Body: {"role": "profissional", "companyId": "co-1"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/users/{id}/role - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Session = session

	result, err := h.service.UpdateRole(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/users/{id}/role - Invalid role: %q", req.Role)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, users.ErrSelfRoleChange):
			h.logger.Warn("PATCH /admin/users/{id}/role - Self role change: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgSelfRoleChange)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /admin/users/{id}/role - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Warn("PATCH /admin/users/{id}/role - Failed: user_id=%s, error=%v", userID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /admin/users/{id}/role - Role updated: user_id=%s, role=%s", userID, result.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
