package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
)

const (
	msgMissingSession = "отсутствует ID пользователя"
	msgInvalidHistory = "параметр history должен быть true или false"
	msgForbidden      = "нет доступа к записям этого пользователя"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: userId, professionalId, history (bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	req, err := ToServiceRequest(session, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid history flag: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHistory)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments - Access denied: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: user_id=%s, count=%d", session.UserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
