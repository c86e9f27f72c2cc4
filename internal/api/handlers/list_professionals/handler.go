package list_professionals

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
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

// Handle GET /api/v1/professionals
// Query params: companyId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var companyID *string
	if v := r.URL.Query().Get("companyId"); v != "" {
		companyID = &v
	}

	result, err := h.service.ListProfessionals(r.Context(), companyID)
	if err != nil {
		h.logger.Error("GET /professionals - Failed to list professionals: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
