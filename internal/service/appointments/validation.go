package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// validateUpdate проверяет запрос на изменение и возвращает целевой статус, если он задан
func validateUpdate(req *models.UpdateRequest) (*domain.AppointmentStatus, error) {
	if req.Status == nil && req.HiddenFromClient == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Status == nil {
		return nil, nil
	}

	status, err := domain.ParseAppointmentStatus(*req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Pendente - начальный статус, Atrasado выставляется только по времени
	switch status {
	case domain.StatusCancelled, domain.StatusCompleted:
		return &status, nil
	default:
		return nil, fmt.Errorf("%w: status %s cannot be requested", ErrInvalidTransition, status)
	}
}
