package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*parsedRequest, error) {
	if !req.Session.Valid() {
		return nil, ErrUnauthenticated
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = req.Session.UserID
	}
	if userID != req.Session.UserID && !req.Session.IsAdmin() {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(req.ProfessionalID) == "" {
		return nil, fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tm, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &parsedRequest{
		userID:         userID,
		professionalID: req.ProfessionalID,
		serviceID:      req.ServiceID,
		date:           date,
		time:           tm,
	}, nil
}

// validateNotInPast проверяет, что момент записи не раньше now
func validateNotInPast(date types.DateString, tm types.TimeString, now time.Time, loc *time.Location) error {
	scheduledAt, err := date.At(tm, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if scheduledAt.Before(now) {
		return fmt.Errorf("%w: %s %s", ErrDateInPast, date, tm)
	}

	return nil
}

// validateOnGrid проверяет, что время является началом слота сетки
func validateOnGrid(workingHours *domain.WorkingHours, tm types.TimeString) error {
	candidates, err := workingHours.CandidateTimes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	for _, candidate := range candidates {
		if candidate.Equal(tm) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, tm)
}

// validateServiceOwner проверяет, что услуга закреплена за этим профессионалом (если закреплена)
func validateServiceOwner(service *domain.Service, professionalID string) error {
	if service.ProfessionalID != nil && *service.ProfessionalID != professionalID {
		return ErrServiceNotOffered
	}
	return nil
}
