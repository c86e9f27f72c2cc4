package list_appointments

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров userId, professionalId, history
func ToServiceRequest(session domain.Session, query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{Session: session}

	if v := query.Get("userId"); v != "" {
		req.UserID = &v
	}
	if v := query.Get("professionalId"); v != "" {
		req.ProfessionalID = &v
	}
	if v := query.Get("history"); v != "" {
		history, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.History = history
	}

	return req, nil
}
