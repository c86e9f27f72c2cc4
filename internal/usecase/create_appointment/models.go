package create_appointment

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Session        domain.Session
	UserID         string // пусто - записывается сам пользователь сессии
	ProfessionalID string
	ServiceID      string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}

// parsedRequest запрос после разбора даты и времени
type parsedRequest struct {
	userID         string
	professionalID string
	serviceID      string
	date           types.DateString
	time           types.TimeString
}
