package create_appointment

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	UserID         string `json:"userId,omitempty"` // только для админа
	ProfessionalID string `json:"professionalId"`
	ServiceID      string `json:"serviceId"`
	Date           string `json:"date"` // "2024-06-10"
	Time           string `json:"time"` // "14:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(session domain.Session) *createAppointment.Request {
	return &createAppointment.Request{
		Session:        session,
		UserID:         r.UserID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Date:           r.Date,
		Time:           r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Новая запись всегда в статусе Pendente.
func FromUseCaseResponse(resp *createAppointment.Response) *appointmentModels.AppointmentResponse {
	return appointmentModels.FromDomainAppointment(resp.Appointment, resp.Appointment.Status)
}
