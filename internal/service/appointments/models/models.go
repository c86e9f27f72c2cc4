package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListRequest запрос списка записей
type ListRequest struct {
	Session        domain.Session
	UserID         *string // записи клиента
	ProfessionalID *string // записи профессионала
	History        bool    // true - все записи, включая завершенные, отмененные и скрытые
}

// UpdateRequest частичное обновление записи
type UpdateRequest struct {
	Session          domain.Session `json:"-"`
	Status           *string        `json:"status,omitempty"`
	HiddenFromClient *bool          `json:"hiddenFromClient,omitempty"`
}

// Response модели

// AppointmentResponse запись глазами конкретного зрителя: Status - эффективный статус
type AppointmentResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	ProfessionalID   string    `json:"professionalId"`
	ServiceID        string    `json:"serviceId"`
	CompanyID        *string   `json:"companyId,omitempty"`
	Date             string    `json:"date"` // "2024-06-10"
	Time             string    `json:"time"` // "14:00"
	Status           string    `json:"status"`
	HiddenFromClient bool      `json:"hiddenFromClient"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO с эффективным статусом
func FromDomainAppointment(a *domain.Appointment, effective domain.AppointmentStatus) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		ProfessionalID:   a.ProfessionalID,
		ServiceID:        a.ServiceID,
		CompanyID:        a.CompanyID,
		Date:             a.Date.String(),
		Time:             a.Time.String(),
		Status:           string(effective),
		HiddenFromClient: a.HiddenFromClient,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
