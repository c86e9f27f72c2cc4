package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// ListServicesRequest фильтр каталога
type ListServicesRequest struct {
	CompanyID      *string
	ProfessionalID *string
}

// UpdateWorkingHoursRequest полная замена расписания профессионала
type UpdateWorkingHoursRequest struct {
	Session domain.Session `json:"-"`
	Days    []WorkingDay   `json:"days"`
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	CompanyID       *string `json:"companyId,omitempty"`
	ProfessionalID  *string `json:"professionalId,omitempty"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// WorkingDay сетка одного дня недели. Weekday: 0 - воскресенье ... 6 - суббота.
type WorkingDay struct {
	Weekday             int    `json:"weekday"`
	OpenTime            string `json:"openTime"`  // "09:00"
	CloseTime           string `json:"closeTime"` // "18:00"
	SlotIntervalMinutes int    `json:"slotIntervalMinutes"`
}

// WorkingHoursResponse расписание профессионала по дням недели
type WorkingHoursResponse struct {
	ProfessionalID string       `json:"professionalId"`
	Days           []WorkingDay `json:"days"`
}

// Методы конвертации

// ToDomain конвертирует день в domain модель. Время приводится к виду "HH:MM".
func (d WorkingDay) ToDomain(professionalID string) (domain.WorkingHours, error) {
	open, err := types.NewTimeStringFromString(d.OpenTime)
	if err != nil {
		return domain.WorkingHours{}, err
	}
	closeAt, err := types.NewTimeStringFromString(d.CloseTime)
	if err != nil {
		return domain.WorkingHours{}, err
	}

	return domain.WorkingHours{
		ProfessionalID:      professionalID,
		Weekday:             time.Weekday(d.Weekday),
		OpenTime:            open,
		CloseTime:           closeAt,
		SlotIntervalMinutes: d.SlotIntervalMinutes,
	}, nil
}

// FromDomainService конвертирует услугу
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		CompanyID:       s.CompanyID,
		ProfessionalID:  s.ProfessionalID,
	}
}

// FromDomainWorkingHours конвертирует расписание, дни упорядочены с воскресенья
func FromDomainWorkingHours(professionalID string, hours []*domain.WorkingHours) *WorkingHoursResponse {
	result := &WorkingHoursResponse{
		ProfessionalID: professionalID,
		Days:           make([]WorkingDay, 0, len(hours)),
	}
	for _, h := range hours {
		result.Days = append(result.Days, WorkingDay{
			Weekday:             int(h.Weekday),
			OpenTime:            h.OpenTime.String(),
			CloseTime:           h.CloseTime.String(),
			SlotIntervalMinutes: h.SlotIntervalMinutes,
		})
	}
	return result
}
