package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// UpdateRoleRequest смена роли пользователя админом
type UpdateRoleRequest struct {
	Session   domain.Session `json:"-"`
	Role      string         `json:"role"`
	CompanyID *string        `json:"companyId,omitempty"`
}

// Response модели

// RoleResponse роль пользователя
type RoleResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// UserResponse пользователь
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CompanyID *string   `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfessionalResponse профессионал в форме бронирования, без персональных данных
type ProfessionalResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CompanyID *string `json:"companyId,omitempty"`
}

// UserListResponse список пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ProfessionalListResponse список профессионалов
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

// RecentAppointment запись в обзоре админа
type RecentAppointment struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	ProfessionalID string `json:"professionalId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Status         string `json:"status"`
}

// OverviewResponse сводка для админа
type OverviewResponse struct {
	UsersByRole          map[string]int      `json:"usersByRole"`
	AppointmentsByStatus map[string]int      `json:"appointmentsByStatus"`
	NotificationsTotal   int                 `json:"notificationsTotal"`
	NotificationsUnread  int                 `json:"notificationsUnread"`
	RecentUsers          []UserResponse      `json:"recentUsers"`
	RecentAppointments   []RecentAppointment `json:"recentAppointments"`
}

// Методы конвертации

// FromDomainUser конвертирует пользователя
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
	}
}

// FromDomainUserList конвертирует список пользователей
func FromDomainUserList(list []*domain.User) *UserListResponse {
	result := &UserListResponse{Users: make([]UserResponse, 0, len(list))}
	for _, u := range list {
		result.Users = append(result.Users, *FromDomainUser(u))
	}
	return result
}

// FromDomainProfessional конвертирует профессионала
func FromDomainProfessional(u *domain.User) *ProfessionalResponse {
	if u == nil {
		return nil
	}
	return &ProfessionalResponse{ID: u.ID, Name: u.Name, CompanyID: u.CompanyID}
}
