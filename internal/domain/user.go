package domain

import "time"

// User пользователь системы
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CompanyID *string // для профессионалов - компания, к которой они относятся
	CreatedAt time.Time
}

// IsProfessional returns true if the user can receive bookings
func (u *User) IsProfessional() bool {
	return u.Role == RoleProfessional
}

// Session identifies the caller of a core operation.
// It is built once per request and passed explicitly, never read from ambient state.
type Session struct {
	UserID string
	Role   Role
}

// IsAdmin returns true for administrator sessions
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Valid returns true if the session carries a user and a known role
func (s Session) Valid() bool {
	return s.UserID != "" && s.Role.Valid()
}

// UsersFilter фильтр списка пользователей
type UsersFilter struct {
	Role      *Role
	CompanyID *string
}
