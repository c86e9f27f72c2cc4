package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole возвращается при разборе неизвестной роли
var ErrUnknownRole = fmt.Errorf("%w: unknown user role", ErrValidation)

// Role роль пользователя. Закрытое множество: любое значение вне констант недопустимо.
type Role int

const (
	RoleClient Role = iota + 1
	RoleProfessional
	RoleAdmin
)

// Значения ролей в хранилище
const (
	roleClientValue       = "cliente"
	roleProfessionalValue = "profissional"
	roleAdminValue        = "admin"
)

// ParseRole разбирает сохраненное значение роли
func ParseRole(s string) (Role, error) {
	switch s {
	case roleClientValue:
		return RoleClient, nil
	case roleProfessionalValue:
		return RoleProfessional, nil
	case roleAdminValue:
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// String возвращает значение роли для хранения и API
func (r Role) String() string {
	switch r {
	case RoleClient:
		return roleClientValue
	case RoleProfessional:
		return roleProfessionalValue
	case RoleAdmin:
		return roleAdminValue
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid возвращает true для одной из трех ролей
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProfessional, RoleAdmin:
		return true
	default:
		return false
	}
}

// AllRoles список ролей в порядке объявления
func AllRoles() []Role {
	return []Role{RoleClient, RoleProfessional, RoleAdmin}
}

// MarshalText реализует encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.New("cannot marshal invalid role")
	}
	return []byte(r.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
