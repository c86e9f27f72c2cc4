package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pendente"
	StatusLate      AppointmentStatus = "Atrasado"
	StatusCompleted AppointmentStatus = "Completo"
	StatusCancelled AppointmentStatus = "Cancelado"
)

// ErrUnknownStatus возвращается при разборе неизвестного статуса
var ErrUnknownStatus = fmt.Errorf("%w: unknown appointment status", ErrValidation)

// ParseAppointmentStatus validates a stored or requested status value
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case StatusPending, StatusLate, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// IsTerminal returns true for Completo and Cancelado
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OccupiesSlot returns true if an appointment in this status blocks its slot
func (s AppointmentStatus) OccupiesSlot() bool {
	return s != StatusCancelled
}

// transitions допустимые переходы. Из терминальных статусов выхода нет.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending: {StatusCancelled, StatusCompleted, StatusLate},
	StatusLate:    {StatusCompleted},
}

// CanTransition reports whether from -> to is an edge of the state machine
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusPolicy decides what an elapsed, non-terminal appointment looks like to a viewer
type StatusPolicy int

const (
	// PolicyLate: elapsed appointments are shown as Atrasado (client-facing)
	PolicyLate StatusPolicy = iota + 1
	// PolicyCompletion: elapsed appointments are treated as Completo (professional/admin/history)
	PolicyCompletion
)

// PolicyForRole returns the viewer policy for a role
func PolicyForRole(r Role) StatusPolicy {
	switch r {
	case RoleClient:
		return PolicyLate
	case RoleProfessional, RoleAdmin:
		return PolicyCompletion
	default:
		panic(fmt.Sprintf("domain: no status policy for %s", r))
	}
}

// PolicyForView returns the viewer policy for a role and a list view.
// History views resolve elapsed appointments as Completo for every role.
func PolicyForView(r Role, history bool) StatusPolicy {
	if history {
		return PolicyCompletion
	}
	return PolicyForRole(r)
}

// EffectiveStatus derives the status a viewer sees.
// Pure function of stored status, scheduled instant and current time.
func EffectiveStatus(stored AppointmentStatus, scheduledAt, now time.Time, policy StatusPolicy) AppointmentStatus {
	if stored.IsTerminal() {
		return stored
	}

	if !scheduledAt.Before(now) {
		// Сохраненный Atrasado мог остаться от старых записей; в будущем он не имеет смысла
		return StatusPending
	}

	switch policy {
	case PolicyLate:
		return StatusLate
	case PolicyCompletion:
		return StatusCompleted
	default:
		panic(fmt.Sprintf("domain: unknown status policy %d", policy))
	}
}
