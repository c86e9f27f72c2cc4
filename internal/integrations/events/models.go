package events

import "time"

// Типы событий о записях
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// Event событие о записи. Ключ сообщения - AggregateID,
// поэтому события одной записи попадают в одну партицию по порядку.
type Event struct {
	ID          string
	Type        string
	AggregateID string
	OccurredAt  time.Time
	Payload     AppointmentPayload
}

// AppointmentPayload тело события
type AppointmentPayload struct {
	AppointmentID  string `json:"appointmentId"`
	UserID         string `json:"userId"`
	ProfessionalID string `json:"professionalId"`
	ServiceID      string `json:"serviceId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	ActorID        string `json:"actorId,omitempty"`
	OccurredAt     string `json:"occurredAt"`
}
