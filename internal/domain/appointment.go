package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Appointment запись клиента к профессионалу на услугу
type Appointment struct {
	ID               string
	UserID           string
	ProfessionalID   string
	ServiceID        string
	CompanyID        *string
	Date             types.DateString
	Time             types.TimeString
	Status           AppointmentStatus
	HiddenFromClient bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ScheduledAt returns the wall-clock instant of the appointment in loc
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	return a.Date.At(a.Time, loc)
}

// EffectiveStatus returns the status the viewer with the given policy sees at now.
// An unparsable date/time leaves the stored status untouched.
func (a *Appointment) EffectiveStatus(now time.Time, loc *time.Location, policy StatusPolicy) AppointmentStatus {
	scheduledAt, err := a.ScheduledAt(loc)
	if err != nil {
		return a.Status
	}
	return EffectiveStatus(a.Status, scheduledAt, now, policy)
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status.OccupiesSlot()
}

// SlotKey returns the key the booking invariant is defined on
func (a *Appointment) SlotKey() SlotKey {
	return SlotKey{ProfessionalID: a.ProfessionalID, Date: a.Date, Time: a.Time}
}

// IsOwnedBy returns true if userID booked the appointment
func (a *Appointment) IsOwnedBy(userID string) bool {
	return a.UserID == userID
}

// IsServedBy returns true if userID is the appointment's professional
func (a *Appointment) IsServedBy(userID string) bool {
	return a.ProfessionalID == userID
}

// SlotKey (professionalId, date, time) - at most one active appointment per key
type SlotKey struct {
	ProfessionalID string
	Date           types.DateString
	Time           types.TimeString
}

// String returns a stable representation used for lock names
func (k SlotKey) String() string {
	return k.ProfessionalID + "|" + k.Date.String() + "|" + k.Time.String()
}

// AppointmentsFilter фильтр выборки записей. Пустой фильтр - все записи (только для админа).
type AppointmentsFilter struct {
	UserID         *string
	ProfessionalID *string
	Date           *types.DateString
	DateTo         *types.DateString // включительно
	Status         *AppointmentStatus
	OnlyActive     bool // исключить Cancelado
}
