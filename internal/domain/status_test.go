package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		stored    AppointmentStatus
		scheduled time.Time
		policy    StatusPolicy
		want      AppointmentStatus
	}{
		{name: "future pending stays pending", stored: StatusPending, scheduled: future, policy: PolicyLate, want: StatusPending},
		{name: "elapsed pending is late for client", stored: StatusPending, scheduled: past, policy: PolicyLate, want: StatusLate},
		{name: "elapsed pending is completed for professional", stored: StatusPending, scheduled: past, policy: PolicyCompletion, want: StatusCompleted},
		{name: "stored late resolves to completed", stored: StatusLate, scheduled: past, policy: PolicyCompletion, want: StatusCompleted},
		{name: "cancelled is terminal", stored: StatusCancelled, scheduled: past, policy: PolicyCompletion, want: StatusCancelled},
		{name: "cancelled in future is terminal", stored: StatusCancelled, scheduled: future, policy: PolicyLate, want: StatusCancelled},
		{name: "completed is terminal", stored: StatusCompleted, scheduled: future, policy: PolicyLate, want: StatusCompleted},
		{name: "exactly now is not elapsed", stored: StatusPending, scheduled: now, policy: PolicyLate, want: StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveStatus(tt.stored, tt.scheduled, now, tt.policy))
		})
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_Edges(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusPending, StatusCompleted))
	assert.True(t, CanTransition(StatusPending, StatusLate))
	assert.True(t, CanTransition(StatusLate, StatusCompleted))
	assert.False(t, CanTransition(StatusLate, StatusCancelled))
	assert.False(t, CanTransition(StatusLate, StatusPending))
}

func TestPolicyForRole(t *testing.T) {
	assert.Equal(t, PolicyLate, PolicyForRole(RoleClient))
	assert.Equal(t, PolicyCompletion, PolicyForRole(RoleProfessional))
	assert.Equal(t, PolicyCompletion, PolicyForRole(RoleAdmin))
	assert.Panics(t, func() { PolicyForRole(Role(0)) })
}

func TestPolicyForView(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		history bool
		want    StatusPolicy
	}{
		{"client active list", RoleClient, false, PolicyLate},
		{"client history", RoleClient, true, PolicyCompletion},
		{"professional agenda", RoleProfessional, false, PolicyCompletion},
		{"professional history", RoleProfessional, true, PolicyCompletion},
		{"admin list", RoleAdmin, false, PolicyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyForView(tt.role, tt.history))
		})
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	st, err := ParseAppointmentStatus("Cancelado")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, st)

	_, err = ParseAppointmentStatus("cancelled")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointment_EffectiveStatus_UsesLocalWallClock(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	appt := &Appointment{Date: "2024-06-10", Time: "22:00", Status: StatusPending}

	// 2024-06-11 00:30 UTC = 2024-06-10 21:30 BRT, appointment not yet started
	now := time.Date(2024, 6, 11, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, StatusPending, appt.EffectiveStatus(now, loc, PolicyLate))

	now = time.Date(2024, 6, 11, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, StatusLate, appt.EffectiveStatus(now, loc, PolicyLate))
}
