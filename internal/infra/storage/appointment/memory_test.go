package appointment

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppt(id, user, prof, date, tm string) *domain.Appointment {
	return &domain.Appointment{
		ID:             id,
		UserID:         user,
		ProfessionalID: prof,
		ServiceID:      "svc-1",
		Date:           types.DateString(date),
		Time:           types.TimeString(tm),
		Status:         domain.StatusPending,
	}
}

func TestMemoryRepository_CreateIfSlotFree(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.CreateIfSlotFree(ctx, newAppt("a1", "u1", "p1", "2030-01-10", "10:00"))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.CreateIfSlotFree(ctx, newAppt("a2", "u2", "p1", "2030-01-10", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// другой профессионал на то же время
	_, err = repo.CreateIfSlotFree(ctx, newAppt("a3", "u2", "p2", "2030-01-10", "10:00"))
	assert.NoError(t, err)
}

func TestMemoryRepository_CancelledFreesSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.CreateIfSlotFree(ctx, newAppt("a1", "u1", "p1", "2030-01-10", "10:00"))
	require.NoError(t, err)

	ok, err := repo.UpdateStatusIfUnchanged(ctx, "a1", domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.CreateIfSlotFree(ctx, newAppt("a2", "u2", "p1", "2030-01-10", "10:00"))
	assert.NoError(t, err)
}

func TestMemoryRepository_UpdateStatusIfUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.CreateIfSlotFree(ctx, newAppt("a1", "u1", "p1", "2030-01-10", "10:00"))
	require.NoError(t, err)

	ok, err := repo.UpdateStatusIfUnchanged(ctx, "a1", domain.StatusPending, domain.StatusCompleted)
	require.NoError(t, err)
	assert.True(t, ok)

	// второй CAS с устаревшим ожиданием проигрывает
	ok, err = repo.UpdateStatusIfUnchanged(ctx, "a1", domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	_, err = repo.UpdateStatusIfUnchanged(ctx, "missing", domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, a := range []*domain.Appointment{
		newAppt("a1", "u1", "p1", "2030-01-10", "11:00"),
		newAppt("a2", "u1", "p1", "2030-01-10", "09:00"),
		newAppt("a3", "u2", "p1", "2030-01-11", "09:00"),
		newAppt("a4", "u1", "p2", "2030-01-09", "09:00"),
	} {
		_, err := repo.CreateIfSlotFree(ctx, a)
		require.NoError(t, err)
	}
	_, err := repo.UpdateStatusIfUnchanged(ctx, "a2", domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	t.Run("by date ascending time", func(t *testing.T) {
		list, err := repo.List(ctx, domain.AppointmentsFilter{
			ProfessionalID: ptr.Ptr("p1"),
			Date:           ptr.Ptr(types.DateString("2030-01-10")),
		})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a2", list[0].ID)
		assert.Equal(t, "a1", list[1].ID)
	})

	t.Run("only active", func(t *testing.T) {
		list, err := repo.List(ctx, domain.AppointmentsFilter{
			ProfessionalID: ptr.Ptr("p1"),
			Date:           ptr.Ptr(types.DateString("2030-01-10")),
			OnlyActive:     true,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a1", list[0].ID)
	})

	t.Run("by user newest first", func(t *testing.T) {
		list, err := repo.List(ctx, domain.AppointmentsFilter{UserID: ptr.Ptr("u1")})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"a1", "a2", "a4"}, []string{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("date upper bound", func(t *testing.T) {
		list, err := repo.List(ctx, domain.AppointmentsFilter{DateTo: ptr.Ptr(types.DateString("2030-01-09"))})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a4", list[0].ID)
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.CreateIfSlotFree(ctx, newAppt("a1", "u1", "p1", "2030-01-10", "10:00"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	got.Status = domain.StatusCancelled

	again, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)
}

func TestMemoryRepository_SetHiddenFromClient(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.CreateIfSlotFree(ctx, newAppt("a1", "u1", "p1", "2030-01-10", "10:00"))
	require.NoError(t, err)

	require.NoError(t, repo.SetHiddenFromClient(ctx, "a1", true))
	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.HiddenFromClient)

	assert.ErrorIs(t, repo.SetHiddenFromClient(ctx, "nope", true), ErrAppointmentNotFound)
}

func TestIsSlotConflict(t *testing.T) {
	assert.True(t, IsSlotConflict(ErrSlotTaken))
	assert.True(t, IsSlotConflict(&pq.Error{Code: "23505"}))
	assert.True(t, IsSlotConflict(&pq.Error{Code: "40001"}))
	assert.False(t, IsSlotConflict(&pq.Error{Code: "42P01"}))
	assert.False(t, IsSlotConflict(ErrExecQuery))
}
