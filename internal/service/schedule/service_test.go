package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	scheduleStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	pro   = domain.Session{UserID: "P", Role: domain.RoleProfessional}
	other = domain.Session{UserID: "P2", Role: domain.RoleProfessional}
	admin = domain.Session{UserID: "A", Role: domain.RoleAdmin}
)

func newService(t *testing.T) (*Service, *scheduleStorage.MemoryRepository) {
	t.Helper()
	ctx := context.Background()

	users := user.NewMemoryRepository()
	for _, u := range []*domain.User{
		{ID: "P", Name: "Ana", Role: domain.RoleProfessional, CompanyID: ptr.Ptr("co-1")},
		{ID: "P2", Name: "Bia", Role: domain.RoleProfessional},
		{ID: "C1", Name: "Carla", Role: domain.RoleClient},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	services := catalog.NewMemoryRepository()
	for _, s := range []*domain.Service{
		{ID: "S1", Name: "Corte", Price: 50, DurationMinutes: 30, CompanyID: ptr.Ptr("co-1")},
		{ID: "S2", Name: "Barba", Price: 30, DurationMinutes: 20, CompanyID: ptr.Ptr("co-2")},
	} {
		_, err := services.Create(ctx, s)
		require.NoError(t, err)
	}

	hours := scheduleStorage.NewMemoryRepository()
	return NewService(hours, services, users, txmanager.NewNoopManager(), nopLogger{}), hours
}

func TestListServices_FilterByCompany(t *testing.T) {
	svc, _ := newService(t)

	all, err := svc.ListServices(context.Background(), &models.ListServicesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Services, 2)

	filtered, err := svc.ListServices(context.Background(), &models.ListServicesRequest{CompanyID: ptr.Ptr("co-1")})
	require.NoError(t, err)
	require.Len(t, filtered.Services, 1)
	assert.Equal(t, "S1", filtered.Services[0].ID)
}

func TestUpdateWorkingHours_ReplacesWeek(t *testing.T) {
	svc, hours := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateWorkingHours(ctx, "P", &models.UpdateWorkingHoursRequest{
		Session: pro,
		Days: []models.WorkingDay{
			{Weekday: 3, OpenTime: "9:00", CloseTime: "12:00", SlotIntervalMinutes: 30},
			{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00", SlotIntervalMinutes: 60},
		},
	})
	require.NoError(t, err)

	resp, err := svc.UpdateWorkingHours(ctx, "P", &models.UpdateWorkingHoursRequest{
		Session: admin,
		Days: []models.WorkingDay{
			{Weekday: 5, OpenTime: "10:00", CloseTime: "14:00", SlotIntervalMinutes: 45},
			{Weekday: 1, OpenTime: "08:00", CloseTime: "12:00", SlotIntervalMinutes: 60},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, 1, resp.Days[0].Weekday)
	assert.Equal(t, "08:00", resp.Days[0].OpenTime)

	// Среда стала выходным
	_, err = hours.GetForWeekday(ctx, "P", time.Wednesday)
	assert.ErrorIs(t, err, scheduleStorage.ErrWorkingHoursNotFound)

	got, err := svc.GetWorkingHours(ctx, "P")
	require.NoError(t, err)
	assert.Equal(t, resp.Days, got.Days)
}

func TestUpdateWorkingHours_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	monday := models.WorkingDay{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00", SlotIntervalMinutes: 60}

	tests := []struct {
		name    string
		id      string
		req     *models.UpdateWorkingHoursRequest
		wantErr error
	}{
		{"no session", "P", &models.UpdateWorkingHoursRequest{Days: []models.WorkingDay{monday}}, ErrUnauthenticated},
		{"other professional", "P", &models.UpdateWorkingHoursRequest{Session: other, Days: []models.WorkingDay{monday}}, ErrAccessDenied},
		{"duplicate weekday", "P", &models.UpdateWorkingHoursRequest{Session: pro, Days: []models.WorkingDay{monday, monday}}, ErrInvalidInput},
		{"close before open", "P", &models.UpdateWorkingHoursRequest{Session: pro, Days: []models.WorkingDay{
			{Weekday: 2, OpenTime: "18:00", CloseTime: "09:00", SlotIntervalMinutes: 60},
		}}, ErrInvalidInput},
		{"bad time", "P", &models.UpdateWorkingHoursRequest{Session: pro, Days: []models.WorkingDay{
			{Weekday: 2, OpenTime: "9h", CloseTime: "18:00", SlotIntervalMinutes: 60},
		}}, ErrInvalidInput},
		{"bad weekday", "P", &models.UpdateWorkingHoursRequest{Session: pro, Days: []models.WorkingDay{
			{Weekday: 7, OpenTime: "09:00", CloseTime: "18:00", SlotIntervalMinutes: 60},
		}}, ErrInvalidInput},
		{"interval too small", "P", &models.UpdateWorkingHoursRequest{Session: pro, Days: []models.WorkingDay{
			{Weekday: 2, OpenTime: "09:00", CloseTime: "18:00", SlotIntervalMinutes: 1},
		}}, ErrInvalidInput},
		{"client is not professional", "C1", &models.UpdateWorkingHoursRequest{Session: admin, Days: []models.WorkingDay{monday}}, ErrProfessionalNotFound},
		{"unknown professional", "ghost", &models.UpdateWorkingHoursRequest{Session: admin, Days: []models.WorkingDay{monday}}, ErrProfessionalNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateWorkingHours(ctx, tt.id, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetWorkingHours_UnknownProfessional(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetWorkingHours(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	resp, err := svc.GetWorkingHours(context.Background(), "P2")
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}
