package get_notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/notifications/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	called     bool
	unreadOnly bool
}

func (f *fakeService) List(_ context.Context, _ domain.Session, unreadOnly bool) (*models.NotificationListResponse, error) {
	f.called = true
	f.unreadOnly = unreadOnly
	return &models.NotificationListResponse{Notifications: []models.NotificationResponse{}}, nil
}

func TestHandle_UnreadFlag(t *testing.T) {
	session := domain.Session{UserID: "C1", Role: domain.RoleClient}

	tests := []struct {
		name       string
		target     string
		status     int
		unreadOnly bool
	}{
		{name: "default", target: "/api/v1/notifications", status: http.StatusOK},
		{name: "unread only", target: "/api/v1/notifications?unread=true", status: http.StatusOK, unreadOnly: true},
		{name: "explicit all", target: "/api/v1/notifications?unread=false", status: http.StatusOK},
		{name: "bad flag", target: "/api/v1/notifications?unread=maybe", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := NewHandler(svc, nopLogger{})

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req = req.WithContext(middleware.WithSession(req.Context(), session))
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status == http.StatusOK, svc.called)
			assert.Equal(t, tt.unreadOnly, svc.unreadOnly)
		})
	}
}

func TestHandle_NoSession(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, svc.called)
}
