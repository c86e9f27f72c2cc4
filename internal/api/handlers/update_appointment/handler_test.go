package update_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err    error
	lastID string
	last   *models.UpdateRequest
}

func (f *fakeService) Update(_ context.Context, id string, req *models.UpdateRequest) (*models.AppointmentResponse, error) {
	f.lastID = id
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "Cancelado"}, nil
}

func serve(h *Handler, body string, session *domain.Session) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{appointmentId}", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/appointments/a-1", strings.NewReader(body))
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), *session))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PassesSessionFromContext(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})
	session := domain.Session{UserID: "C1", Role: domain.RoleClient}

	rec := serve(h, `{"status":"Cancelado"}`, &session)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a-1", svc.lastID)
	require.NotNil(t, svc.last)
	assert.Equal(t, session, svc.last.Session)
	require.NotNil(t, svc.last.Status)
	assert.Equal(t, "Cancelado", *svc.last.Status)
	assert.Nil(t, svc.last.HiddenFromClient)
}

func TestHandle_Errors(t *testing.T) {
	client := domain.Session{UserID: "C1", Role: domain.RoleClient}

	tests := []struct {
		name    string
		body    string
		session *domain.Session
		err     error
		status  int
	}{
		{name: "no session", body: `{"status":"Cancelado"}`, status: http.StatusUnauthorized},
		{name: "body cannot set session", body: `{"Session":{"UserID":"X"}}`, session: &client, status: http.StatusBadRequest},
		{name: "empty update", body: `{}`, session: &client, err: appointments.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "terminal state", body: `{"status":"Cancelado"}`, session: &client, err: appointments.ErrInvalidTransition, status: http.StatusBadRequest},
		{name: "not found", body: `{"status":"Cancelado"}`, session: &client, err: appointments.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "not a participant", body: `{"status":"Cancelado"}`, session: &client, err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{name: "lost race", body: `{"status":"Cancelado"}`, session: &client, err: appointments.ErrConcurrentUpdate, status: http.StatusConflict},
		{name: "storage down", body: `{"status":"Cancelado"}`, session: &client, err: appointments.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})
			rec := serve(h, tt.body, tt.session)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
