package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeService struct {
	resp *models.AppointmentResponse
	err  error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ int64, _ string, _ domain.Actor) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/1/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "1"})
	actor := domain.Actor{UserID: 7, Role: domain.RoleProvider}
	return r.WithContext(middleware.ContextWithActor(r.Context(), actor))
}

func TestHandle_UpdatesStatus(t *testing.T) {
	svc := &fakeService{
		resp: &models.AppointmentResponse{ID: 1, Status: string(domain.StatusConfirmed)},
	}
	h := NewHandler(svc, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(`{"status":"confirmed"}`))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: appointments.ErrAppointmentNotFound, wantCode: http.StatusNotFound},
		{name: "access denied", err: appointments.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "invalid status", err: appointments.ErrInvalidStatus, wantCode: http.StatusBadRequest},
		// Запрещённый переход - конфликт с текущим статусом записи,
		// а не проблема прав доступа
		{name: "forbidden transition", err: appointments.ErrForbiddenTransition, wantCode: http.StatusConflict},
		{name: "internal", err: appointments.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(`{"status":"completed"}`))

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, newRequest(`{status}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad appointment id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", strings.NewReader(`{"status":"confirmed"}`))
		r = mux.SetURLVars(r, map[string]string{"appointmentId": "abc"})
		r = r.WithContext(middleware.ContextWithActor(r.Context(), domain.Actor{UserID: 7, Role: domain.RoleProvider}))

		w := httptest.NewRecorder()
		h.Handle(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
