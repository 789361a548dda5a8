package get_requester_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

const (
	msgInvalidRequesterID = "некорректный ID пользователя"
	msgInvalidStatus      = "некорректный статус записи"
	msgForbidden          = "доступ запрещен"
	msgUnauthenticated    = "запрос не аутентифицирован"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/requesters/{requesterId}/appointments
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /requesters/{id}/appointments - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	// Извлекаем requesterId из URL
	vars := mux.Vars(r)
	requesterIDStr := vars["requesterId"]

	requesterID, err := strconv.ParseInt(requesterIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /requesters/{id}/appointments - Invalid requester ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequesterID)
		return
	}

	req := &models.GetRequesterAppointmentsRequest{
		RequesterID: requesterID,
	}

	// Извлекаем status из query параметров (опционально)
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	result, err := h.service.GetRequesterAppointments(r.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /requesters/{id}/appointments - Access denied: requester_id=%d, user_id=%d",
				requesterID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /requesters/{id}/appointments - Invalid input: requester_id=%d, error=%v",
				requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /requesters/{id}/appointments - Failed to get appointments: requester_id=%d, error=%v",
				requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /requesters/{id}/appointments - Appointments retrieved successfully: requester_id=%d, count=%d",
		requesterID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
