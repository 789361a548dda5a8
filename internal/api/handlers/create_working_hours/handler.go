package create_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректные границы рабочего окна"
	msgWindowOverlap      = "окно пересекается с существующим окном"
	msgForbidden          = "доступ запрещен"
	msgUnauthenticated    = "запрос не аутентифицирован"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /providers/{id}/working-hours - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	// Извлекаем providerId из URL
	vars := mux.Vars(r)
	providerIDStr := vars["providerId"]

	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/working-hours - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Декодируем body
	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), req.ToServiceRequest(providerID), actor)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/working-hours - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrWindowOverlap):
			h.logger.Warn("POST /providers/{id}/working-hours - Window overlap: provider_id=%d, day=%d",
				providerID, req.DayOfWeek)
			handlers.RespondConflict(w, msgWindowOverlap)

		case errors.Is(err, schedule.ErrInvalidWindow), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/working-hours - Invalid window: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /providers/{id}/working-hours - Failed to create window: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/working-hours - Window created successfully: window_id=%d, provider_id=%d",
		result.ID, providerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
