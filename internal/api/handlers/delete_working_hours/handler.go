package delete_working_hours

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
	msgInvalidWindowID = "некорректный ID рабочего окна"
	msgNotFound        = "рабочее окно не найдено"
	msgForbidden       = "доступ запрещен"
	msgUnauthenticated = "запрос не аутентифицирован"
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

// Handle DELETE /api/v1/providers/{providerId}/working-hours/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /providers/{id}/working-hours/{id} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	// Извлекаем windowId из URL
	vars := mux.Vars(r)
	windowIDStr := vars["windowId"]

	windowID, err := strconv.ParseInt(windowIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/working-hours/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	err = h.service.DeleteWindow(r.Context(), windowID, actor)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("DELETE /providers/{id}/working-hours/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /providers/{id}/working-hours/{id} - Access denied: window_id=%d, user_id=%d",
				windowID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /providers/{id}/working-hours/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/working-hours/{id} - Window deleted successfully: window_id=%d", windowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
