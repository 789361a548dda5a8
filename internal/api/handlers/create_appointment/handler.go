package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval     = "время начала должно быть раньше времени окончания"
	msgOutsideWorkingHours = "интервал вне рабочих часов провайдера"
	msgSlotConflict        = "интервал пересекается с существующей записью"
	msgInvalidInput        = "некорректные входные данные"
	msgForbidden           = "доступ запрещен"
	msgUnauthenticated     = "запрос не аутентифицирован"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	// Бронирует пользователь: провайдер управляет своими записями
	// через смену статуса, а не через создание новых
	if actor.Role != domain.RoleRequester {
		h.logger.Warn("POST /appointments - Forbidden role: user_id=%d, role=%s", actor.UserID, actor.Role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Декодируем body
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInterval):
			h.logger.Warn("POST /appointments - Invalid interval: provider_id=%d, interval=%s-%s",
				req.ProviderID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: provider_id=%d, date=%s, interval=%s-%s",
				req.ProviderID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: provider_id=%d, date=%s, interval=%s-%s",
				req.ProviderID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: provider_id=%d, requester_id=%d, error=%v",
				req.ProviderID, actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, provider_id=%d, requester_id=%d",
		result.ID, result.ProviderID, result.RequesterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
