package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с жизненным циклом записей на приём
type Service struct {
	apptRepo  AppointmentRepository
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:  apptRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetByID получает запись по ID
// Запись видят только её участники: пользователь, который её создал,
// и провайдер, к которому она относится
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d role=%s", id, actor.UserID, actor.Role)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(appt, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetRequesterAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetRequesterAppointments(ctx context.Context, req *models.GetRequesterAppointmentsRequest, actor domain.Actor) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetRequesterAppointments: fetching appointments for requester=%d, status=%v", req.RequesterID, req.Status)

	// Историю видит только сам пользователь
	if actor.UserID != req.RequesterID {
		s.logger.Warn("GetRequesterAppointments: access denied for user=%d to requester=%d history", actor.UserID, req.RequesterID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetRequesterAppointments: invalid status=%s for requester=%d", *req.Status, req.RequesterID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.apptRepo.GetByRequesterID(ctx, req.RequesterID, domainStatus)
	if err != nil {
		s.logger.Error("GetRequesterAppointments: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetRequesterAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRequesterAppointments: successfully fetched %d appointments for requester=%d", len(appointments), req.RequesterID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetProviderAppointments получает записи провайдера с гибкой фильтрацией
// Доступно только самому провайдеру
//
// Примеры использования:
// - Все активные записи: GetProviderAppointments(ctx, &GetProviderAppointmentsRequest{ProviderID: 123}, actor)
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest, actor domain.Actor) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetProviderAppointments: fetching appointments for provider=%d, user=%d", req.ProviderID, actor.UserID)

	// Календарь видит только сам провайдер
	if actor.Role != domain.RoleProvider || actor.UserID != req.ProviderID {
		s.logger.Warn("GetProviderAppointments: access denied for user=%d role=%s to provider=%d calendar",
			actor.UserID, actor.Role, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderAppointments: successfully fetched %d appointments for provider=%d", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Пользователь отменяет свою запись, провайдер - запись в своём календаре,
// обе стороны только из статусов pending и confirmed
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d role=%s", id, actor.UserID, actor.Role)
	return s.transition(ctx, id, actor, domain.StatusCancelled)
}

// UpdateStatus переводит запись в новый статус
// Допустимость перехода определяется таблицей переходов по роли:
// провайдер подтверждает, завершает и отменяет, пользователь только отменяет
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus string, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d role=%s",
		id, newStatus, actor.UserID, actor.Role)

	status, err := models.ToDomainStatus(newStatus)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", newStatus, id)
		return nil, ErrInvalidStatus
	}

	return s.transition(ctx, id, actor, status)
}

// transition общий путь смены статуса: доступ, таблица переходов, запись, событие
// Запись в хранилище идёт по принципу compare-and-set относительно
// прочитанного статуса: из двух конкурирующих переходов выигрывает один,
// второй получает ErrForbiddenTransition
func (s *Service) transition(ctx context.Context, id int64, actor domain.Actor, newStatus domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(appt, actor); err != nil {
		s.logger.Warn("transition: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, err
	}

	oldStatus := appt.Status

	if !domain.CanTransition(actor.Role, oldStatus, newStatus) {
		s.logger.Warn("transition: forbidden transition %s -> %s by role=%s for appointment id=%d",
			oldStatus, newStatus, actor.Role, id)
		return nil, ErrForbiddenTransition
	}

	// Отмена фиксирует cancelled_at, остальные переходы меняют только статус
	if newStatus == domain.StatusCancelled {
		err = s.apptRepo.Cancel(ctx, id, oldStatus)
	} else {
		err = s.apptRepo.UpdateStatus(ctx, id, newStatus, oldStatus)
	}

	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("transition: appointment id=%d not found during update", id)
			return nil, ErrAppointmentNotFound
		}
		// Статус изменился между чтением и записью: переход из
		// фактического статуса уже не разрешён
		if errors.Is(err, apptRepo.ErrStatusConflict) {
			s.logger.Warn("transition: appointment id=%d changed concurrently, transition %s -> %s rejected",
				id, oldStatus, newStatus)
			return nil, ErrForbiddenTransition
		}
		s.logger.Error("transition: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("transition: successfully moved appointment id=%d from %s to %s", id, oldStatus, newStatus)

	// Публикуем событие после записи
	// Ошибка публикации не откатывает смену статуса
	if err := s.publisher.Publish(ctx, events.NewAppointmentStatusChanged(appt, oldStatus, newStatus)); err != nil {
		s.logger.Warn("transition: failed to publish status_changed event for id=%d: %v", id, err)
	}

	// Перечитываем запись, чтобы вернуть актуальные cancelled_at и updated_at
	updated, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(updated), nil
}

// Вспомогательные методы

// getAppointment получает запись по ID с маппингом ошибок репозитория
func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getAppointment - repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

// checkAccess проверяет, что вызывающая сторона является участником записи
// Роль должна соответствовать стороне: провайдер не может действовать
// как пользователь в чужой записи и наоборот
func (s *Service) checkAccess(appt *domain.Appointment, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleProvider:
		if appt.ProviderID == actor.UserID {
			return nil
		}
	case domain.RoleRequester:
		if appt.RequesterID == actor.UserID {
			return nil
		}
	}
	return ErrAccessDenied
}
