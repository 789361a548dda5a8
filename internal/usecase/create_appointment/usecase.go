package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	apptRepo     AppointmentRepository
	scheduleRepo WorkingHoursRepository
	publisher    EventPublisher
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo WorkingHoursRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Проверки "интервал внутри рабочего окна" и "нет пересечений с активными
// записями" и сам insert выполняются в одной сериализуемой транзакции:
// из двух конкурирующих запросов на пересекающиеся интервалы выигрывает
// ровно один, второй получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: provider=%d, requester=%d, service=%d, date=%s, interval=%s-%s",
		req.ProviderID, req.RequesterID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка корректности интервала (start < end)
	if !req.StartTime.IsBefore(req.EndTime) {
		uc.logger.Warn("CreateAppointment: invalid interval %s-%s", req.StartTime, req.EndTime)
		return nil, ErrInvalidInterval
	}

	dayOfWeek := domain.DayOfWeekFromDate(req.Date)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Выполняем проверки и insert в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем рабочие окна провайдера на этот день недели
		windows, err := uc.scheduleRepo.GetByProviderAndDay(txCtx, req.ProviderID, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get working windows: %v", err)
			return fmt.Errorf("%w: failed to get working windows: %v", ErrInternal, err)
		}

		// 3.2. Интервал должен целиком помещаться в одно из окон
		// Отсутствие окон на этот день - частный случай той же ошибки
		if !intervalInsideWindows(req.StartTime, req.EndTime, windows) {
			uc.logger.Warn("CreateAppointment: interval %s-%s outside working hours for provider=%d, day=%d",
				req.StartTime, req.EndTime, req.ProviderID, dayOfWeek)
			return ErrOutsideWorkingHours
		}

		// 3.3. Получаем активные записи провайдера на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ProviderAppointmentsFilter{
			ProviderID:      req.ProviderID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.apptRepo.GetByProviderWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.4. Проверяем пересечения с активными записями
		if domain.HasConflict(req.StartTime, req.EndTime, appointments) {
			uc.logger.Warn("CreateAppointment: interval %s-%s conflicts with existing appointment, provider=%d",
				req.StartTime, req.EndTime, req.ProviderID)
			return ErrSlotConflict
		}

		// 3.5. Создаем запись со статусом pending
		appt := &domain.Appointment{
			ProviderID:  req.ProviderID,
			RequesterID: req.RequesterID,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      domain.StatusPending,
			Notes:       req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			// Exclusion constraint - страховка на случай гонки вне транзакции
			if errors.Is(err, apptRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateAppointment: slot conflict on insert, provider=%d", req.ProviderID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 4. Публикуем событие после коммита
	// Ошибка публикации не откатывает созданную запись
	if err := uc.publisher.Publish(ctx, events.NewAppointmentCreated(result)); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish created event for id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:          result.ID,
		ProviderID:  result.ProviderID,
		RequesterID: result.RequesterID,
		ServiceID:   result.ServiceID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
