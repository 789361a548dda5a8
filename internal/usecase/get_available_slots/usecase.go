package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case для получения доступных слотов провайдера на дату
type UseCase struct {
	apptRepo           AppointmentRepository
	scheduleRepo       WorkingHoursRepository
	granularityMinutes int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
// granularityMinutes задает шаг сетки слотов (настраивается в конфиге сервиса)
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo WorkingHoursRepository,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:           apptRepo,
		scheduleRepo:       scheduleRepo,
		granularityMinutes: granularityMinutes,
		logger:             logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Операция только читает: повторный запрос без изменения данных
// возвращает тот же список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s",
		req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dayOfWeek := domain.DayOfWeekFromDate(req.Date)

	// 2. Получаем рабочие окна провайдера на этот день недели
	windows, err := uc.scheduleRepo.GetByProviderAndDay(ctx, req.ProviderID, dayOfWeek)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get working windows: %v", ErrInternal, err)
	}

	// Нет окон - провайдер в этот день не принимает, пустой список это успех
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no working windows for provider=%d, day=%d", req.ProviderID, dayOfWeek)
		return &Response{
			ProviderID: req.ProviderID,
			Date:       req.Date,
			Slots:      []Slot{},
		}, nil
	}

	// 3. Генерируем сетку слотов по всем окнам
	// Окна отсортированы по start_time и не пересекаются,
	// поэтому конкатенация сохраняет порядок по времени начала
	allSlots := make([]domain.Slot, 0)
	for _, window := range windows {
		allSlots = append(allSlots, domain.GenerateSlots(window, uc.granularityMinutes)...)
	}

	// 4. Получаем активные записи провайдера на эту дату
	filter := domain.ProviderAppointmentsFilter{
		ProviderID:      req.ProviderID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.apptRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Отбрасываем слоты, пересекающиеся с активными записями
	available := domain.FilterAvailable(allSlots, appointments)

	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, %d/%d slots available",
		req.ProviderID, req.Date.Format(domain.DateFormat), len(available), len(allSlots))

	slots := make([]Slot, len(available))
	for i, s := range available {
		slots[i] = Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
	}

	return &Response{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
