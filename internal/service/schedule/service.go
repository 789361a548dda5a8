package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	whRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Service сервис для управления рабочими окнами провайдеров
type Service struct {
	whRepo WorkingHoursRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(whRepo WorkingHoursRepository, logger Logger) *Service {
	return &Service{
		whRepo: whRepo,
		logger: logger,
	}
}

// ListWindows возвращает полное недельное расписание провайдера
// Чтение публично: расписание нужно любому пользователю при выборе слота
func (s *Service) ListWindows(ctx context.Context, providerID int64) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for provider=%d", providerID)

	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	windows, err := s.whRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: successfully fetched %d windows for provider=%d", len(windows), providerID)
	return models.FromDomainWindowList(windows), nil
}

// CreateWindow добавляет рабочее окно в расписание провайдера
// Провайдер управляет только своим расписанием
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest, actor domain.Actor) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: provider=%d, day=%d, window=%s-%s by user=%d",
		req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, actor.UserID)

	if err := s.checkOwnerAccess(req.ProviderID, actor); err != nil {
		s.logger.Warn("CreateWindow: access denied for user=%d role=%s to provider=%d schedule",
			actor.UserID, actor.Role, req.ProviderID)
		return nil, err
	}

	window := &domain.WorkingWindow{
		ProviderID: req.ProviderID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	if err := validateWindow(window); err != nil {
		s.logger.Warn("CreateWindow: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	// Проверяем пересечения с существующими окнами этого дня
	if err := s.checkOverlap(ctx, window, 0); err != nil {
		return nil, err
	}

	created, err := s.whRepo.Create(ctx, window)
	if err != nil {
		// Exclusion constraint - страховка на случай гонки двух создателей
		if errors.Is(err, whRepo.ErrWindowOverlap) {
			s.logger.Warn("CreateWindow: overlap on insert for provider=%d, day=%d", req.ProviderID, req.DayOfWeek)
			return nil, ErrWindowOverlap
		}
		s.logger.Error("CreateWindow: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: successfully created window id=%d for provider=%d", created.ID, created.ProviderID)
	return models.FromDomainWindow(created), nil
}

// UpdateWindow изменяет границы рабочего окна
// Существующие записи при сужении окна не трогаем: они остаются валидными,
// меняется только доступность новых слотов
func (s *Service) UpdateWindow(ctx context.Context, id int64, req *models.UpdateWindowRequest, actor domain.Actor) (*models.WindowResponse, error) {
	s.logger.Info("UpdateWindow: window id=%d, day=%d, window=%s-%s by user=%d",
		id, req.DayOfWeek, req.StartTime, req.EndTime, actor.UserID)

	window, err := s.getWindow(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerAccess(window.ProviderID, actor); err != nil {
		s.logger.Warn("UpdateWindow: access denied for user=%d to window id=%d", actor.UserID, id)
		return nil, err
	}

	window.DayOfWeek = req.DayOfWeek
	window.StartTime = req.StartTime
	window.EndTime = req.EndTime

	if err := validateWindow(window); err != nil {
		s.logger.Warn("UpdateWindow: validation failed for window id=%d: %v", id, err)
		return nil, err
	}

	// Проверяем пересечения, исключая само обновляемое окно
	if err := s.checkOverlap(ctx, window, id); err != nil {
		return nil, err
	}

	if err := s.whRepo.Update(ctx, window); err != nil {
		if errors.Is(err, whRepo.ErrWindowOverlap) {
			s.logger.Warn("UpdateWindow: overlap on update for window id=%d", id)
			return nil, ErrWindowOverlap
		}
		if errors.Is(err, whRepo.ErrWindowNotFound) {
			s.logger.Warn("UpdateWindow: window id=%d not found during update", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateWindow: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateWindow - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getWindow(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateWindow: successfully updated window id=%d", id)
	return models.FromDomainWindow(updated), nil
}

// DeleteWindow удаляет рабочее окно из расписания
func (s *Service) DeleteWindow(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("DeleteWindow: window id=%d by user=%d", id, actor.UserID)

	window, err := s.getWindow(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(window.ProviderID, actor); err != nil {
		s.logger.Warn("DeleteWindow: access denied for user=%d to window id=%d", actor.UserID, id)
		return err
	}

	if err := s.whRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, whRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found during delete", id)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deleted window id=%d", id)
	return nil
}

// Вспомогательные методы

// getWindow получает окно по ID с маппингом ошибок репозитория
func (s *Service) getWindow(ctx context.Context, id int64) (*domain.WorkingWindow, error) {
	window, err := s.whRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, whRepo.ErrWindowNotFound) {
			s.logger.Warn("getWindow: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("getWindow: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getWindow - repository error: %v", ErrInternal, err)
	}
	return window, nil
}

// checkOwnerAccess проверяет, что расписание меняет сам провайдер
func (s *Service) checkOwnerAccess(providerID int64, actor domain.Actor) error {
	if actor.Role != domain.RoleProvider || actor.UserID != providerID {
		return ErrAccessDenied
	}
	return nil
}

// checkOverlap проверяет пересечение окна с существующими окнами того же дня
// excludeID исключает само обновляемое окно из проверки
func (s *Service) checkOverlap(ctx context.Context, window *domain.WorkingWindow, excludeID int64) error {
	existing, err := s.whRepo.GetByProviderAndDay(ctx, window.ProviderID, window.DayOfWeek)
	if err != nil {
		s.logger.Error("checkOverlap: repository error for provider=%d: %v", window.ProviderID, err)
		return fmt.Errorf("%w: checkOverlap - repository error: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if window.Overlaps(other) {
			s.logger.Warn("checkOverlap: window %s-%s overlaps window id=%d for provider=%d, day=%d",
				window.StartTime, window.EndTime, other.ID, window.ProviderID, window.DayOfWeek)
			return ErrWindowOverlap
		}
	}

	return nil
}

// validateWindow проверяет границы рабочего окна
func validateWindow(w *domain.WorkingWindow) error {
	if w.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if w.DayOfWeek < domain.MinDayOfWeek || w.DayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d", ErrInvalidWindow, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidWindow, err)
	}

	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidWindow, err)
	}

	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidWindow)
	}

	return nil
}
