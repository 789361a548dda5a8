package schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих окон
type WorkingHoursRepository interface {
	Create(ctx context.Context, window *domain.WorkingWindow) (*domain.WorkingWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkingWindow, error)
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.WorkingWindow, error)
	GetByProviderAndDay(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.WorkingWindow, error)
	Update(ctx context.Context, window *domain.WorkingWindow) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
