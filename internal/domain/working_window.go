package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WorkingWindow represents a recurring weekly availability interval of a provider
// A provider may declare several non-overlapping windows for the same day
// (split shifts); a day without windows means the provider is unavailable
type WorkingWindow struct {
	ID         int64
	ProviderID int64
	DayOfWeek  int // 0 = Sunday .. 6 = Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if the half-open interval [start, end) lies fully
// inside the window
func (w *WorkingWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// Overlaps returns true if another window of the same day intersects this one
// Границы могут совпадать: окна 09:00-12:00 и 12:00-18:00 не пересекаются
func (w *WorkingWindow) Overlaps(other *WorkingWindow) bool {
	return Overlaps(w.StartTime, w.EndTime, other.StartTime, other.EndTime)
}

// DayOfWeekFromDate возвращает день недели даты (0 = воскресенье .. 6 = суббота)
// Календарный расчёт без конвертации таймзон: рабочие часы объявлены
// в локальном времени провайдера
func DayOfWeekFromDate(date time.Time) int {
	return int(date.Weekday())
}
