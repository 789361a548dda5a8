package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID int64     // ID провайдера
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID int64     // ID провайдера
	Date       time.Time // Дата, на которую запрашивались слоты
	Slots      []Slot    // Список доступных слотов, упорядоченный по времени начала
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания слота (например, "10:30")
}
