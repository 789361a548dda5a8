package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ProviderID  int64            // ID провайдера
	RequesterID int64            // ID пользователя, бронирующего слот
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	EndTime     types.TimeString // Время окончания (например, "10:30")
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64            // ID созданной записи
	ProviderID  int64            // ID провайдера
	RequesterID int64            // ID пользователя
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время окончания
	Status      string           // Статус записи
	Notes       *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
