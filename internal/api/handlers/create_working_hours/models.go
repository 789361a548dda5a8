package create_working_hours

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	DayOfWeek int              `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime types.TimeString `json:"startTime"` // "09:00"
	EndTime   types.TimeString `json:"endTime"`   // "18:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
// Провайдер берётся из URL, а не из тела запроса
func (r *CreateWindowRequest) ToServiceRequest(providerID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		ProviderID: providerID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}
}
