package update_working_hours

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UpdateWindowRequest HTTP request model
type UpdateWindowRequest struct {
	DayOfWeek int              `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateWindowRequest) ToServiceRequest() *models.UpdateWindowRequest {
	return &models.UpdateWindowRequest{
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
