package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProviderID int64            `json:"providerId"`
	ServiceID  int64            `json:"serviceId"`
	Date       string           `json:"date"`      // "2025-10-15"
	StartTime  types.TimeString `json:"startTime"` // "10:00"
	EndTime    types.TimeString `json:"endTime"`   // "10:30"
	Notes      *string          `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
// Пользователь берётся из аутентифицированной личности, а не из тела запроса
func (r *CreateAppointmentRequest) ToUseCaseRequest(requesterID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ProviderID:  r.ProviderID,
		RequesterID: requesterID,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Notes:       r.Notes,
	}, nil
}

// Response HTTP модель созданной записи
type Response struct {
	ID          int64  `json:"id"`
	ProviderID  int64  `json:"providerId"`
	RequesterID int64  `json:"requesterId"`
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *Response {
	return &Response{
		ID:          resp.ID,
		ProviderID:  resp.ProviderID,
		RequesterID: resp.RequesterID,
		ServiceID:   resp.ServiceID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}
