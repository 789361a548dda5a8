package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// Response HTTP модель ответа со списком доступных слотов
type Response struct {
	ProviderID int64          `json:"providerId"`
	Date       string         `json:"date"` // "2025-10-15"
	Slots      []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос к use case, парся дату из query параметра
func ToUseCaseRequest(providerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: providerID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *Response {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		}
	}

	return &Response{
		ProviderID: resp.ProviderID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
