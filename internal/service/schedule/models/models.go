package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание рабочего окна
type CreateWindowRequest struct {
	ProviderID int64            `json:"providerId"`
	DayOfWeek  int              `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime  types.TimeString `json:"startTime"` // "09:00"
	EndTime    types.TimeString `json:"endTime"`   // "18:00"
}

// UpdateWindowRequest запрос на изменение рабочего окна
type UpdateWindowRequest struct {
	DayOfWeek int              `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// Response модели

// WindowResponse ответ с данными рабочего окна
type WindowResponse struct {
	ID         int64  `json:"id"`
	ProviderID int64  `json:"providerId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком рабочих окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.WorkingWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:         w.ID,
		ProviderID: w.ProviderID,
		DayOfWeek:  w.DayOfWeek,
		StartTime:  w.StartTime.String(),
		EndTime:    w.EndTime.String(),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.WorkingWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}
