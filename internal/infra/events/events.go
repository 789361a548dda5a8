package events

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Типы доменных событий, публикуемых для внешнего Notifier
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// Event доменное событие о записи на приём
// Времена передаются в форматах YYYY-MM-DD и HH:MM, как и в API
type Event struct {
	EventID       string  `json:"eventId"`
	Type          string  `json:"type"`
	AppointmentID int64   `json:"appointmentId"`
	ProviderID    int64   `json:"providerId"`
	RequesterID   int64   `json:"requesterId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	OldStatus     *string `json:"oldStatus,omitempty"`
	NewStatus     string  `json:"newStatus"`
}

// NewAppointmentCreated собирает событие о созданной записи
func NewAppointmentCreated(appt *domain.Appointment) Event {
	return Event{
		EventID:       uuid.NewString(),
		Type:          TypeAppointmentCreated,
		AppointmentID: appt.ID,
		ProviderID:    appt.ProviderID,
		RequesterID:   appt.RequesterID,
		ServiceID:     appt.ServiceID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		EndTime:       appt.EndTime.String(),
		NewStatus:     string(appt.Status),
	}
}

// NewAppointmentStatusChanged собирает событие о смене статуса записи
func NewAppointmentStatusChanged(appt *domain.Appointment, oldStatus, newStatus domain.AppointmentStatus) Event {
	old := string(oldStatus)
	return Event{
		EventID:       uuid.NewString(),
		Type:          TypeAppointmentStatusChanged,
		AppointmentID: appt.ID,
		ProviderID:    appt.ProviderID,
		RequesterID:   appt.RequesterID,
		ServiceID:     appt.ServiceID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		EndTime:       appt.EndTime.String(),
		OldStatus:     &old,
		NewStatus:     string(newStatus),
	}
}

// SplitBrokers разбирает список брокеров из конфига (через запятую)
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
