package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ActorRole роль вызывающей стороны, проверенная внешним Authorization Provider
type ActorRole string

const (
	RoleProvider  ActorRole = "provider"
	RoleRequester ActorRole = "requester"
)

// ValidRole проверяет, что роль известна сервису
func ValidRole(role ActorRole) bool {
	return role == RoleProvider || role == RoleRequester
}

// Actor аутентифицированная вызывающая сторона
type Actor struct {
	UserID int64
	Role   ActorRole
}

// Appointment represents a booked time interval against a provider's availability
type Appointment struct {
	ID          int64
	ProviderID  int64
	RequesterID int64
	ServiceID   int64
	Date        time.Time // Дата приёма (без времени)
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      AppointmentStatus

	Notes       *string
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
// (only pending and confirmed appointments count toward conflicts)
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// allowedTransitions разрешённые переходы статусов по ролям
// Любая пара (роль, from → to) вне этой таблицы запрещена
var allowedTransitions = map[ActorRole]map[AppointmentStatus][]AppointmentStatus{
	RoleProvider: {
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusCancelled},
	},
	RoleRequester: {
		StatusPending:   {StatusCancelled},
		StatusConfirmed: {StatusCancelled},
	},
}

// CanTransition returns true if the actor role is allowed to move an
// appointment from one status to another
func CanTransition(role ActorRole, from, to AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[role][from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ProviderAppointmentsFilter фильтр для получения записей провайдера
type ProviderAppointmentsFilter struct {
	ProviderID      int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и завершённые записи
}
