package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 480 // 8 часов

	MinDayOfWeek = 0 // воскресенье
	MaxDayOfWeek = 6 // суббота

	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы записей, занимающих слот
// Используются при фильтрации для проверки конфликтов
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы записей, освободивших слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
