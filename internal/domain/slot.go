package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Slot represents a candidate bookable interval [StartTime, EndTime)
// Ephemeral value object - never persisted
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect
//
// Используются строгие неравенства, поэтому граничные случаи не считаются
// пересечением: запись 10:00-10:30 и запись 10:30-11:00 совместимы
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// GenerateSlots генерирует упорядоченный список слотов внутри окна с шагом
// granularityMinutes. Последний неполный слот отбрасывается, а не обрезается:
// для окна 09:00-17:15 и шага 30 минут последним будет слот 16:30-17:00.
// Границы окна валидируются при создании, поэтому функция не возвращает ошибку
func GenerateSlots(window *WorkingWindow, granularityMinutes int) []Slot {
	slots := make([]Slot, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		slotEnd, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			// Шаг за полночь: конец окна всегда раньше 24:00, поэтому
			// такой слот в окно не помещается и отбрасывается как неполный
			break
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		slots = append(slots, Slot{StartTime: current, EndTime: slotEnd})
		current = slotEnd
	}

	return slots
}

// HasConflict reports whether the interval [start, end) overlaps any active
// appointment from the list
//
// Единственная реализация проверки конфликтов: её используют и выдача
// доступных слотов, и путь создания записи
func HasConflict(start, end types.TimeString, appointments []*Appointment) bool {
	for _, appt := range appointments {
		// Отменённые и завершённые записи слот не занимают
		if !appt.IsActive() {
			continue
		}
		if Overlaps(start, end, appt.StartTime, appt.EndTime) {
			return true
		}
	}
	return false
}

// FilterAvailable removes slots that overlap any active appointment
func FilterAvailable(slots []Slot, appointments []*Appointment) []Slot {
	available := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !HasConflict(slot.StartTime, slot.EndTime, appointments) {
			available = append(available, slot)
		}
	}
	return available
}
