package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     types.TimeString
		want                           bool
	}{
		{name: "partial overlap", aStart: "10:00", aEnd: "11:00", bStart: "10:30", bEnd: "11:30", want: true},
		{name: "contained", aStart: "10:00", aEnd: "12:00", bStart: "10:30", bEnd: "11:00", want: true},
		{name: "identical", aStart: "10:00", aEnd: "10:30", bStart: "10:00", bEnd: "10:30", want: true},
		{name: "touching boundaries not overlap", aStart: "10:00", aEnd: "10:30", bStart: "10:30", bEnd: "11:00", want: false},
		{name: "touching boundaries reversed", aStart: "10:30", aEnd: "11:00", bStart: "10:00", bEnd: "10:30", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "09:30", bStart: "14:00", bEnd: "14:30", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestGenerateSlots(t *testing.T) {
	t.Run("full day window is deterministic", func(t *testing.T) {
		window := &WorkingWindow{StartTime: "09:00", EndTime: "17:00"}

		slots := GenerateSlots(window, 30)
		require.Len(t, slots, 16)

		assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("09:30"), slots[0].EndTime)
		assert.Equal(t, types.TimeString("16:30"), slots[15].StartTime)
		assert.Equal(t, types.TimeString("17:00"), slots[15].EndTime)

		// Повторная генерация даёт тот же результат
		assert.Equal(t, slots, GenerateSlots(window, 30))
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		window := &WorkingWindow{StartTime: "09:00", EndTime: "10:45"}

		slots := GenerateSlots(window, 30)
		require.Len(t, slots, 3)
		assert.Equal(t, types.TimeString("10:30"), slots[2].EndTime)
	})

	t.Run("window shorter than granularity yields no slots", func(t *testing.T) {
		window := &WorkingWindow{StartTime: "09:00", EndTime: "09:20"}

		assert.Empty(t, GenerateSlots(window, 30))
	})

	t.Run("custom granularity", func(t *testing.T) {
		window := &WorkingWindow{StartTime: "10:00", EndTime: "11:00"}

		slots := GenerateSlots(window, 20)
		require.Len(t, slots, 3)
		assert.Equal(t, types.TimeString("10:40"), slots[2].StartTime)
	})

	t.Run("window ending near midnight drops the overflowing slot", func(t *testing.T) {
		window := &WorkingWindow{StartTime: "23:00", EndTime: "23:59"}

		slots := GenerateSlots(window, 30)
		require.Len(t, slots, 1)
		assert.Equal(t, types.TimeString("23:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("23:30"), slots[0].EndTime)
	})

	t.Run("remainder past midnight yields no slots", func(t *testing.T) {
		window := &WorkingWindow{StartTime: "23:45", EndTime: "23:59"}

		assert.Empty(t, GenerateSlots(window, 30))
	})
}

func TestHasConflict(t *testing.T) {
	appointments := []*Appointment{
		{StartTime: "10:00", EndTime: "10:30", Status: StatusConfirmed},
		{StartTime: "11:00", EndTime: "11:30", Status: StatusCancelled},
		{StartTime: "12:00", EndTime: "12:30", Status: StatusCompleted},
	}

	t.Run("overlap with active appointment", func(t *testing.T) {
		assert.True(t, HasConflict("10:15", "10:45", appointments))
	})

	t.Run("cancelled appointment frees the slot", func(t *testing.T) {
		assert.False(t, HasConflict("11:00", "11:30", appointments))
	})

	t.Run("completed appointment frees the slot", func(t *testing.T) {
		assert.False(t, HasConflict("12:00", "12:30", appointments))
	})

	t.Run("adjacent interval does not conflict", func(t *testing.T) {
		assert.False(t, HasConflict("10:30", "11:00", appointments))
		assert.False(t, HasConflict("09:30", "10:00", appointments))
	})
}

// Полный цикл бронирования на уровне доменных функций: окно 09:00-12:00
// даёт 6 слотов, бронь прячет один, пересекающийся интервал конфликтует,
// отмена возвращает слот
func TestBookingRoundTrip(t *testing.T) {
	window := &WorkingWindow{ProviderID: 7, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}

	slots := GenerateSlots(window, 30)
	require.Len(t, slots, 6)

	booked := &Appointment{ProviderID: 7, StartTime: "10:00", EndTime: "10:30", Status: StatusPending}
	active := []*Appointment{booked}

	require.Len(t, FilterAvailable(slots, active), 5)

	// Второй желающий на 10:00-11:00 получает конфликт
	assert.True(t, HasConflict("10:00", "11:00", active))

	// Отмена освобождает слот без удаления записи
	assert.True(t, CanTransition(RoleRequester, booked.Status, StatusCancelled))
	booked.Status = StatusCancelled
	require.Len(t, FilterAvailable(slots, active), 6)
	assert.False(t, HasConflict("10:00", "11:00", active))
}

func TestFilterAvailable(t *testing.T) {
	window := &WorkingWindow{StartTime: "09:00", EndTime: "12:00"}
	slots := GenerateSlots(window, 30)
	require.Len(t, slots, 6)

	appointments := []*Appointment{
		{StartTime: "10:00", EndTime: "10:30", Status: StatusPending},
	}

	available := FilterAvailable(slots, appointments)
	require.Len(t, available, 5)

	for _, slot := range available {
		assert.False(t, Overlaps(slot.StartTime, slot.EndTime, "10:00", "10:30"))
	}
}
