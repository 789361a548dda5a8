package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestWorkingWindow_Contains(t *testing.T) {
	window := &WorkingWindow{StartTime: "09:00", EndTime: "17:00"}

	tests := []struct {
		name       string
		start, end types.TimeString
		want       bool
	}{
		{name: "fully inside", start: "10:00", end: "10:30", want: true},
		{name: "exact bounds", start: "09:00", end: "17:00", want: true},
		{name: "starts before window", start: "08:30", end: "09:30", want: false},
		{name: "ends after window", start: "16:45", end: "17:15", want: false},
		{name: "fully outside", start: "18:00", end: "19:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.start, tt.end))
		})
	}
}

func TestWorkingWindow_Overlaps(t *testing.T) {
	morning := &WorkingWindow{StartTime: "09:00", EndTime: "13:00"}
	afternoon := &WorkingWindow{StartTime: "14:00", EndTime: "18:00"}
	adjacent := &WorkingWindow{StartTime: "13:00", EndTime: "14:00"}
	overlapping := &WorkingWindow{StartTime: "12:00", EndTime: "15:00"}

	assert.False(t, morning.Overlaps(afternoon))
	assert.False(t, morning.Overlaps(adjacent))
	assert.True(t, morning.Overlaps(overlapping))
	assert.True(t, afternoon.Overlaps(overlapping))
}

func TestDayOfWeekFromDate(t *testing.T) {
	// 2025-10-12 - воскресенье
	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOfWeekFromDate(sunday))

	monday := sunday.AddDate(0, 0, 1)
	assert.Equal(t, 1, DayOfWeekFromDate(monday))

	saturday := sunday.AddDate(0, 0, 6)
	assert.Equal(t, 6, DayOfWeekFromDate(saturday))
}
