package handlers

import (
	"testing"
	"time"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(day, start, end, wasteType string) models.CollectionSchedule {
	return models.CollectionSchedule{
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		WasteType: wasteType,
		Sector:    "Setor A",
		Region:    "Centro",
	}
}

// Monday 2026-06-15 at 10:00 local time.
var scheduleNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func TestNextCollectionSlotToday(t *testing.T) {
	schedules := []models.CollectionSchedule{
		slot("Segunda-feira", "14:00", "18:00", "Reciclável"),
		slot("Quarta-feira", "08:00", "12:00", "Orgânico"),
	}

	info := nextCollectionSlot(schedules, scheduleNow)
	require.NotNil(t, info)

	assert.Equal(t, "Hoje", info.DayLabel)
	assert.Equal(t, "14:00 - 18:00", info.TimeRange)
	assert.Equal(t, "Reciclável", info.WasteType)
}

func TestNextCollectionSlotPassedTodayRollsOver(t *testing.T) {
	// Monday 08:00 already passed by 10:00, so Wednesday comes first.
	schedules := []models.CollectionSchedule{
		slot("Segunda-feira", "08:00", "12:00", "Reciclável"),
		slot("Quarta-feira", "08:00", "12:00", "Orgânico"),
	}

	info := nextCollectionSlot(schedules, scheduleNow)
	require.NotNil(t, info)

	assert.Equal(t, "Quarta-feira", info.DayLabel)
	assert.Equal(t, "Orgânico", info.WasteType)
}

func TestNextCollectionSlotTomorrow(t *testing.T) {
	schedules := []models.CollectionSchedule{
		slot("Terça-feira", "08:00", "12:00", "Vidro"),
	}

	info := nextCollectionSlot(schedules, scheduleNow)
	require.NotNil(t, info)

	assert.Equal(t, "Amanhã", info.DayLabel)
}

func TestNextCollectionSlotOnlySchedulePassedToday(t *testing.T) {
	// The sole window passed this morning; it comes back next Monday
	// labeled by its weekday, not "Hoje".
	schedules := []models.CollectionSchedule{
		slot("Segunda-feira", "08:00", "12:00", "Reciclável"),
	}

	info := nextCollectionSlot(schedules, scheduleNow)
	require.NotNil(t, info)

	assert.Equal(t, "Segunda-feira", info.DayLabel)
}

func TestNextCollectionSlotEmpty(t *testing.T) {
	assert.Nil(t, nextCollectionSlot(nil, scheduleNow))
}

func TestNextCollectionSlotSkipsMalformedEntries(t *testing.T) {
	schedules := []models.CollectionSchedule{
		slot("Someday", "08:00", "12:00", "Reciclável"),
		slot("Terça-feira", "not-a-time", "12:00", "Reciclável"),
		slot("Sexta-feira", "09:00", "11:00", "Óleo"),
	}

	info := nextCollectionSlot(schedules, scheduleNow)
	require.NotNil(t, info)

	assert.Equal(t, "Sexta-feira", info.DayLabel)
	assert.Equal(t, "Óleo", info.WasteType)
}

func TestParseClock(t *testing.T) {
	h, m, ok := parseClock("08:30")
	assert.True(t, ok)
	assert.Equal(t, 8, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "8", "25:00", "08:60", "ab:cd"} {
		_, _, ok := parseClock(bad)
		assert.False(t, ok, bad)
	}
}
