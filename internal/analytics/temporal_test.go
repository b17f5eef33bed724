package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smarthome-analytics-backend/internal/model"
)

func mkTime(day, hour, min int) time.Time {
	return time.Date(2025, 6, day, hour, min, 0, 0, time.UTC)
}

func testDevices() map[int64]model.Device {
	return map[int64]model.Device{
		1: {ID: 1, Name: "Living Room Lamp", Type: "light"},
		2: {ID: 2, Name: "Front Door Lock", Type: "door_lock"},
	}
}

func TestTemporalProfile_DailyAndAverage(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 10, 30)},
		{ID: 2, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 18, 0), FinishTime: mkTime(1, 18, 15)},
		{ID: 3, UserID: 2, DeviceID: 1, StartTime: mkTime(2, 9, 0), FinishTime: mkTime(2, 9, 5)},
		{ID: 4, UserID: 1, DeviceID: 2, StartTime: mkTime(1, 8, 0), FinishTime: mkTime(1, 8, 1)},
	}

	report := TemporalProfile(logs, testDevices())

	assert.Equal(t, 2, report.DailyUsageFrequency["Living Room Lamp"]["2025-06-01"])
	assert.Equal(t, 1, report.DailyUsageFrequency["Living Room Lamp"]["2025-06-02"])
	assert.Equal(t, 1, report.DailyUsageFrequency["Front Door Lock"]["2025-06-01"])

	// (2 + 1) sessions over 2 active days.
	assert.InDelta(t, 1.5, report.AverageDailyFrequency["Living Room Lamp"], 1e-9)
	assert.InDelta(t, 1.0, report.AverageDailyFrequency["Front Door Lock"], 1e-9)
}

// The average must equal sum of daily counts over the number of active
// days for every device in the report.
func TestTemporalProfile_AverageIdentity(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
		{ID: 2, DeviceID: 1, StartTime: mkTime(1, 12, 0), FinishTime: mkTime(1, 13, 0)},
		{ID: 3, DeviceID: 1, StartTime: mkTime(3, 12, 0), FinishTime: mkTime(3, 13, 0)},
		{ID: 4, DeviceID: 2, StartTime: mkTime(2, 7, 0), FinishTime: mkTime(2, 7, 30)},
	}

	report := TemporalProfile(logs, testDevices())

	for name, daily := range report.DailyUsageFrequency {
		total := 0
		for _, n := range daily {
			total += n
		}
		want := roundTo(float64(total)/float64(len(daily)), 2)
		assert.Equal(t, want, report.AverageDailyFrequency[name], "device %s", name)
	}
}

func TestTemporalProfile_HourlyClosedRange(t *testing.T) {
	logs := []model.UsageLog{
		// 10:15 -> 13:05 touches hours 10, 11, 12, 13.
		{ID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 15), FinishTime: mkTime(1, 13, 5)},
	}

	report := TemporalProfile(logs, testDevices())

	hourly := report.HourlyDistribution["Living Room Lamp"]
	for h := 10; h <= 13; h++ {
		assert.Equal(t, 1, hourly[h], "hour %d", h)
	}
	assert.Equal(t, 0, hourly[9])
	assert.Equal(t, 0, hourly[14])
}

func TestTemporalProfile_MidnightWrap(t *testing.T) {
	logs := []model.UsageLog{
		// 23:30 -> 01:10 next day touches hours 23, 0, 1.
		{ID: 1, DeviceID: 2, StartTime: mkTime(1, 23, 30), FinishTime: mkTime(2, 1, 10)},
	}

	report := TemporalProfile(logs, testDevices())

	hourly := report.HourlyDistribution["Front Door Lock"]
	assert.Equal(t, 1, hourly[23])
	assert.Equal(t, 1, hourly[0])
	assert.Equal(t, 1, hourly[1])
	assert.Equal(t, 0, hourly[2])
	// Daily bucket keys on the start date.
	assert.Equal(t, 1, report.DailyUsageFrequency["Front Door Lock"]["2025-06-01"])
}

func TestTemporalProfile_SkipsBadLogs(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, DeviceID: 1, FinishTime: mkTime(1, 10, 0)},                                  // missing start
		{ID: 2, DeviceID: 1, StartTime: mkTime(1, 10, 0)},                                   // missing finish
		{ID: 3, DeviceID: 99, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 10, 30)},   // unknown device
	}

	report := TemporalProfile(logs, testDevices())

	assert.Empty(t, report.DailyUsageFrequency)
	assert.Empty(t, report.AverageDailyFrequency)
	assert.Empty(t, report.HourlyDistribution)
}

func TestTemporalProfile_EmptyInput(t *testing.T) {
	report := TemporalProfile(nil, testDevices())
	assert.NotNil(t, report.DailyUsageFrequency)
	assert.Empty(t, report.AverageDailyFrequency)
}
