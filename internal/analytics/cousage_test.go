package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthome-analytics-backend/internal/model"
)

func cousageDevices() map[int64]model.Device {
	return map[int64]model.Device{
		1: {ID: 1, Name: "Lamp", Type: "light"},
		2: {ID: 2, Name: "TV", Type: "media"},
		3: {ID: 3, Name: "Thermostat", Type: "thermostat"},
		4: {ID: 4, Name: "Lamp", Type: "light"}, // same name as device 1
	}
}

func TestCoUsage_BasicOverlap(t *testing.T) {
	// Two devices of the same user overlapping 10:15-10:30.
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 10, 30)},
		{ID: 2, UserID: 1, DeviceID: 2, StartTime: mkTime(1, 10, 15), FinishTime: mkTime(1, 10, 45)},
	}

	report := CoUsage(logs, cousageDevices())

	require.Contains(t, report.CoUsage, "Lamp")
	assert.Equal(t, 1, report.CoUsage["Lamp"]["TV"])
	assert.Equal(t, 1, report.CoUsage["TV"]["Lamp"])
}

func TestCoUsage_Symmetry(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 9, 0), FinishTime: mkTime(1, 12, 0)},
		{ID: 2, UserID: 1, DeviceID: 2, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
		{ID: 3, UserID: 1, DeviceID: 3, StartTime: mkTime(1, 10, 30), FinishTime: mkTime(1, 13, 0)},
		{ID: 4, UserID: 2, DeviceID: 1, StartTime: mkTime(1, 20, 0), FinishTime: mkTime(1, 21, 0)},
		{ID: 5, UserID: 2, DeviceID: 3, StartTime: mkTime(1, 20, 30), FinishTime: mkTime(1, 20, 45)},
	}

	report := CoUsage(logs, cousageDevices())

	for a, row := range report.CoUsage {
		for b, n := range row {
			assert.Equal(t, n, report.CoUsage[b][a], "co_usage[%s][%s] != co_usage[%s][%s]", a, b, b, a)
		}
	}
	// Lamp overlapped Thermostat once for user 1 and once for user 2.
	assert.Equal(t, 2, report.CoUsage["Lamp"]["Thermostat"])
}

func TestCoUsage_NoOverlapAcrossUsers(t *testing.T) {
	// Same wall-clock overlap but different users: no co-usage.
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
		{ID: 2, UserID: 2, DeviceID: 2, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
	}

	report := CoUsage(logs, cousageDevices())
	assert.Empty(t, report.CoUsage)
}

func TestCoUsage_SingleLogUser(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
	}

	report := CoUsage(logs, cousageDevices())
	assert.Empty(t, report.CoUsage)
}

func TestCoUsage_SameNameExcluded(t *testing.T) {
	// Devices 1 and 4 share the name "Lamp"; overlap must not count.
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
		{ID: 2, UserID: 1, DeviceID: 4, StartTime: mkTime(1, 10, 30), FinishTime: mkTime(1, 11, 30)},
	}

	report := CoUsage(logs, cousageDevices())
	assert.Empty(t, report.CoUsage)
}

func TestCoUsage_TouchingEndpointsCount(t *testing.T) {
	// Closed intervals: finish == start of the next still overlaps.
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
		{ID: 2, UserID: 1, DeviceID: 2, StartTime: mkTime(1, 11, 0), FinishTime: mkTime(1, 12, 0)},
	}

	report := CoUsage(logs, cousageDevices())
	assert.Equal(t, 1, report.CoUsage["Lamp"]["TV"])
}

func TestCoUsage_DisjointIntervals(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 10, 30)},
		{ID: 2, UserID: 1, DeviceID: 2, StartTime: mkTime(1, 11, 0), FinishTime: mkTime(1, 11, 30)},
	}

	report := CoUsage(logs, cousageDevices())
	assert.Empty(t, report.CoUsage)
}

func TestCoUsage_UnsortedInput(t *testing.T) {
	// Input order must not matter; analyzer sorts per user.
	logs := []model.UsageLog{
		{ID: 2, UserID: 1, DeviceID: 2, StartTime: mkTime(1, 10, 15), FinishTime: mkTime(1, 10, 45)},
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 10, 30)},
	}

	report := CoUsage(logs, cousageDevices())
	assert.Equal(t, 1, report.CoUsage["TV"]["Lamp"])
}

func TestCoUsage_ZeroTimestampSkipped(t *testing.T) {
	logs := []model.UsageLog{
		{ID: 1, UserID: 1, DeviceID: 1, StartTime: mkTime(1, 10, 0), FinishTime: mkTime(1, 11, 0)},
		{ID: 2, UserID: 1, DeviceID: 2, FinishTime: mkTime(1, 10, 30)}, // zero start: overlaps everything if kept
	}

	report := CoUsage(logs, cousageDevices())
	assert.Empty(t, report.CoUsage)
}

func BenchmarkCoUsage(b *testing.B) {
	devices := cousageDevices()
	var logs []model.UsageLog
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		start := base.Add(time.Duration(i) * 10 * time.Minute)
		logs = append(logs, model.UsageLog{
			ID:         int64(i),
			UserID:     int64(i % 10),
			DeviceID:   int64(i%3 + 1),
			StartTime:  start,
			FinishTime: start.Add(25 * time.Minute),
		})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CoUsage(logs, devices)
	}
}
