package analytics

import (
	"smarthome-analytics-backend/internal/model"
)

// TemporalReport holds per-device usage distributions over time.
type TemporalReport struct {
	// DailyUsageFrequency maps device name -> calendar date ("2006-01-02")
	// -> number of sessions started that day.
	DailyUsageFrequency map[string]map[string]int `json:"daily_usage_frequency"`
	// AverageDailyFrequency maps device name -> mean sessions per active
	// day, rounded to 2 decimals. Devices with no logs are absent.
	AverageDailyFrequency map[string]float64 `json:"average_daily_frequency"`
	// HourlyDistribution maps device name -> hour of day (0-23) -> number
	// of sessions touching that hour.
	HourlyDistribution map[string]map[int]int `json:"hourly_distribution"`
}

// TemporalProfile computes daily and hourly usage distributions per
// device. Dates and hours are taken from the timestamps as stored, with
// no timezone conversion.
//
// A session increments every integer hour in the closed range from its
// start hour to its finish hour (wrapping through 23 when it crosses
// midnight). Sessions spanning many hours therefore over-count relative
// to per-minute overlap; this coarse approximation is accepted.
func TemporalProfile(logs []model.UsageLog, deviceByID map[int64]model.Device) *TemporalReport {
	report := &TemporalReport{
		DailyUsageFrequency:   make(map[string]map[string]int),
		AverageDailyFrequency: make(map[string]float64),
		HourlyDistribution:    make(map[string]map[int]int),
	}

	for _, l := range logs {
		if l.StartTime.IsZero() || l.FinishTime.IsZero() {
			continue
		}
		device, ok := deviceByID[l.DeviceID]
		if !ok {
			continue
		}

		day := l.StartTime.Format("2006-01-02")
		daily := report.DailyUsageFrequency[device.Name]
		if daily == nil {
			daily = make(map[string]int)
			report.DailyUsageFrequency[device.Name] = daily
		}
		daily[day]++

		hourly := report.HourlyDistribution[device.Name]
		if hourly == nil {
			hourly = make(map[int]int)
			report.HourlyDistribution[device.Name] = hourly
		}
		for _, h := range hourRange(l.StartTime.Hour(), l.FinishTime.Hour()) {
			hourly[h]++
		}
	}

	for name, daily := range report.DailyUsageFrequency {
		total := 0
		for _, n := range daily {
			total += n
		}
		// len(daily) >= 1 whenever the device appears at all.
		report.AverageDailyFrequency[name] = roundTo(float64(total)/float64(len(daily)), 2)
	}

	return report
}

// hourRange returns the closed range of hours from start to finish,
// wrapping through 23 when finish < start (session crossed midnight).
func hourRange(start, finish int) []int {
	hours := []int{start}
	for h := start; h != finish; {
		h = (h + 1) % 24
		hours = append(hours, h)
	}
	return hours
}
