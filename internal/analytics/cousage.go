package analytics

import (
	"sort"

	"smarthome-analytics-backend/internal/model"
)

// CoUsageReport holds the symmetric device co-usage matrix.
type CoUsageReport struct {
	// CoUsage maps device name -> device name -> number of overlapping
	// usage intervals observed for the same user. The mapping is
	// symmetric; device pairs that never overlap are absent.
	CoUsage map[string]map[string]int `json:"co_usage"`
}

// CoUsage counts, per user, how often two differently-named devices
// were in use at the same time. Intervals overlap when
// a.Finish >= b.Start and b.Finish >= a.Start (closed intervals).
//
// The per-user scan is O(n²) over that user's logs, which is fine at
// household volumes. At larger scale an interval sweep (sort by start,
// maintain an active set) brings this to O(n log n).
func CoUsage(logs []model.UsageLog, deviceByID map[int64]model.Device) *CoUsageReport {
	byUser := make(map[int64][]model.UsageLog)
	for _, l := range logs {
		if l.StartTime.IsZero() || l.FinishTime.IsZero() {
			continue
		}
		if _, ok := deviceByID[l.DeviceID]; !ok {
			continue
		}
		byUser[l.UserID] = append(byUser[l.UserID], l)
	}

	report := &CoUsageReport{CoUsage: make(map[string]map[string]int)}

	for _, userLogs := range byUser {
		sort.Slice(userLogs, func(i, j int) bool {
			return userLogs[i].StartTime.Before(userLogs[j].StartTime)
		})

		for i := 0; i < len(userLogs); i++ {
			for j := i + 1; j < len(userLogs); j++ {
				a, b := userLogs[i], userLogs[j]
				if a.FinishTime.Before(b.StartTime) || b.FinishTime.Before(a.StartTime) {
					continue
				}
				nameA := deviceByID[a.DeviceID].Name
				nameB := deviceByID[b.DeviceID].Name
				if nameA == nameB {
					// A device trivially "co-uses" with itself.
					continue
				}
				report.increment(nameA, nameB)
				report.increment(nameB, nameA)
			}
		}
	}

	return report
}

func (r *CoUsageReport) increment(a, b string) {
	row := r.CoUsage[a]
	if row == nil {
		row = make(map[string]int)
		r.CoUsage[a] = row
	}
	row[b]++
}
