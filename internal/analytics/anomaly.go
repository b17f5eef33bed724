package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"smarthome-analytics-backend/internal/model"
)

// Anomaly reason labels.
const (
	ReasonOffHours        = "off-hours usage"
	ReasonSensitiveDevice = "sensitive device type"
	ReasonLongSession     = "long session"
)

// RuleSet holds the tunables for the anomaly scanner.
type RuleSet struct {
	offHours     map[int]bool
	watchedTypes map[string]bool
	longSession  time.Duration
}

// NewRuleSet builds a RuleSet from the configured off-hours, watched
// device types and long-session threshold.
func NewRuleSet(offHours []int, watchedTypes []string, longSession time.Duration) RuleSet {
	rs := RuleSet{
		offHours:     make(map[int]bool, len(offHours)),
		watchedTypes: make(map[string]bool, len(watchedTypes)),
		longSession:  longSession,
	}
	for _, h := range offHours {
		rs.offHours[h] = true
	}
	for _, t := range watchedTypes {
		rs.watchedTypes[t] = true
	}
	return rs
}

// Alert is one enriched scan finding, ready for JSON output. ID is
// filled in once the underlying security event has been persisted.
type Alert struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	Message         string         `json:"event"`
	Severity        model.Severity `json:"severity"`
	Timestamp       time.Time      `json:"timestamp"`
	UserName        string         `json:"user_name"`
	DeviceName      string         `json:"device_name"`
	DeviceType      string         `json:"device_type"`
	StartTime       time.Time      `json:"start_time"`
	DurationMinutes float64        `json:"duration_minutes"`
	Reasons         []string       `json:"reasons"`
}

// Event converts the alert to its persistable form.
func (a *Alert) Event() *model.SecurityEvent {
	return &model.SecurityEvent{
		UserID:    a.UserID,
		Message:   a.Message,
		Severity:  a.Severity,
		Timestamp: a.Timestamp,
	}
}

// ScanAnomalies evaluates every usage log against the rule set and
// returns the resulting alerts sorted critical-first (stable among
// equal severities). Logs with zero-value timestamps or unresolvable
// user/device references are skipped. The scan itself is read-only;
// persisting the alerts' events is the caller's responsibility.
//
// Severity is critical when two or more rules fire, warning otherwise.
func ScanAnomalies(logs []model.UsageLog, userByID map[int64]model.User, deviceByID map[int64]model.Device, rules RuleSet, now time.Time) []*Alert {
	var alerts []*Alert

	for _, l := range logs {
		if l.StartTime.IsZero() || l.FinishTime.IsZero() {
			continue
		}
		user, ok := userByID[l.UserID]
		if !ok {
			continue
		}
		device, ok := deviceByID[l.DeviceID]
		if !ok {
			continue
		}

		var reasons []string
		if rules.offHours[l.StartTime.Hour()] {
			reasons = append(reasons, ReasonOffHours)
		}
		if rules.watchedTypes[device.Type] {
			reasons = append(reasons, ReasonSensitiveDevice)
		}
		duration := l.FinishTime.Sub(l.StartTime)
		if duration > rules.longSession {
			reasons = append(reasons, ReasonLongSession)
		}
		if len(reasons) == 0 {
			continue
		}

		severity := model.SeverityWarning
		if len(reasons) >= 2 {
			severity = model.SeverityCritical
		}

		alerts = append(alerts, &Alert{
			UserID: l.UserID,
			Message: fmt.Sprintf("anomaly detected: %s - device: %s (user: %s)",
				strings.Join(reasons, " & "), device.Name, user.Name),
			Severity:        severity,
			Timestamp:       now,
			UserName:        user.Name,
			DeviceName:      device.Name,
			DeviceType:      device.Type,
			StartTime:       l.StartTime,
			DurationMinutes: roundTo(duration.Minutes(), 1),
			Reasons:         reasons,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
	})
	return alerts
}
