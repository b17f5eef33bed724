package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smarthome-analytics-backend/internal/analytics"
	"smarthome-analytics-backend/internal/model"
)

// GetDeviceUsage handles GET /api/analysis/device-usage: per-device
// daily and hourly usage distributions.
func (h *Handler) GetDeviceUsage(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read analytics snapshot"})
		return
	}

	report := analytics.TemporalProfile(snap.Logs, snap.DeviceByID())
	c.JSON(http.StatusOK, report)
}

// GetCoUsage handles GET /api/analysis/co-usage: the symmetric
// device-pair overlap matrix.
func (h *Handler) GetCoUsage(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read analytics snapshot"})
		return
	}

	report := analytics.CoUsage(snap.Logs, snap.DeviceByID())
	c.JSON(http.StatusOK, report)
}

// GetAreaVsUsage handles GET /api/analysis/area-vs-usage: correlation
// between dwelling size and usage counts, band statistics and outliers.
// An unusable dataset yields a 200 with a message, not an error.
func (h *Handler) GetAreaVsUsage(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read analytics snapshot"})
		return
	}

	report := analytics.AreaUsage(snap.Users, snap.Logs)
	c.JSON(http.StatusOK, report)
}

// RunAlarmCheck handles POST /api/analysis/alarm-check. It scans every
// usage log against the anomaly rules, persists the resulting security
// events as one atomic batch, and returns the enriched alerts sorted
// critical-first. A persistence failure fails the whole request; the
// batch rolls back, so a retry cannot leave partial events behind.
func (h *Handler) RunAlarmCheck(c *gin.Context) {
	ctx := c.Request.Context()

	snap, err := h.store.Snapshot(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read analytics snapshot"})
		return
	}

	alerts := analytics.ScanAnomalies(snap.Logs, snap.UserByID(), snap.DeviceByID(), h.rules, time.Now().UTC())

	events := make([]*model.SecurityEvent, len(alerts))
	for i, a := range alerts {
		events[i] = a.Event()
	}
	if err := h.store.AppendSecurityEvents(ctx, events); err != nil {
		log.Printf("alarm check: failed to persist %d security events: %v", len(events), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist security events"})
		return
	}
	for i, a := range alerts {
		a.ID = events[i].ID
	}

	if h.alerts != nil {
		for _, e := range events {
			if e.Severity == model.SeverityCritical {
				h.alerts.Dispatch(e.ID)
			}
		}
	}

	// Return an empty list, not null, when nothing was flagged.
	if alerts == nil {
		alerts = []*analytics.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}
