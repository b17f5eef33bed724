package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarthome-analytics-backend/internal/model"
)

// securityEventRequest is the intake shape for manually filed events.
// Severity goes through ParseSeverity; unknown values are rejected here
// rather than stored and sorted last.
type securityEventRequest struct {
	UserID    int64     `json:"user_id" binding:"required"`
	Message   string    `json:"event" binding:"required"`
	Severity  string    `json:"severity" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateSecurityEvent handles POST /api/securityevents. Events are
// immutable once created; there is deliberately no update route.
func CreateSecurityEvent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req securityEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		severity, err := model.ParseSeverity(req.Severity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ts := req.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}

		event := model.SecurityEvent{
			UserID:    req.UserID,
			Message:   req.Message,
			Severity:  severity,
			Timestamp: ts,
		}
		if err := db.Create(&event).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create security event"})
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

// ListSecurityEvents handles GET /api/securityevents.
func ListSecurityEvents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var events []model.SecurityEvent
		if err := db.Order("timestamp DESC").Find(&events).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve security events"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// DeleteSecurityEvent handles DELETE /api/securityevents/{event_id}.
func DeleteSecurityEvent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid security event ID"})
			return
		}

		res := db.Delete(&model.SecurityEvent{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Security event not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Security event deleted"})
	}
}
