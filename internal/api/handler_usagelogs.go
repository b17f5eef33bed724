package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarthome-analytics-backend/internal/model"
)

// usageLogRequest carries the mutable fields of a usage log.
type usageLogRequest struct {
	UserID     int64     `json:"user_id" binding:"required"`
	DeviceID   int64     `json:"device_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	FinishTime time.Time `json:"finish_time" binding:"required"`
}

// validate checks interval ordering and that the referenced user and
// device exist. Analytics tolerates dangling references by skipping,
// but intake refuses to create them in the first place.
func (r *usageLogRequest) validate(db *gorm.DB) (status int, msg string) {
	if r.FinishTime.Before(r.StartTime) {
		return http.StatusBadRequest, "finish_time must not be before start_time"
	}
	var n int64
	if err := db.Model(&model.User{}).Where("id = ?", r.UserID).Count(&n).Error; err != nil {
		return http.StatusInternalServerError, err.Error()
	}
	if n == 0 {
		return http.StatusBadRequest, "user does not exist"
	}
	if err := db.Model(&model.Device{}).Where("id = ?", r.DeviceID).Count(&n).Error; err != nil {
		return http.StatusInternalServerError, err.Error()
	}
	if n == 0 {
		return http.StatusBadRequest, "device does not exist"
	}
	return 0, ""
}

// CreateUsageLog handles POST /api/usagelogs.
func CreateUsageLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usageLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if status, msg := req.validate(db); status != 0 {
			c.JSON(status, gin.H{"error": msg})
			return
		}

		logEntry := model.UsageLog{
			UserID:     req.UserID,
			DeviceID:   req.DeviceID,
			StartTime:  req.StartTime,
			FinishTime: req.FinishTime,
		}
		if err := db.Create(&logEntry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create usage log"})
			return
		}
		c.JSON(http.StatusCreated, logEntry)
	}
}

// ListUsageLogs handles GET /api/usagelogs.
func ListUsageLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var logs []model.UsageLog
		if err := db.Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve usage logs"})
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}

// UpdateUsageLog handles PUT /api/usagelogs/{log_id}.
func UpdateUsageLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("log_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid usage log ID"})
			return
		}

		var req usageLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if status, msg := req.validate(db); status != 0 {
			c.JSON(status, gin.H{"error": msg})
			return
		}

		var logEntry model.UsageLog
		if err := db.First(&logEntry, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Usage log not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		logEntry.UserID = req.UserID
		logEntry.DeviceID = req.DeviceID
		logEntry.StartTime = req.StartTime
		logEntry.FinishTime = req.FinishTime
		if err := db.Save(&logEntry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update usage log"})
			return
		}
		c.JSON(http.StatusOK, logEntry)
	}
}

// DeleteUsageLog handles DELETE /api/usagelogs/{log_id}.
func DeleteUsageLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("log_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid usage log ID"})
			return
		}

		res := db.Delete(&model.UsageLog{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usage log not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Usage log deleted"})
	}
}
