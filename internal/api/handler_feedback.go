package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smarthome-analytics-backend/internal/model"
)

// feedbackRequest carries the mutable fields of a feedback record.
type feedbackRequest struct {
	UserID    int64     `json:"user_id" binding:"required"`
	Message   string    `json:"message" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateFeedback handles POST /api/feedbacks.
func CreateFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ts := req.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}

		fb := model.Feedback{UserID: req.UserID, Message: req.Message, Timestamp: ts}
		if err := db.Create(&fb).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create feedback"})
			return
		}
		c.JSON(http.StatusCreated, fb)
	}
}

// ListFeedbacks handles GET /api/feedbacks.
func ListFeedbacks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var feedbacks []model.Feedback
		if err := db.Find(&feedbacks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedbacks"})
			return
		}
		c.JSON(http.StatusOK, feedbacks)
	}
}

// UpdateFeedback handles PUT /api/feedbacks/{feedback_id}.
func UpdateFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("feedback_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
			return
		}

		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var fb model.Feedback
		if err := db.First(&fb, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		fb.UserID = req.UserID
		fb.Message = req.Message
		if !req.Timestamp.IsZero() {
			fb.Timestamp = req.Timestamp
		}
		if err := db.Save(&fb).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feedback"})
			return
		}
		c.JSON(http.StatusOK, fb)
	}
}

// DeleteFeedback handles DELETE /api/feedbacks/{feedback_id}.
func DeleteFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("feedback_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
			return
		}

		res := db.Delete(&model.Feedback{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Feedback deleted"})
	}
}
