package model

import "time"

// Feedback is a free-form user message. Pure CRUD record, never read
// by analytics.
type Feedback struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Message   string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
