package model

import "time"

// SecurityEvent is a persisted alert raised by the anomaly scanner (or
// created directly through the CRUD API). Rows are immutable after
// creation.
type SecurityEvent struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Message   string    `gorm:"column:event;not null" json:"event"`
	Severity  Severity  `gorm:"size:16;not null;default:info" json:"severity"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}
