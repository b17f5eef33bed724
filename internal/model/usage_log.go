package model

import "time"

// UsageLog records one contiguous interval during which a user
// operated a device. FinishTime is never before StartTime; the API
// layer rejects such payloads at intake. Logs are the primary
// analytics input.
type UsageLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	DeviceID   int64     `gorm:"index;not null" json:"device_id"`
	StartTime  time.Time `gorm:"not null;index" json:"start_time"`
	FinishTime time.Time `gorm:"not null" json:"finish_time"`
}
