package model

import "time"

// PushSubscription holds the information for a browser push
// subscription. MinSeverity is the least severe event the subscriber
// wants to be alerted about.
type PushSubscription struct {
	Endpoint    string    `gorm:"primaryKey"`
	P256DH      string    `gorm:"column:p256dh;not null"`
	Auth        string    `gorm:"not null"`
	MinSeverity Severity  `gorm:"size:16;not null;default:critical"`
	CreatedAt   time.Time `gorm:"not null"`
}
