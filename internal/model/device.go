package model

// Device represents a smart-home appliance or sensor.
//
// Type is a free-form category tag such as "door_lock" or
// "security_camera"; the anomaly scanner matches it against a
// configured watch list.
type Device struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;not null" json:"name"`
	Type string `gorm:"size:64;not null" json:"type"`

	// Associations
	UsageLogs []UsageLog `gorm:"foreignKey:DeviceID" json:"-"`
}
