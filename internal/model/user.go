package model

// User represents a resident of a monitored dwelling.
type User struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:128;not null" json:"name"`
	HouseArea float64 `gorm:"not null" json:"house_area"` // dwelling size in m²

	// Associations
	UsageLogs      []UsageLog      `gorm:"foreignKey:UserID" json:"-"`
	SecurityEvents []SecurityEvent `gorm:"foreignKey:UserID" json:"-"`
	Feedbacks      []Feedback      `gorm:"foreignKey:UserID" json:"-"`
}
