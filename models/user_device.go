package models

import "time"

// UserDevice maps a user's mobile device to its SNS platform endpoint so
// reminder pushes can be delivered. Raw tokens are never stored.
type UserDevice struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index"`
	Platform    string    `gorm:"size:16"` // "android" | "ios"
	TokenHash   string    `gorm:"size:64;uniqueIndex"`
	EndpointARN string    `gorm:"size:256"`
	Enabled     bool      `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
