package models

import (
	"time"
)

// RecommendationHistory traces meals surfaced to users. Rows are
// append-only; the cooldown logic only ever reads them in aggregate.
type RecommendationHistory struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"index"`
	MealID        uint      `gorm:"index;not null"`
	RestaurantID  uint      `gorm:"not null"`
	RecommendedAt time.Time `gorm:"index;autoCreateTime"`
	WasSelected   bool      `gorm:"default:false"`
}
