package models

import (
	"gorm.io/gorm"
)

// UserPreference stores per-user default recommendation filters.
// Every field is optional; the recommendation engine falls back to
// system defaults for anything left unset.
type UserPreference struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null"`
	CuisineType  string `gorm:"size:50"`
	Category     string `gorm:"size:50"`
	PriceRange   string `gorm:"size:10"`
	IsVegetarian bool   `gorm:"default:false"`
	AvoidSpicy   bool   `gorm:"default:false"`
	// Days before the same meal may be recommended again. Nil falls
	// back to the system default; persisted values are clamped to [1,30].
	CooldownDays *int
}
