package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

func ValidMealType(v string) bool {
	switch v {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// DailyMealRecord is one logged intake entry. The composite unique index
// mirrors the duplicate guard: one record per (user, date, type, name).
type DailyMealRecord struct {
	gorm.Model
	UserID       uint      `gorm:"index:idx_meal_user_date;not null;uniqueIndex:idx_record_slot"`
	Date         time.Time `gorm:"index:idx_meal_user_date;not null;uniqueIndex:idx_record_slot"`
	MealType     string    `gorm:"size:16;not null;uniqueIndex:idx_record_slot"`
	MealName     string    `gorm:"size:100;not null;uniqueIndex:idx_record_slot"`
	SourceMealID *uint     `gorm:"index"`
	Calories     float64   `gorm:"type:decimal(6,2)"`
	ProteinGrams float64   `gorm:"type:decimal(6,2)"`
	CarbGrams    float64   `gorm:"type:decimal(6,2)"`
	FatGrams     float64   `gorm:"type:decimal(6,2)"`
	MealNotes    string    `gorm:"type:text"`
}

// WeeklyIntakeSummary caches Monday-start weekly totals so dashboards
// don't recompute them on every hit.
type WeeklyIntakeSummary struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"index;not null;uniqueIndex:idx_weekly_user_start"`
	WeekStart     time.Time `gorm:"not null;uniqueIndex:idx_weekly_user_start"`
	TotalCalories float64   `gorm:"type:decimal(8,2);default:0"`
	TotalProtein  float64   `gorm:"type:decimal(8,2);default:0"`
	TotalCarbs    float64   `gorm:"type:decimal(8,2);default:0"`
	TotalFat      float64   `gorm:"type:decimal(8,2);default:0"`
	MealCount     int       `gorm:"default:0"`
	CalculatedAt  time.Time `gorm:"autoUpdateTime"`
}
