package models

import (
	"time"
)

type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_fav_user_meal"`
	MealID    uint `gorm:"not null;uniqueIndex:idx_fav_user_meal"`
	CreatedAt time.Time
}

type Review struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index;not null;uniqueIndex:idx_review_user_meal"`
	MealID       uint `gorm:"not null;uniqueIndex:idx_review_user_meal"`
	RestaurantID uint `gorm:"index"`
	Rating       int  `gorm:"not null"` // 1..5
	Comment      string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
