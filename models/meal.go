package models

import (
	"gorm.io/gorm"
)

// A dish offered by a restaurant. IsSpicy is a pointer because merchants
// don't always declare spiciness; nil means unknown, which the
// recommendation filters treat differently from false.
type Meal struct {
	gorm.Model
	RestaurantID uint       `gorm:"index;not null"`
	Restaurant   Restaurant `json:"-"`
	Name         string     `gorm:"size:100;not null"`
	Description  string     `gorm:"type:text"`
	Price        float64    `gorm:"type:decimal(10,2)"`
	Category     string     `gorm:"size:50;index"`
	IsVegetarian bool       `gorm:"default:false;index"`
	IsSpicy      *bool
	ImageURL     string `gorm:"size:255"`
	IsAvailable  bool   `gorm:"default:true;index"`
}
