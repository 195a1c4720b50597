package models

import (
	"gorm.io/gorm"
)

// Restaurant price tiers. Stored as plain strings so they survive
// round-trips through forms and query params.
const (
	PriceLow    = "low"
	PriceMedium = "medium"
	PriceHigh   = "high"
)

func ValidPriceRange(v string) bool {
	return v == PriceLow || v == PriceMedium || v == PriceHigh
}

type Restaurant struct {
	gorm.Model
	Name        string  `gorm:"size:100;not null"`
	Address     string  `gorm:"size:255"`
	City        string  `gorm:"size:50;index:idx_city_district"`
	District    string  `gorm:"size:50;index:idx_city_district"`
	Phone       string  `gorm:"size:20"`
	CuisineType string  `gorm:"size:50;index"`
	PriceRange  string  `gorm:"size:10;default:medium;index"`
	Rating      float64 `gorm:"type:decimal(3,1);default:0"`
	IsActive    bool    `gorm:"default:true;index"`
	Meals       []Meal
}
