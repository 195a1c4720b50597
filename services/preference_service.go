package services

import (
	"errors"

	"github.com/ethan-devlab/RMRS-Deploy/models"

	"gorm.io/gorm"
)

type PreferenceService struct{ db *gorm.DB }

func NewPreferenceService(db *gorm.DB) *PreferenceService { return &PreferenceService{db: db} }

// GetOrCreate returns the user's preference row, creating an empty one
// on first access. Absence of explicit filters is a normal state.
func (s *PreferenceService) GetOrCreate(userID uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := s.db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.UserPreference{UserID: userID}
		if err := s.db.Create(&pref).Error; err != nil {
			return nil, err
		}
		return &pref, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

type PreferenceInput struct {
	CuisineType  string `json:"cuisineType"`
	Category     string `json:"category"`
	PriceRange   string `json:"priceRange"`
	IsVegetarian bool   `json:"isVegetarian"`
	AvoidSpicy   bool   `json:"avoidSpicy"`
	CooldownDays *int   `json:"cooldownDays"`
}

// Update validates and saves the preference. The cooldown is stored as
// submitted; clamping to the system range happens at resolve time.
func (s *PreferenceService) Update(userID uint, in PreferenceInput) (*models.UserPreference, map[string][]string, error) {
	errs := map[string][]string{}
	if in.PriceRange != "" && !models.ValidPriceRange(in.PriceRange) {
		errs["priceRange"] = append(errs["priceRange"], "must be one of low, medium, high")
	}
	if in.CooldownDays != nil && (*in.CooldownDays < MinCooldownDays || *in.CooldownDays > MaxCooldownDays) {
		errs["cooldownDays"] = append(errs["cooldownDays"], "must be between 1 and 30")
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	pref, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, nil, err
	}
	pref.CuisineType = in.CuisineType
	pref.Category = in.Category
	pref.PriceRange = in.PriceRange
	pref.IsVegetarian = in.IsVegetarian
	pref.AvoidSpicy = in.AvoidSpicy
	pref.CooldownDays = in.CooldownDays
	if err := s.db.Save(pref).Error; err != nil {
		return nil, nil, err
	}
	return pref, nil, nil
}
