package services

import (
	"errors"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"

	"gorm.io/gorm"
)

// MealCandidate is an eagerly-resolved snapshot of a meal and its
// restaurant, plus the favorite count. The recommendation core works on
// these instead of reaching through relations.
type MealCandidate struct {
	MealID         uint      `json:"mealId"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Price          float64   `json:"price,omitempty"`
	IsVegetarian   bool      `json:"isVegetarian"`
	IsSpicy        *bool     `json:"isSpicy"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"-"`
	RestaurantID   uint      `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	CuisineType    string    `json:"cuisineType,omitempty"`
	PriceRange     string    `json:"priceRange,omitempty"`
	City           string    `json:"city,omitempty"`
	District       string    `json:"district,omitempty"`
	Rating         float64   `json:"rating"`
	FavoriteCount  int64     `json:"favoriteCount"`
}

// CandidateStore supplies every meal currently eligible for
// recommendation: available meal on an active restaurant.
type CandidateStore interface {
	AvailableCandidates() ([]MealCandidate, error)
}

// HistoryLedger is the append-only trail of surfaced recommendations.
type HistoryLedger interface {
	SelectedMealIDsSince(userID uint, since time.Time) ([]uint, error)
	AppendChoice(userID, mealID, restaurantID uint) error
}

type PreferenceStore interface {
	// PreferenceFor returns nil (not an error) when the user has no
	// preference row yet.
	PreferenceFor(userID uint) (*models.UserPreference, error)
}

// InteractionStore reports which meals a user has ever favorited or
// reviewed, regardless of age.
type InteractionStore interface {
	InteractedMealIDs(userID uint) ([]uint, error)
}

type MealRecordStore interface {
	RecordsInRange(userID uint, from, to time.Time) ([]models.DailyMealRecord, error)
}

// ---------- GORM-backed implementations ----------

type GormCandidateStore struct{ db *gorm.DB }

func NewGormCandidateStore(db *gorm.DB) *GormCandidateStore { return &GormCandidateStore{db: db} }

func (s *GormCandidateStore) AvailableCandidates() ([]MealCandidate, error) {
	var rows []MealCandidate
	err := s.db.
		Table("meals").
		Select(`meals.id AS meal_id, meals.name, meals.description, meals.category,
			meals.price, meals.is_vegetarian, meals.is_spicy, meals.image_url,
			meals.created_at,
			restaurants.id AS restaurant_id, restaurants.name AS restaurant_name,
			restaurants.cuisine_type, restaurants.price_range, restaurants.city,
			restaurants.district, restaurants.rating,
			(SELECT COUNT(*) FROM favorites WHERE favorites.meal_id = meals.id) AS favorite_count`).
		Joins("JOIN restaurants ON restaurants.id = meals.restaurant_id").
		Where("meals.is_available = ? AND restaurants.is_active = ?", true, true).
		Where("meals.deleted_at IS NULL AND restaurants.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

type GormHistoryLedger struct{ db *gorm.DB }

func NewGormHistoryLedger(db *gorm.DB) *GormHistoryLedger { return &GormHistoryLedger{db: db} }

func (s *GormHistoryLedger) SelectedMealIDsSince(userID uint, since time.Time) ([]uint, error) {
	var ids []uint
	err := s.db.
		Model(&models.RecommendationHistory{}).
		Where("user_id = ? AND was_selected = ? AND recommended_at >= ?", userID, true, since).
		Distinct().
		Pluck("meal_id", &ids).Error
	return ids, err
}

func (s *GormHistoryLedger) AppendChoice(userID, mealID, restaurantID uint) error {
	entry := models.RecommendationHistory{
		UserID:        userID,
		MealID:        mealID,
		RestaurantID:  restaurantID,
		RecommendedAt: time.Now(),
		WasSelected:   true,
	}
	return s.db.Create(&entry).Error
}

type GormPreferenceStore struct{ db *gorm.DB }

func NewGormPreferenceStore(db *gorm.DB) *GormPreferenceStore { return &GormPreferenceStore{db: db} }

func (s *GormPreferenceStore) PreferenceFor(userID uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := s.db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

type GormInteractionStore struct{ db *gorm.DB }

func NewGormInteractionStore(db *gorm.DB) *GormInteractionStore { return &GormInteractionStore{db: db} }

func (s *GormInteractionStore) InteractedMealIDs(userID uint) ([]uint, error) {
	var favIDs []uint
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("meal_id", &favIDs).Error; err != nil {
		return nil, err
	}
	var reviewIDs []uint
	if err := s.db.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Pluck("meal_id", &reviewIDs).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint]struct{}, len(favIDs)+len(reviewIDs))
	out := make([]uint, 0, len(favIDs)+len(reviewIDs))
	for _, id := range append(favIDs, reviewIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

type GormMealRecordStore struct{ db *gorm.DB }

func NewGormMealRecordStore(db *gorm.DB) *GormMealRecordStore { return &GormMealRecordStore{db: db} }

func (s *GormMealRecordStore) RecordsInRange(userID uint, from, to time.Time) ([]models.DailyMealRecord, error) {
	var records []models.DailyMealRecord
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, meal_type ASC").
		Find(&records).Error
	return records, err
}
