package services

import (
	"errors"

	"github.com/ethan-devlab/RMRS-Deploy/models"

	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// InteractionService owns favorites and reviews. Both feed back into
// recommendations: favorites drive popularity, reviews drive restaurant
// ratings, and either one permanently removes a meal from the
// new-experiences pool.
type InteractionService struct{ db *gorm.DB }

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

func (s *InteractionService) AddFavorite(userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.First(&meal, mealID).Error; err != nil {
		return err
	}
	fav := models.Favorite{UserID: userID, MealID: mealID}
	return s.db.
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		FirstOrCreate(&fav).Error
}

func (s *InteractionService) RemoveFavorite(userID, mealID uint) error {
	result := s.db.
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *InteractionService) ListFavorites(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Joins("JOIN favorites ON favorites.meal_id = meals.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&meals).Error
	return meals, err
}

// UpsertReview writes or replaces the user's review of a meal and
// refreshes the restaurant's average rating.
func (s *InteractionService) UpsertReview(userID, mealID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	var meal models.Meal
	if err := s.db.First(&meal, mealID).Error; err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:       userID,
		MealID:       mealID,
		RestaurantID: meal.RestaurantID,
		Rating:       rating,
		Comment:      comment,
	}
	err := s.db.
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		Assign(map[string]any{"rating": rating, "comment": comment, "restaurant_id": meal.RestaurantID}).
		FirstOrCreate(&review).Error
	if err != nil {
		return nil, err
	}

	if err := s.refreshRestaurantRating(meal.RestaurantID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *InteractionService) ListReviews(mealID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Where("meal_id = ?", mealID).
		Order("updated_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *InteractionService) refreshRestaurantRating(restaurantID uint) error {
	var avg float64
	err := s.db.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return err
	}
	return s.db.Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		Update("rating", avg).Error
}
