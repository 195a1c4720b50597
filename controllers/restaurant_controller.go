package controllers

import (
	"net/http"
	"strconv"

	"github.com/ethan-devlab/RMRS-Deploy/config"
	"github.com/ethan-devlab/RMRS-Deploy/models"

	"github.com/gin-gonic/gin"
)

// SearchRestaurants filters active restaurants by free-text query,
// cuisine, price tier and location. All filters are optional.
func SearchRestaurants(c *gin.Context) {
	q := config.DB.Model(&models.Restaurant{}).Where("is_active = ?", true)

	if term := c.Query("q"); term != "" {
		like := "%" + term + "%"
		q = q.Where("name ILIKE ? OR cuisine_type ILIKE ?", like, like)
	}
	if cuisine := c.Query("cuisineType"); cuisine != "" {
		q = q.Where("cuisine_type ILIKE ?", "%"+cuisine+"%")
	}
	if price := c.Query("priceRange"); price != "" {
		if !models.ValidPriceRange(price) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"formErrors": gin.H{"priceRange": []string{"must be one of low, medium, high"}}})
			return
		}
		q = q.Where("price_range = ?", price)
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("city ILIKE ?", "%"+city+"%")
	}
	if district := c.Query("district"); district != "" {
		q = q.Where("district ILIKE ?", "%"+district+"%")
	}

	var restaurants []models.Restaurant
	if err := q.Order("rating DESC, name ASC").Limit(50).Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurant returns one restaurant with its available meals.
func GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var restaurant models.Restaurant
	err = config.DB.
		Preload("Meals", "is_available = ?", true).
		First(&restaurant, uint(id)).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// SearchMeals filters available meals by name, category and vegetarian
// flag.
func SearchMeals(c *gin.Context) {
	q := config.DB.Model(&models.Meal{}).Where("is_available = ?", true)

	if term := c.Query("q"); term != "" {
		like := "%" + term + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}
	if c.Query("vegetarian") == "true" {
		q = q.Where("is_vegetarian = ?", true)
	}

	var meals []models.Meal
	if err := q.Order("name ASC").Limit(50).Find(&meals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}
