package controllers

import (
	"net/http"
	"strconv"

	"github.com/ethan-devlab/RMRS-Deploy/config"
	"github.com/ethan-devlab/RMRS-Deploy/models"
	"github.com/ethan-devlab/RMRS-Deploy/utils"

	"github.com/gin-gonic/gin"
)

// CreateMeal registers a dish for a restaurant. An inline base64 image
// is uploaded to S3 and the resulting URL stored on the row.
func CreateMeal(c *gin.Context) {
	var body struct {
		RestaurantID uint    `json:"restaurantId" binding:"required"`
		Name         string  `json:"name" binding:"required"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		Category     string  `json:"category"`
		IsVegetarian bool    `json:"isVegetarian"`
		IsSpicy      *bool   `json:"isSpicy"`
		ImageBase64  string  `json:"imageBase64"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, body.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}

	meal := models.Meal{
		RestaurantID: body.RestaurantID,
		Name:         body.Name,
		Description:  body.Description,
		Price:        body.Price,
		Category:     body.Category,
		IsVegetarian: body.IsVegetarian,
		IsSpicy:      body.IsSpicy,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if body.ImageBase64 != "" {
		url, err := utils.UploadMealImage(body.ImageBase64, meal.ID)
		if err != nil {
			c.JSON(http.StatusCreated, gin.H{"meal": meal, "imageError": err.Error()})
			return
		}
		meal.ImageURL = url
		if err := config.DB.Model(&meal).Update("image_url", url).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// UploadMealImage replaces the image of an existing meal.
func UploadMealImage(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("mealId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var body struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var meal models.Meal
	if err := config.DB.First(&meal, uint(mealID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}

	url, err := utils.UploadMealImage(body.ImageBase64, meal.ID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Model(&meal).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// SetMealAvailability toggles a meal on or off the menu.
func SetMealAvailability(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("mealId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var body struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Model(&models.Meal{}).
		Where("id = ?", uint(mealID)).
		Update("is_available", body.IsAvailable)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAvailable": body.IsAvailable})
}
