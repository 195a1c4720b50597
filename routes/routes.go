package routes

import (
	"log"

	"github.com/ethan-devlab/RMRS-Deploy/config"
	"github.com/ethan-devlab/RMRS-Deploy/controllers"
	"github.com/ethan-devlab/RMRS-Deploy/middlewares"
	"github.com/ethan-devlab/RMRS-Deploy/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	db := config.DB

	candidates := services.NewGormCandidateStore(db)
	history := services.NewGormHistoryLedger(db)
	prefStore := services.NewGormPreferenceStore(db)
	interactionStore := services.NewGormInteractionStore(db)
	recordStore := services.NewGormMealRecordStore(db)

	cooldown := services.NewCooldownService(prefStore, history)
	engine := services.NewRecommendationEngine(candidates, cooldown, interactionStore, prefStore)

	intake := services.NewIntakeAggregator(recordStore)
	weekly := services.NewWeeklySummaryService(db, intake)
	advisor := services.NewHealthAdvisor(intake)

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(db)
	if err != nil {
		log.Printf("push delivery disabled: %v", err)
		push = nil
	}
	notifications := services.NewNotificationService(db, hub, push)
	records := services.NewMealRecordService(db, weekly, cooldown, notifications)

	prefService := services.NewPreferenceService(db)
	interactions := services.NewInteractionService(db)

	recCtl := controllers.NewRecommendationController(engine, cooldown, prefStore)
	healthCtl := controllers.NewHealthController(advisor, intake)
	recordCtl := controllers.NewMealRecordController(records, weekly)
	prefCtl := controllers.NewPreferenceController(prefService)
	interactionCtl := controllers.NewInteractionController(interactions)
	notifyCtl := controllers.NewNotificationController(notifications)
	deviceCtl := controllers.NewDeviceController(push)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Public browsing
	r.GET("/restaurants", controllers.SearchRestaurants)
	r.GET("/restaurants/:id", controllers.GetRestaurant)
	r.GET("/meals", controllers.SearchMeals)
	r.GET("/meals/:mealId/reviews", interactionCtl.ListReviews)

	// Everything below requires a valid token.
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/recommendations", recCtl.GetRecommendations)
		api.POST("/recommendations", recCtl.PostRecommendations)
		api.POST("/recommendations/choice", recCtl.RecordChoice)

		api.GET("/preferences", prefCtl.Get)
		api.PUT("/preferences", prefCtl.Update)

		api.POST("/records", recordCtl.Log)
		api.GET("/records", recordCtl.List)
		api.GET("/records/weekly-summary", recordCtl.WeeklySummary)
		api.DELETE("/records/:id", recordCtl.Delete)

		api.GET("/health/summary", healthCtl.GetSummary)
		api.GET("/health/today", healthCtl.GetToday)
		api.GET("/health/month", healthCtl.GetMonth)

		api.GET("/favorites", interactionCtl.ListFavorites)
		api.POST("/meals/:mealId/favorite", interactionCtl.AddFavorite)
		api.DELETE("/meals/:mealId/favorite", interactionCtl.RemoveFavorite)
		api.POST("/meals/:mealId/reviews", interactionCtl.SubmitReview)

		api.GET("/notifications", notifyCtl.List)
		api.POST("/notifications/:id/read", notifyCtl.MarkRead)
		api.GET("/notifications/settings", notifyCtl.GetSettings)
		api.PUT("/notifications/settings", notifyCtl.UpdateSetting)
		api.POST("/devices", deviceCtl.RegisterDevice)
		api.GET("/ws/notifications", realtimeCtl.NotificationsWS)

		// Merchant endpoints
		api.POST("/meals", controllers.CreateMeal)
		api.POST("/meals/:mealId/image", controllers.UploadMealImage)
		api.PUT("/meals/:mealId/availability", controllers.SetMealAvailability)
	}

	return r
}
