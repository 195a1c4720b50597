package controllers

import (
	"net/http"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/config"
	"github.com/ethan-devlab/RMRS-Deploy/models"
	"github.com/ethan-devlab/RMRS-Deploy/services"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Engine   *services.RecommendationEngine
	Cooldown *services.CooldownService
	Prefs    services.PreferenceStore
}

func NewRecommendationController(
	engine *services.RecommendationEngine,
	cooldown *services.CooldownService,
	prefs services.PreferenceStore,
) *RecommendationController {
	return &RecommendationController{Engine: engine, Cooldown: cooldown, Prefs: prefs}
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

type recommendationResponse struct {
	Primary            services.PrimaryResult `json:"primary"`
	Sections           []services.Section     `json:"sections"`
	PreferenceSnapshot string                 `json:"preferenceSnapshot"`
	CooldownDays       int                    `json:"cooldownDays"`
}

func (rc *RecommendationController) respond(c *gin.Context, userID uint, primary services.PrimaryResult) {
	used := make(map[uint]struct{}, len(primary.Cards))
	for _, card := range primary.Cards {
		used[card.MealID] = struct{}{}
	}
	sections, err := rc.Engine.BuildSections(userID, used)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pref, err := rc.Prefs.PreferenceFor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recommendationResponse{
		Primary:            primary,
		Sections:           sections,
		PreferenceSnapshot: services.PreferenceSnapshot(pref),
		CooldownDays:       rc.Cooldown.ResolveCooldownDays(userID),
	})
}

// GetRecommendations is the default landing query: preference-driven
// primary result plus the themed sections.
func (rc *RecommendationController) GetRecommendations(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	primary, err := rc.Engine.PrimaryRecommendations(userID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rc.respond(c, userID, primary)
}

type recommendationRequest struct {
	Action  string               `json:"action"` // "", "use_preferences", "surprise"
	Filters services.FilterInput `json:"filters"`
	Seed    *int64               `json:"seed"`
}

// PostRecommendations handles the filter form: explicit ad-hoc filters,
// an explicit "use my preferences" action, or surprise mode.
func (rc *RecommendationController) PostRecommendations(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "use_preferences":
		primary, err := rc.Engine.PrimaryRecommendations(userID, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rc.respond(c, userID, primary)

	case "surprise":
		filters, errs := services.ValidateFilters(req.Filters)
		if errs != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"formErrors": errs})
			return
		}
		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		meals, err := rc.Engine.SurpriseMeals(userID, filters.Limit, seed)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		primary := services.PrimaryResult{Reason: "Surprise picks"}
		if len(meals) == 0 {
			meals, err = rc.Engine.PopularMeals(userID, filters.Limit)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			primary.FallbackUsed = true
			primary.Reason = "Popular picks"
			primary.Alert = "Nothing to surprise you with right now, so here are some popular picks."
		}
		for _, m := range meals {
			primary.Cards = append(primary.Cards, services.RecommendationCard{MealCandidate: m, Reason: primary.Reason})
		}
		rc.respond(c, userID, primary)

	default:
		filters, errs := services.ValidateFilters(req.Filters)
		if errs != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"formErrors": errs})
			return
		}
		primary, err := rc.Engine.PrimaryRecommendations(userID, &filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rc.respond(c, userID, primary)
	}
}

// RecordChoice marks a recommendation as actually picked, starting its
// cooldown window.
func (rc *RecommendationController) RecordChoice(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		MealID uint `json:"mealId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var meal models.Meal
	if err := config.DB.First(&meal, body.MealID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}

	if err := rc.Cooldown.RecordChoice(userID, meal.ID, meal.RestaurantID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recorded": true, "cooldownDays": rc.Cooldown.ResolveCooldownDays(userID)})
}
