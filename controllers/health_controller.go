package controllers

import (
	"net/http"
	"strconv"

	"github.com/ethan-devlab/RMRS-Deploy/services"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Advisor *services.HealthAdvisor
	Intake  *services.IntakeAggregator
}

func NewHealthController(advisor *services.HealthAdvisor, intake *services.IntakeAggregator) *HealthController {
	return &HealthController{Advisor: advisor, Intake: intake}
}

// GetSummary returns the rolling-window health feedback. windowDays
// defaults to 7; anything non-positive falls back to the default too.
func (hc *HealthController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	windowDays := 7
	if raw := c.Query("windowDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "windowDays must be an integer"})
			return
		}
		windowDays = parsed
	}

	summary, err := hc.Advisor.BuildSummary(userID, windowDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetToday breaks today's intake down by meal type.
func (hc *HealthController) GetToday(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := hc.Intake.SummarizeToday(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetMonth totals the calendar month to date.
func (hc *HealthController) GetMonth(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	from, to := hc.Intake.MonthWindow()
	totals, err := hc.Intake.Summarize(userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
		"totals": totals,
	})
}
