package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

func (nc *NotificationController) GetSettings(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	settings, err := nc.Notifications.EnsureSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type settingView struct {
		ReminderType string `json:"reminderType"`
		IsEnabled    bool   `json:"isEnabled"`
		Channel      string `json:"channel"`
		Schedule     string `json:"schedule"`
	}
	views := make([]settingView, 0, len(settings))
	for _, s := range settings {
		views = append(views, settingView{
			ReminderType: s.ReminderType,
			IsEnabled:    s.IsEnabled,
			Channel:      s.Channel,
			Schedule:     services.SchedulePreview(s),
		})
	}
	c.JSON(http.StatusOK, gin.H{"settings": views})
}

func (nc *NotificationController) UpdateSetting(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		ReminderType  string `json:"reminderType" binding:"required"`
		IsEnabled     bool   `json:"isEnabled"`
		Channel       string `json:"channel"`
		ScheduledTime string `json:"scheduledTime"` // HH:MM, optional
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var scheduled *time.Time
	if body.ScheduledTime != "" {
		parsed, err := time.ParseInLocation("15:04", body.ScheduledTime, time.Local)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"formErrors": gin.H{"scheduledTime": []string{"must be HH:MM"}}})
			return
		}
		scheduled = &parsed
	}

	setting, err := nc.Notifications.UpdateSetting(userID, body.ReminderType, body.IsEnabled, body.Channel, scheduled)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting, "schedule": services.SchedulePreview(*setting)})
}

func (nc *NotificationController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	logs, err := nc.Notifications.List(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": logs})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	logID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := nc.Notifications.MarkRead(userID, uint(logID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
