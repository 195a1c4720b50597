package services

import (
	"fmt"
	"log"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
	"github.com/ethan-devlab/RMRS-Deploy/utils"

	"gorm.io/gorm"
)

// NotificationService keeps the reminder settings and delivery log, and
// dispatches events over whichever channels the user enabled.
type NotificationService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService // nil when SNS isn't configured
}

func NewNotificationService(db *gorm.DB, hub *RealtimeHub, push *PushService) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push}
}

func at(hour, minute int) *time.Time {
	t := time.Date(0, 1, 1, hour, minute, 0, 0, time.Local)
	return &t
}

// EnsureSettings guarantees the baseline reminder rows exist for the
// user and returns the full set.
func (s *NotificationService) EnsureSettings(userID uint) ([]models.NotificationSetting, error) {
	defaults := []models.NotificationSetting{
		{UserID: userID, ReminderType: models.ReminderBreakfast, ScheduledTime: at(8, 0), IsEnabled: true, Channel: models.ChannelPush},
		{UserID: userID, ReminderType: models.ReminderLunch, ScheduledTime: at(12, 30), IsEnabled: true, Channel: models.ChannelPush},
		{UserID: userID, ReminderType: models.ReminderDinner, ScheduledTime: at(18, 30), IsEnabled: true, Channel: models.ChannelPush},
		{UserID: userID, ReminderType: models.ReminderSnack, ScheduledTime: at(15, 30), IsEnabled: true, Channel: models.ChannelPush},
		{UserID: userID, ReminderType: models.ReminderRandom, IsEnabled: true, Channel: models.ChannelPush},
	}
	for i := range defaults {
		d := defaults[i]
		err := s.db.
			Where("user_id = ? AND reminder_type = ?", userID, d.ReminderType).
			FirstOrCreate(&defaults[i], d).Error
		if err != nil {
			return nil, err
		}
	}

	var settings []models.NotificationSetting
	err := s.db.
		Where("user_id = ?", userID).
		Order("reminder_type ASC").
		Find(&settings).Error
	return settings, err
}

// SchedulePreview renders the short schedule label shown next to each
// reminder toggle.
func SchedulePreview(setting models.NotificationSetting) string {
	if !setting.IsEnabled {
		return "Off"
	}
	if setting.ReminderType == models.ReminderRandom {
		return "Smart push"
	}
	if setting.ScheduledTime != nil {
		return setting.ScheduledTime.Format("15:04")
	}
	return "Not set"
}

// Notify writes a log row and dispatches it on the realtime feed plus
// the user's configured channels. Delivery failures are logged, never
// surfaced; the log row is the source of truth.
func (s *NotificationService) Notify(userID uint, title, body, typ string) (*models.NotificationLog, error) {
	entry := models.NotificationLog{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   typ,
		Status: models.NotificationSent,
		SentAt: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": entry,
		})
	}

	var setting models.NotificationSetting
	err := s.db.
		Where("user_id = ? AND reminder_type = ? AND is_enabled = ?", userID, models.ReminderRandom, true).
		First(&setting).Error
	if err == nil {
		switch setting.Channel {
		case models.ChannelPush:
			if s.push != nil {
				s.push.PushToUser(userID, title, body, map[string]string{"type": typ})
			}
		case models.ChannelEmail:
			var user models.User
			if err := s.db.First(&user, userID).Error; err == nil {
				if err := utils.SendNotificationEmail(user.Email, title, body); err != nil {
					log.Printf("notification email failed: %v", err)
				}
			}
		}
	}
	return &entry, nil
}

// MealLogged emits the progress notification created after a meal
// record is saved.
func (s *NotificationService) MealLogged(userID uint, record *models.DailyMealRecord) {
	title := fmt.Sprintf("Logged %s", record.MealType)
	body := fmt.Sprintf("%s · %.0f kcal", record.MealName, record.Calories)
	if _, err := s.Notify(userID, title, body, "meal_record"); err != nil {
		log.Printf("meal-logged notification failed: %v", err)
	}
}

func (s *NotificationService) List(userID uint, limit int) ([]models.NotificationLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []models.NotificationLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (s *NotificationService) MarkRead(userID, logID uint) error {
	now := time.Now()
	result := s.db.Model(&models.NotificationLog{}).
		Where("id = ? AND user_id = ?", logID, userID).
		Updates(map[string]any{"status": models.NotificationRead, "read_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSetting toggles or reschedules one reminder.
func (s *NotificationService) UpdateSetting(userID uint, reminderType string, enabled bool, channel string, scheduled *time.Time) (*models.NotificationSetting, error) {
	var setting models.NotificationSetting
	err := s.db.
		Where("user_id = ? AND reminder_type = ?", userID, reminderType).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	setting.IsEnabled = enabled
	if channel == models.ChannelPush || channel == models.ChannelEmail {
		setting.Channel = channel
	}
	if scheduled != nil {
		setting.ScheduledTime = scheduled
	}
	if err := s.db.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
