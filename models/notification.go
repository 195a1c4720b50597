package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReminderBreakfast = "breakfast"
	ReminderLunch     = "lunch"
	ReminderDinner    = "dinner"
	ReminderSnack     = "snack"
	ReminderRandom    = "random"
)

const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

const (
	NotificationSent = "sent"
	NotificationRead = "read"
)

type NotificationSetting struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null;uniqueIndex:idx_notify_user_type"`
	ReminderType  string `gorm:"size:20;not null;uniqueIndex:idx_notify_user_type"`
	ScheduledTime *time.Time
	IsEnabled     bool   `gorm:"default:true"`
	Channel       string `gorm:"size:10;default:push"`
}

type NotificationLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Title     string `gorm:"size:120"`
	Body      string `gorm:"type:text"`
	Type      string `gorm:"size:20"`
	Status    string `gorm:"size:10;default:sent;index"`
	SentAt    time.Time `gorm:"autoCreateTime"`
	ReadAt    *time.Time
}
