package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"size:50;uniqueIndex;not null"`
	Email    string `gorm:"size:100;uniqueIndex;not null"`
	Phone    string `gorm:"size:20"`
	Password string `gorm:"not null"`
	FullName string `gorm:"size:100"`
	// Password reset state. The stored password is never touched until
	// the code is redeemed.
	ResetToken    string `gorm:"size:64;index"`
	ResetTokenExp time.Time
}
