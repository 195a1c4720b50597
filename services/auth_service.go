package services

import (
	"errors"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/config"
	"github.com/ethan-devlab/RMRS-Deploy/models"
	"github.com/ethan-devlab/RMRS-Deploy/utils"
)

const resetTokenTTL = 15 * time.Minute

var ErrResetTokenInvalid = errors.New("invalid or expired reset code")

func RegisterUser(username, email, phone, password, fullName string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		Password: hashed,
		FullName: fullName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser accepts either the username or the email as the
// login identifier and returns a signed JWT on success.
func AuthenticateUser(identifier, password string) (string, error) {
	var user models.User
	err := config.DB.
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		return "", errors.New("user not found")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Username)
}

// ResetTokenUsable reports whether the submitted code redeems the
// user's pending reset. An empty stored token never matches.
func ResetTokenUsable(user *models.User, token string, now time.Time) bool {
	if user == nil || user.ResetToken == "" || token == "" {
		return false
	}
	if user.ResetToken != token {
		return false
	}
	return !now.After(user.ResetTokenExp)
}

// StartPasswordReset stores a short-lived code on the account and mails
// it. The stored password stays valid throughout.
func StartPasswordReset(email string) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}

	user.ResetToken = utils.GenerateRandomToken(8)
	user.ResetTokenExp = time.Now().Add(resetTokenTTL)
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(user.Email, user.ResetToken)
}

// CompletePasswordReset redeems a code for a new password and clears
// the token so it cannot be replayed.
func CompletePasswordReset(token, newPassword string) error {
	var user models.User
	if err := config.DB.Where("reset_token = ?", token).First(&user).Error; err != nil {
		return ErrResetTokenInvalid
	}
	if !ResetTokenUsable(&user, token, time.Now()) {
		return ErrResetTokenInvalid
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return config.DB.Save(&user).Error
}
