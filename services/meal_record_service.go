package services

import (
	"errors"
	"log"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"

	"gorm.io/gorm"
)

var ErrDuplicateRecord = errors.New("a record with this name already exists for this week")

type MealRecordInput struct {
	Date         string  `json:"date"` // YYYY-MM-DD, empty means today
	MealType     string  `json:"mealType"`
	MealName     string  `json:"mealName"`
	SourceMealID *uint   `json:"sourceMealId"`
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"proteinGrams"`
	CarbGrams    float64 `json:"carbGrams"`
	FatGrams     float64 `json:"fatGrams"`
	MealNotes    string  `json:"mealNotes"`
}

// MealRecordService owns the intake log. Logging a record is the one
// user action with side effects: it refreshes the weekly summary,
// starts the cooldown for the source meal and emits a notification.
type MealRecordService struct {
	db       *gorm.DB
	weekly   *WeeklySummaryService
	cooldown *CooldownService
	notify   *NotificationService
}

func NewMealRecordService(db *gorm.DB, weekly *WeeklySummaryService, cooldown *CooldownService, notify *NotificationService) *MealRecordService {
	return &MealRecordService{db: db, weekly: weekly, cooldown: cooldown, notify: notify}
}

func (s *MealRecordService) Validate(in MealRecordInput) map[string][]string {
	errs := map[string][]string{}
	if !models.ValidMealType(in.MealType) {
		errs["mealType"] = append(errs["mealType"], "must be breakfast, lunch, dinner or snack")
	}
	if in.MealName == "" {
		errs["mealName"] = append(errs["mealName"], "is required")
	}
	if in.Calories < 0 || in.ProteinGrams < 0 || in.CarbGrams < 0 || in.FatGrams < 0 {
		errs["nutrition"] = append(errs["nutrition"], "values cannot be negative")
	}
	if in.Date != "" {
		if _, err := time.ParseInLocation("2006-01-02", in.Date, time.Local); err != nil {
			errs["date"] = append(errs["date"], "must be YYYY-MM-DD")
		}
	}
	return errs
}

func (s *MealRecordService) Log(userID uint, in MealRecordInput) (*models.DailyMealRecord, error) {
	date := dayStart(time.Now())
	if in.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
		if err != nil {
			return nil, err
		}
		date = dayStart(parsed)
	}

	// One record per name per calendar week.
	weekStart, weekEnd := WeekBounds(date)
	var dup int64
	err := s.db.Model(&models.DailyMealRecord{}).
		Where("user_id = ? AND meal_name = ? AND date >= ? AND date < ?", userID, in.MealName, weekStart, weekEnd).
		Count(&dup).Error
	if err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, ErrDuplicateRecord
	}

	record := models.DailyMealRecord{
		UserID:       userID,
		Date:         date,
		MealType:     in.MealType,
		MealName:     in.MealName,
		SourceMealID: in.SourceMealID,
		Calories:     in.Calories,
		ProteinGrams: in.ProteinGrams,
		CarbGrams:    in.CarbGrams,
		FatGrams:     in.FatGrams,
		MealNotes:    in.MealNotes,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	if _, err := s.weekly.Recalculate(userID, date); err != nil {
		log.Printf("weekly summary recalculation failed: %v", err)
	}

	// Picking a recommended meal locks in its cooldown.
	if in.SourceMealID != nil && *in.SourceMealID != 0 {
		var meal models.Meal
		if err := s.db.First(&meal, *in.SourceMealID).Error; err == nil {
			if err := s.cooldown.RecordChoice(userID, meal.ID, meal.RestaurantID); err != nil {
				log.Printf("recording meal choice failed: %v", err)
			}
		}
	}

	if s.notify != nil {
		s.notify.MealLogged(userID, &record)
	}
	return &record, nil
}

func (s *MealRecordService) ListRange(userID uint, from, to time.Time) ([]models.DailyMealRecord, error) {
	var records []models.DailyMealRecord
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, dayStart(from), dayEnd(to)).
		Order("date DESC, meal_type ASC").
		Find(&records).Error
	return records, err
}

func (s *MealRecordService) Delete(userID, recordID uint) error {
	result := s.db.
		Where("id = ? AND user_id = ?", recordID, userID).
		Delete(&models.DailyMealRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
