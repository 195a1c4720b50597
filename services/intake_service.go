package services

import (
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"

	"gorm.io/gorm"
)

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// WeekBounds returns the Monday-start boundaries of the week containing
// t: start inclusive, end exclusive.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	start := dayStart(t).AddDate(0, 0, -(wd - 1))
	return start, start.AddDate(0, 0, 7)
}

type IntakeSummary struct {
	TotalCalories  float64 `json:"totalCalories"`
	TotalProtein   float64 `json:"totalProtein"`
	TotalCarb      float64 `json:"totalCarb"`
	TotalFat       float64 `json:"totalFat"`
	MealCount      int     `json:"mealCount"`
	ActiveDayCount int     `json:"activeDayCount"`
}

type MealTypeStats struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type TodayStats struct {
	TotalCalories float64                  `json:"totalCalories"`
	TotalProtein  float64                  `json:"totalProtein"`
	TotalCarb     float64                  `json:"totalCarb"`
	TotalFat      float64                  `json:"totalFat"`
	ByMealType    map[string]MealTypeStats `json:"byMealType"`
}

// IntakeAggregator sums logged meal records over date windows. It never
// writes; persistence of derived summaries lives elsewhere.
type IntakeAggregator struct {
	records MealRecordStore
	now     func() time.Time
}

func NewIntakeAggregator(records MealRecordStore) *IntakeAggregator {
	return &IntakeAggregator{records: records, now: time.Now}
}

// RollingWindow is [today-N+1, today], inclusive on both ends.
func (a *IntakeAggregator) RollingWindow(days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	today := a.now()
	return dayStart(today.AddDate(0, 0, -(days - 1))), dayEnd(today)
}

// MonthWindow is [first of the current month, today].
func (a *IntakeAggregator) MonthWindow() (time.Time, time.Time) {
	today := a.now()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	return first, dayEnd(today)
}

// Summarize totals the user's records inside the window.
// ActiveDayCount is the number of distinct dates with at least one
// record, floored at 1 so downstream averages never divide by zero.
func (a *IntakeAggregator) Summarize(userID uint, from, to time.Time) (IntakeSummary, error) {
	records, err := a.records.RecordsInRange(userID, from, to)
	if err != nil {
		return IntakeSummary{}, err
	}

	var out IntakeSummary
	days := map[string]struct{}{}
	for _, r := range records {
		out.TotalCalories += r.Calories
		out.TotalProtein += r.ProteinGrams
		out.TotalCarb += r.CarbGrams
		out.TotalFat += r.FatGrams
		out.MealCount++
		days[r.Date.Format("2006-01-02")] = struct{}{}
	}
	out.ActiveDayCount = len(days)
	if out.ActiveDayCount < 1 {
		out.ActiveDayCount = 1
	}
	return out, nil
}

// SummarizeToday breaks today's intake down by meal type for the
// dashboard cards.
func (a *IntakeAggregator) SummarizeToday(userID uint) (TodayStats, error) {
	today := a.now()
	records, err := a.records.RecordsInRange(userID, dayStart(today), dayEnd(today))
	if err != nil {
		return TodayStats{}, err
	}

	out := TodayStats{ByMealType: map[string]MealTypeStats{}}
	for _, r := range records {
		out.TotalCalories += r.Calories
		out.TotalProtein += r.ProteinGrams
		out.TotalCarb += r.CarbGrams
		out.TotalFat += r.FatGrams
		stats := out.ByMealType[r.MealType]
		stats.Calories += r.Calories
		stats.Protein += r.ProteinGrams
		out.ByMealType[r.MealType] = stats
	}
	return out, nil
}

// WeeklySummaryService persists Monday-start weekly totals.
type WeeklySummaryService struct {
	db  *gorm.DB
	agg *IntakeAggregator
}

func NewWeeklySummaryService(db *gorm.DB, agg *IntakeAggregator) *WeeklySummaryService {
	return &WeeklySummaryService{db: db, agg: agg}
}

// Recalculate rebuilds the summary row for the week containing ref.
func (s *WeeklySummaryService) Recalculate(userID uint, ref time.Time) (*models.WeeklyIntakeSummary, error) {
	weekStart, weekEnd := WeekBounds(ref)
	totals, err := s.agg.Summarize(userID, weekStart, weekEnd.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	summary := models.WeeklyIntakeSummary{
		UserID:        userID,
		WeekStart:     weekStart,
		TotalCalories: totals.TotalCalories,
		TotalProtein:  totals.TotalProtein,
		TotalCarbs:    totals.TotalCarb,
		TotalFat:      totals.TotalFat,
		MealCount:     totals.MealCount,
	}
	err = s.db.
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Assign(summary).
		FirstOrCreate(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
