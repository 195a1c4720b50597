package services

import (
	"testing"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func record(userID uint, date time.Time, mealType string, cal, protein, carb, fat float64) models.DailyMealRecord {
	return models.DailyMealRecord{
		UserID:       userID,
		Date:         date,
		MealType:     mealType,
		MealName:     mealType + " " + date.Format("01-02"),
		Calories:     cal,
		ProteinGrams: protein,
		CarbGrams:    carb,
		FatGrams:     fat,
	}
}

func TestWeekBoundsMondayStart(t *testing.T) {
	// Wednesday.
	start, end := WeekBounds(day(2026, time.August, 26))
	if !start.Equal(day(2026, time.August, 24)) {
		t.Fatalf("wrong week start: %v", start)
	}
	if !end.Equal(day(2026, time.August, 31)) {
		t.Fatalf("wrong week end: %v", end)
	}

	// Sunday belongs to the week that started the previous Monday.
	start, end = WeekBounds(day(2026, time.August, 30))
	if !start.Equal(day(2026, time.August, 24)) {
		t.Fatalf("sunday should map to the previous monday, got %v", start)
	}
	if !end.Equal(day(2026, time.August, 31)) {
		t.Fatalf("wrong week end for sunday: %v", end)
	}

	// Monday is its own week start.
	start, _ = WeekBounds(day(2026, time.August, 24))
	if !start.Equal(day(2026, time.August, 24)) {
		t.Fatalf("monday should be its own week start, got %v", start)
	}
}

func TestRollingWindow(t *testing.T) {
	agg := NewIntakeAggregator(&stubRecords{})
	now := day(2026, time.August, 26).Add(15 * time.Hour)
	agg.now = func() time.Time { return now }

	from, to := agg.RollingWindow(7)
	if !from.Equal(day(2026, time.August, 20)) {
		t.Fatalf("7-day window should start 6 days back, got %v", from)
	}
	if to.Before(now) {
		t.Fatalf("window must include the rest of today, got %v", to)
	}
}

func TestSummarizeTotalsAndActiveDays(t *testing.T) {
	records := &stubRecords{records: []models.DailyMealRecord{
		record(1, day(2026, time.August, 24), models.MealTypeBreakfast, 400, 20, 50, 10),
		record(1, day(2026, time.August, 24), models.MealTypeLunch, 700, 35, 80, 25),
		record(1, day(2026, time.August, 26), models.MealTypeDinner, 600, 30, 70, 20),
		record(2, day(2026, time.August, 24), models.MealTypeLunch, 999, 1, 1, 1),
	}}
	agg := NewIntakeAggregator(records)

	got, err := agg.Summarize(1, day(2026, time.August, 24), dayEnd(day(2026, time.August, 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCalories != 1700 {
		t.Fatalf("wrong calories: %v", got.TotalCalories)
	}
	if got.TotalProtein != 85 || got.TotalCarb != 200 || got.TotalFat != 55 {
		t.Fatalf("wrong macros: %+v", got)
	}
	if got.MealCount != 3 {
		t.Fatalf("wrong meal count: %d", got.MealCount)
	}
	if got.ActiveDayCount != 2 {
		t.Fatalf("two distinct dates logged, got %d", got.ActiveDayCount)
	}
}

func TestSummarizeEmptyWindowFloorsActiveDays(t *testing.T) {
	agg := NewIntakeAggregator(&stubRecords{})

	got, err := agg.Summarize(1, day(2026, time.August, 24), dayEnd(day(2026, time.August, 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MealCount != 0 {
		t.Fatalf("expected no meals, got %d", got.MealCount)
	}
	if got.ActiveDayCount != 1 {
		t.Fatalf("active days must floor at 1, got %d", got.ActiveDayCount)
	}
}

func TestSummarizeTodayByMealType(t *testing.T) {
	today := day(2026, time.August, 26)
	records := &stubRecords{records: []models.DailyMealRecord{
		record(1, today, models.MealTypeBreakfast, 400, 20, 50, 10),
		record(1, today, models.MealTypeLunch, 700, 35, 80, 25),
		record(1, day(2026, time.August, 25), models.MealTypeDinner, 600, 30, 70, 20),
	}}
	agg := NewIntakeAggregator(records)
	agg.now = func() time.Time { return today.Add(18 * time.Hour) }

	got, err := agg.SummarizeToday(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCalories != 1100 {
		t.Fatalf("yesterday's dinner leaked into today: %v", got.TotalCalories)
	}
	if got.ByMealType[models.MealTypeBreakfast].Calories != 400 {
		t.Fatalf("wrong breakfast bucket: %+v", got.ByMealType)
	}
	if got.ByMealType[models.MealTypeLunch].Protein != 35 {
		t.Fatalf("wrong lunch bucket: %+v", got.ByMealType)
	}
}
