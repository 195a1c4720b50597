package services

import (
	"testing"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

func newTestAdvisor(records []models.DailyMealRecord) *HealthAdvisor {
	agg := NewIntakeAggregator(&stubRecords{records: records})
	agg.now = func() time.Time { return day(2026, time.August, 26).Add(20 * time.Hour) }
	return NewHealthAdvisor(agg)
}

func TestBuildSummaryNoData(t *testing.T) {
	advisor := newTestAdvisor(nil)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HasData {
		t.Fatalf("no records should yield HasData=false")
	}
	if got.FocusTip.ID != TipOnboarding {
		t.Fatalf("expected onboarding tip, got %q", got.FocusTip.ID)
	}
	if len(got.LifestyleTips) == 0 {
		t.Fatalf("generic lifestyle tips should still be present")
	}

	// Identical inputs, identical output.
	again, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.FocusTip != got.FocusTip || again.StatusLabel != got.StatusLabel {
		t.Fatalf("summary is not deterministic")
	}
}

// Five meals over two days: 1800 kcal/day with 15% protein and 60% carb.
// The carb excess (0.05) outweighs the protein shortfall (0.03).
func TestBuildSummaryCarbHighWins(t *testing.T) {
	d1 := day(2026, time.August, 24)
	d2 := day(2026, time.August, 25)
	records := []models.DailyMealRecord{
		record(1, d1, models.MealTypeBreakfast, 720, 27, 108, 20),
		record(1, d1, models.MealTypeLunch, 720, 27, 108, 20),
		record(1, d1, models.MealTypeDinner, 720, 27, 108, 20),
		record(1, d2, models.MealTypeBreakfast, 720, 27, 108, 20),
		record(1, d2, models.MealTypeLunch, 720, 27, 108, 20),
	}
	advisor := newTestAdvisor(records)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.HasData {
		t.Fatalf("expected data")
	}
	if got.Averages.Calories != 1800 {
		t.Fatalf("wrong average calories: %v", got.Averages.Calories)
	}
	if got.Averages.MealsPerDay != 2.5 {
		t.Fatalf("wrong meals per day: %v", got.Averages.MealsPerDay)
	}
	if got.StatusLabel != "Healthy" {
		t.Fatalf("1800 kcal should be in the healthy band, got %q", got.StatusLabel)
	}
	if got.FocusTip.ID != TipCarbHigh {
		t.Fatalf("carb excess should win the focus tip, got %q", got.FocusTip.ID)
	}

	wantTags := []string{"Protein low", "Carb high", "Logging could improve"}
	if len(got.Tags) != len(wantTags) {
		t.Fatalf("wrong tag count: %v", got.Tags)
	}
	for i, w := range wantTags {
		if got.Tags[i] != w {
			t.Fatalf("tag %d: got %q, want %q", i, got.Tags[i], w)
		}
	}
}

// Equal deviations on protein and carb: the earlier concern wins.
func TestBuildSummaryTieFallsToProtein(t *testing.T) {
	d1 := day(2026, time.August, 24)
	d2 := day(2026, time.August, 25)
	// 13% protein (deviation 0.05) and 60% carb (deviation 0.05).
	records := []models.DailyMealRecord{
		record(1, d1, models.MealTypeBreakfast, 1800, 58.5, 270, 54),
		record(1, d2, models.MealTypeBreakfast, 1800, 58.5, 270, 54),
	}
	advisor := newTestAdvisor(records)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FocusTip.ID != TipProteinLow {
		t.Fatalf("tied deviations should fall to protein, got %q", got.FocusTip.ID)
	}
}

func TestBuildSummaryCalorieLow(t *testing.T) {
	d1 := day(2026, time.August, 25)
	// 900 kcal/day with balanced macros: the relative calorie shortfall
	// (~0.31) dominates.
	records := []models.DailyMealRecord{
		record(1, d1, models.MealTypeBreakfast, 450, 24.75, 56.25, 14),
		record(1, d1, models.MealTypeLunch, 450, 24.75, 56.25, 14),
	}
	advisor := newTestAdvisor(records)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StatusLabel != "Intake slightly low" {
		t.Fatalf("wrong status: %q", got.StatusLabel)
	}
	if got.FocusTip.ID != TipCalorieLow {
		t.Fatalf("expected calorie tip, got %q", got.FocusTip.ID)
	}
}

func TestBuildSummaryLoggingFallback(t *testing.T) {
	d1 := day(2026, time.August, 25)
	// Balanced ratios, healthy calories, but only two meals logged.
	records := []models.DailyMealRecord{
		record(1, d1, models.MealTypeBreakfast, 900, 49.5, 112.5, 28),
		record(1, d1, models.MealTypeDinner, 900, 49.5, 112.5, 28),
	}
	advisor := newTestAdvisor(records)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FocusTip.ID != TipLoggingLow {
		t.Fatalf("no nutrient concern fired; expected logging tip, got %q", got.FocusTip.ID)
	}
	if got.LifestyleTips[0] != "Try to log every meal, including snacks." {
		t.Fatalf("logging reminder should lead the lifestyle tips, got %q", got.LifestyleTips[0])
	}
}

func TestBuildSummaryMaintain(t *testing.T) {
	d1 := day(2026, time.August, 25)
	records := []models.DailyMealRecord{
		record(1, d1, models.MealTypeBreakfast, 600, 33, 75, 18.67),
		record(1, d1, models.MealTypeLunch, 600, 33, 75, 18.67),
		record(1, d1, models.MealTypeDinner, 600, 33, 75, 18.67),
	}
	advisor := newTestAdvisor(records)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FocusTip.ID != TipMaintain {
		t.Fatalf("balanced intake should get the maintain tip, got %q", got.FocusTip.ID)
	}
	if got.StatusLabel != "Healthy" {
		t.Fatalf("wrong status: %q", got.StatusLabel)
	}
}

func TestBuildSummaryOvereatingCaution(t *testing.T) {
	d1 := day(2026, time.August, 25)
	records := []models.DailyMealRecord{
		record(1, d1, models.MealTypeBreakfast, 850, 46, 106, 26),
		record(1, d1, models.MealTypeLunch, 850, 46, 106, 26),
		record(1, d1, models.MealTypeDinner, 850, 46, 106, 26),
	}
	advisor := newTestAdvisor(records)

	got, err := advisor.BuildSummary(1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StatusLabel != "Intake slightly high" {
		t.Fatalf("2550 kcal should read high, got %q", got.StatusLabel)
	}
	last := got.LifestyleTips[len(got.LifestyleTips)-1]
	if last != "Watch portion sizes at dinner to ease your calorie total." {
		t.Fatalf("overeating caution should close the lifestyle tips, got %q", last)
	}
}
