package services

import (
	"fmt"
	"math"
)

// Thresholds for the weekly feedback. Ratios are shares of macro
// calories (Atwater factors: 4 kcal/g protein and carb, 9 kcal/g fat).
const (
	calorieLowThreshold  = 1300.0
	calorieHighThreshold = 2300.0
	proteinLowRatio      = 0.18
	proteinHighRatio     = 0.28
	carbHighRatio        = 0.55
	carbLowRatio         = 0.45
	regularMealsPerDay   = 3.0
)

const (
	TipOnboarding = "onboarding"
	TipProteinLow = "protein_low"
	TipCarbHigh   = "carb_high"
	TipCalorieLow = "calorie_low"
	TipLoggingLow = "logging_low"
	TipMaintain   = "maintain_balance"
)

type FocusTip struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type HealthAverages struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carb         float64 `json:"carb"`
	Fat          float64 `json:"fat"`
	MealsPerDay  float64 `json:"mealsPerDay"`
	ProteinRatio float64 `json:"proteinRatio"`
	CarbRatio    float64 `json:"carbRatio"`
	FatRatio     float64 `json:"fatRatio"`
}

type NutritionSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

type HealthSummary struct {
	HasData           bool               `json:"hasData"`
	RangeLabel        string             `json:"rangeLabel"`
	StatusLabel       string             `json:"statusLabel"`
	StatusTone        string             `json:"statusTone"`
	Tags              []string           `json:"tags"`
	FocusTip          FocusTip           `json:"focusTip"`
	NutritionSections []NutritionSection `json:"nutritionSections"`
	LifestyleTips     []string           `json:"lifestyleTips"`
	Averages          HealthAverages     `json:"averages"`
}

// HealthAdvisor turns a window of logged meals into a deterministic
// summary: status bucket, macro tags and one prioritized focus tip.
// Identical inputs always produce identical output.
type HealthAdvisor struct {
	intake *IntakeAggregator
}

func NewHealthAdvisor(intake *IntakeAggregator) *HealthAdvisor {
	return &HealthAdvisor{intake: intake}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (h *HealthAdvisor) BuildSummary(userID uint, windowDays int) (HealthSummary, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	from, to := h.intake.RollingWindow(windowDays)
	totals, err := h.intake.Summarize(userID, from, to)
	if err != nil {
		return HealthSummary{}, err
	}

	rangeLabel := fmt.Sprintf("Last %d days", windowDays)
	if totals.MealCount == 0 {
		return h.noDataSummary(rangeLabel), nil
	}

	days := float64(totals.ActiveDayCount)
	avg := HealthAverages{
		Calories:    round2(totals.TotalCalories / days),
		Protein:     round2(totals.TotalProtein / days),
		Carb:        round2(totals.TotalCarb / days),
		Fat:         round2(totals.TotalFat / days),
		MealsPerDay: round2(float64(totals.MealCount) / days),
	}

	macroCalories := totals.TotalProtein*4 + totals.TotalCarb*4 + totals.TotalFat*9
	if macroCalories < 1 {
		macroCalories = 1
	}
	avg.ProteinRatio = round2(totals.TotalProtein * 4 / macroCalories)
	avg.CarbRatio = round2(totals.TotalCarb * 4 / macroCalories)
	avg.FatRatio = round2(totals.TotalFat * 9 / macroCalories)

	statusLabel, statusTone := classifyCalories(avg.Calories)

	summary := HealthSummary{
		HasData:           true,
		RangeLabel:        rangeLabel,
		StatusLabel:       statusLabel,
		StatusTone:        statusTone,
		Tags:              buildTags(avg),
		FocusTip:          selectFocusTip(avg),
		NutritionSections: buildNutritionSections(avg, totals),
		LifestyleTips:     buildLifestyleTips(avg),
		Averages:          avg,
	}
	return summary, nil
}

func (h *HealthAdvisor) noDataSummary(rangeLabel string) HealthSummary {
	return HealthSummary{
		HasData:     false,
		RangeLabel:  rangeLabel,
		StatusLabel: "No data yet",
		StatusTone:  "neutral",
		Tags:        []string{},
		FocusTip: FocusTip{
			ID:   TipOnboarding,
			Text: "Start logging your meals to unlock personalized health feedback.",
		},
		NutritionSections: []NutritionSection{},
		LifestyleTips:     genericLifestyleTips(),
		Averages:          HealthAverages{},
	}
}

func classifyCalories(avgCalories float64) (string, string) {
	switch {
	case avgCalories < calorieLowThreshold:
		return "Intake slightly low", "caution"
	case avgCalories > calorieHighThreshold:
		return "Intake slightly high", "caution"
	default:
		return "Healthy", "good"
	}
}

// buildTags emits one tag per dimension; the three are independent and
// always all present.
func buildTags(avg HealthAverages) []string {
	tags := make([]string, 0, 3)

	switch {
	case avg.ProteinRatio < proteinLowRatio:
		tags = append(tags, "Protein low")
	case avg.ProteinRatio > proteinHighRatio:
		tags = append(tags, "Protein sufficient")
	default:
		tags = append(tags, "Protein stable")
	}

	switch {
	case avg.CarbRatio > carbHighRatio:
		tags = append(tags, "Carb high")
	case avg.CarbRatio < carbLowRatio:
		tags = append(tags, "Carb low")
	default:
		tags = append(tags, "Balanced")
	}

	if avg.MealsPerDay >= regularMealsPerDay {
		tags = append(tags, "Regular logging")
	} else {
		tags = append(tags, "Logging could improve")
	}
	return tags
}

// selectFocusTip picks the single most pressing concern. The ratio- and
// calorie-scale deviations compete directly; the strictly greatest wins
// and ties fall to the earlier (higher-priority) concern. The raw
// meals-per-day deviation lives on a different scale, so low logging is
// only surfaced here when none of the other concerns fired.
func selectFocusTip(avg HealthAverages) FocusTip {
	type concern struct {
		id        string
		deviation float64
		text      string
	}
	concerns := []concern{
		{
			id:        TipProteinLow,
			deviation: math.Max(0, proteinLowRatio-avg.ProteinRatio),
			text: fmt.Sprintf(
				"Protein supplies only %.0f%% of your calories. Add eggs, tofu or lean meat to reach at least %.0f%%.",
				avg.ProteinRatio*100, proteinLowRatio*100),
		},
		{
			id:        TipCarbHigh,
			deviation: math.Max(0, avg.CarbRatio-carbHighRatio),
			text: fmt.Sprintf(
				"Carbs supply %.0f%% of your calories. Swapping some rice or noodles for vegetables can bring this under %.0f%%.",
				avg.CarbRatio*100, carbHighRatio*100),
		},
		{
			id:        TipCalorieLow,
			deviation: math.Max(0, (calorieLowThreshold-avg.Calories)/calorieLowThreshold),
			text: fmt.Sprintf(
				"You average %.0f kcal per day, under the %.0f kcal guideline. Consider one more balanced meal or snack.",
				avg.Calories, calorieLowThreshold),
		},
	}

	best := -1
	for i, c := range concerns {
		if c.deviation <= 0 {
			continue
		}
		if best == -1 || c.deviation > concerns[best].deviation {
			best = i
		}
	}
	if best >= 0 {
		return FocusTip{ID: concerns[best].id, Text: concerns[best].text}
	}

	if avg.MealsPerDay < regularMealsPerDay {
		return FocusTip{
			ID: TipLoggingLow,
			Text: fmt.Sprintf(
				"You log about %.1f meals a day. Recording three meals daily makes this advice much more reliable.",
				avg.MealsPerDay),
		}
	}

	return FocusTip{ID: TipMaintain, Text: "Your intake looks balanced. Keep up the current rhythm."}
}

func buildNutritionSections(avg HealthAverages, totals IntakeSummary) []NutritionSection {
	return []NutritionSection{
		{
			Title: "Calories",
			Lines: []string{
				fmt.Sprintf("Average %.0f kcal per day", avg.Calories),
				fmt.Sprintf("%d meals over %d active days", totals.MealCount, totals.ActiveDayCount),
			},
		},
		{
			Title: "Macronutrients",
			Lines: []string{
				fmt.Sprintf("Protein %.0fg (%.0f%% of calories)", avg.Protein, avg.ProteinRatio*100),
				fmt.Sprintf("Carbs %.0fg (%.0f%% of calories)", avg.Carb, avg.CarbRatio*100),
				fmt.Sprintf("Fat %.0fg (%.0f%% of calories)", avg.Fat, avg.FatRatio*100),
			},
		},
	}
}

func genericLifestyleTips() []string {
	return []string{
		"Drink water regularly through the day.",
		"Include vegetables in at least two meals.",
		"A short walk after your largest meal helps digestion.",
	}
}

func buildLifestyleTips(avg HealthAverages) []string {
	tips := genericLifestyleTips()
	if avg.MealsPerDay < regularMealsPerDay {
		tips = append([]string{"Try to log every meal, including snacks."}, tips...)
	}
	if avg.Calories > calorieHighThreshold {
		tips = append(tips, "Watch portion sizes at dinner to ease your calorie total.")
	}
	return tips
}
