package services

import (
	"testing"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

func sampleCandidates() []MealCandidate {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	return []MealCandidate{
		{MealID: 1, Name: "Beef Noodles", Category: "noodles", CuisineType: "Taiwanese",
			PriceRange: models.PriceMedium, City: "Taipei", District: "Daan",
			Rating: 4.5, FavoriteCount: 12, IsSpicy: boolPtr(true), CreatedAt: base},
		{MealID: 2, Name: "Veggie Curry", Category: "curry", CuisineType: "Indian",
			PriceRange: models.PriceLow, City: "Taipei", District: "Xinyi",
			Rating: 4.5, FavoriteCount: 3, IsVegetarian: true, IsSpicy: boolPtr(false),
			CreatedAt: base.AddDate(0, 0, 1)},
		{MealID: 3, Name: "Sushi Set", Category: "sushi", CuisineType: "Japanese",
			PriceRange: models.PriceHigh, City: "Kaohsiung", District: "Lingya",
			Rating: 4.8, FavoriteCount: 20, CreatedAt: base.AddDate(0, 0, 2)},
		{MealID: 4, Name: "Tofu Bowl", Category: "rice", CuisineType: "Taiwanese",
			PriceRange: models.PriceLow, City: "Taipei", District: "Daan",
			Rating: 4.0, FavoriteCount: 7, IsVegetarian: true,
			CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func TestValidateFilters(t *testing.T) {
	if _, errs := ValidateFilters(FilterInput{PriceRange: "cheap"}); errs == nil || len(errs["priceRange"]) == 0 {
		t.Fatalf("invalid price range should produce a field error, got %v", errs)
	}
	if _, errs := ValidateFilters(FilterInput{Limit: "lots"}); errs == nil || len(errs["limit"]) == 0 {
		t.Fatalf("non-numeric limit should produce a field error, got %v", errs)
	}

	f, errs := ValidateFilters(FilterInput{Limit: "999"})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if f.Limit != MaxRecommendationLimit {
		t.Fatalf("limit 999 should clamp to %d, got %d", MaxRecommendationLimit, f.Limit)
	}

	f, errs = ValidateFilters(FilterInput{Limit: "-5"})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if f.Limit != MinRecommendationLimit {
		t.Fatalf("limit -5 should clamp to %d, got %d", MinRecommendationLimit, f.Limit)
	}

	f, errs = ValidateFilters(FilterInput{CuisineType: " Taiwanese "})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if f.Limit != DefaultRecommendationLimit {
		t.Fatalf("empty limit should default to %d, got %d", DefaultRecommendationLimit, f.Limit)
	}
	if f.CuisineType != "Taiwanese" {
		t.Fatalf("cuisine should be trimmed, got %q", f.CuisineType)
	}
}

func TestApplyFiltersConjunctive(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	got, err := engine.ApplyFilters(1, RecommendationFilters{
		CuisineType: "taiwan", City: "taipei", PriceRange: models.PriceLow, Limit: 6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(mealIDs(got), []uint{4}) {
		t.Fatalf("expected only meal 4, got %v", mealIDs(got))
	}
}

func TestApplyFiltersVacuous(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	got, err := engine.ApplyFilters(1, RecommendationFilters{Limit: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("empty filters should keep the whole pool, got %d meals", len(got))
	}
}

func TestAvoidSpicyKeepsUnknown(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	got, err := engine.ApplyFilters(1, RecommendationFilters{AvoidSpicy: true, Limit: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range got {
		if c.MealID == 1 {
			t.Fatalf("explicitly spicy meal survived avoidSpicy")
		}
	}
	// Meals 3 and 4 have unknown spiciness and must survive.
	ids := map[uint]bool{}
	for _, c := range got {
		ids[c.MealID] = true
	}
	if !ids[3] || !ids[4] {
		t.Fatalf("unknown spiciness should be kept, got %v", mealIDs(got))
	}
}

func TestRatingOrderDeterministic(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	got, err := engine.ApplyFilters(1, RecommendationFilters{Limit: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 (4.8), then the 4.5 tie broken by name: Beef Noodles before
	// Veggie Curry, then 4 (4.0).
	if !equalIDs(mealIDs(got), []uint{3, 1, 2, 4}) {
		t.Fatalf("wrong order: %v", mealIDs(got))
	}
}

func TestPopularOrder(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	got, err := engine.PopularMeals(1, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(mealIDs(got), []uint{3, 1, 4, 2}) {
		t.Fatalf("wrong popularity order: %v", mealIDs(got))
	}
}

func TestPrimaryFallbackToPopular(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	filters := RecommendationFilters{CuisineType: "Ethiopian", Limit: 6}
	result, err := engine.PrimaryRecommendations(1, &filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FallbackUsed {
		t.Fatalf("fallback flag should be set when nothing matches")
	}
	if result.Alert == "" {
		t.Fatalf("fallback should carry an alert")
	}
	if !equalIDs(cardIDs(result.Cards), []uint{3, 1, 4, 2}) {
		t.Fatalf("fallback should be the popular ordering, got %v", cardIDs(result.Cards))
	}
}

func TestPrimaryUsesStoredPreference(t *testing.T) {
	prefs := &stubPrefs{prefs: map[uint]*models.UserPreference{
		1: {UserID: 1, IsVegetarian: true},
	}}
	engine, _ := newTestEngine(sampleCandidates(), nil, prefs, nil)

	result, err := engine.PrimaryRecommendations(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FallbackUsed {
		t.Fatalf("vegetarian meals exist, fallback should not trigger")
	}
	if !equalIDs(cardIDs(result.Cards), []uint{2, 4}) {
		t.Fatalf("expected vegetarian meals by rating, got %v", cardIDs(result.Cards))
	}
}

func TestCooldownExcludedEverywhere(t *testing.T) {
	now := time.Now()
	history := &stubHistory{entries: []historyEntry{
		{userID: 1, mealID: 3, at: now.AddDate(0, 0, -2)},
	}}
	engine, cooldown := newTestEngine(sampleCandidates(), history, nil, nil)
	cooldown.now = func() time.Time { return now }

	// Meal 3 is the only sushi meal; the filter path must come up empty
	// and the fallback must still exclude it.
	filters := RecommendationFilters{Category: "sushi", Limit: 6}
	result, err := engine.PrimaryRecommendations(1, &filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FallbackUsed {
		t.Fatalf("expected fallback: the only match is cooling down")
	}
	for _, id := range cardIDs(result.Cards) {
		if id == 3 {
			t.Fatalf("cooled-down meal leaked through the fallback")
		}
	}

	sections, err := engine.BuildSections(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range sections {
		for _, c := range s.Cards {
			if c.MealID == 3 {
				t.Fatalf("cooled-down meal leaked into section %q", s.Title)
			}
		}
	}
}

func TestNewExperiencesExcludesInteracted(t *testing.T) {
	interactions := &stubInteractions{ids: map[uint][]uint{1: {2, 3}}}
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, interactions)

	got, err := engine.NewExperiences(1, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Newest first among the never-interacted meals.
	if !equalIDs(mealIDs(got), []uint{4, 1}) {
		t.Fatalf("expected meals 4 then 1, got %v", mealIDs(got))
	}
}

func TestEngineNeverMutatesStoreSlice(t *testing.T) {
	pool := sampleCandidates()
	store := &stubCandidates{list: pool}
	cooldown := NewCooldownService(&stubPrefs{}, &stubHistory{})
	engine := NewRecommendationEngine(store, cooldown, &stubInteractions{}, &stubPrefs{})

	before := mealIDs(store.list)
	if _, err := engine.SurpriseMeals(1, 12, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.ApplyFilters(1, RecommendationFilters{Limit: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.NewExperiences(1, 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(mealIDs(store.list), before) {
		t.Fatalf("store slice reordered: %v -> %v", before, mealIDs(store.list))
	}
}

func TestSurpriseMealsSeedReproducible(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	a, err := engine.SurpriseMeals(1, 12, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := engine.SurpriseMeals(1, 12, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(mealIDs(a), mealIDs(b)) {
		t.Fatalf("same seed must give the same order: %v vs %v", mealIDs(a), mealIDs(b))
	}
	if len(a) != 4 {
		t.Fatalf("shuffle must not drop meals, got %d", len(a))
	}
}
