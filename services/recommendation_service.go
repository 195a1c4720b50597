package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

const (
	DefaultRecommendationLimit = 6
	MinRecommendationLimit     = 1
	MaxRecommendationLimit     = 12
)

func clampLimit(v int) int {
	if v < MinRecommendationLimit {
		return MinRecommendationLimit
	}
	if v > MaxRecommendationLimit {
		return MaxRecommendationLimit
	}
	return v
}

// RecommendationFilters is the request-scoped filter set. Empty string
// fields impose no constraint; all present constraints apply together.
type RecommendationFilters struct {
	CuisineType  string
	Category     string
	PriceRange   string
	City         string
	District     string
	IsVegetarian bool
	AvoidSpicy   bool
	Limit        int
}

// FilterInput is the raw ad-hoc filter form as submitted. Limit arrives
// as a string so a junk value can be reported instead of silently
// becoming zero.
type FilterInput struct {
	CuisineType  string `form:"cuisineType" json:"cuisineType"`
	Category     string `form:"category" json:"category"`
	PriceRange   string `form:"priceRange" json:"priceRange"`
	City         string `form:"city" json:"city"`
	District     string `form:"district" json:"district"`
	IsVegetarian bool   `form:"isVegetarian" json:"isVegetarian"`
	AvoidSpicy   bool   `form:"avoidSpicy" json:"avoidSpicy"`
	Limit        string `form:"limit" json:"limit"`
}

// ValidateFilters turns raw input into a usable filter set, or a
// field->messages map when something can't be interpreted. Out-of-range
// numeric limits are clamped rather than rejected.
func ValidateFilters(in FilterInput) (RecommendationFilters, map[string][]string) {
	errs := map[string][]string{}

	priceRange := strings.TrimSpace(in.PriceRange)
	if priceRange != "" && !models.ValidPriceRange(priceRange) {
		errs["priceRange"] = append(errs["priceRange"], "must be one of low, medium, high")
	}

	limit := DefaultRecommendationLimit
	if raw := strings.TrimSpace(in.Limit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["limit"] = append(errs["limit"], "must be a whole number")
		} else {
			limit = clampLimit(n)
		}
	}

	if len(errs) > 0 {
		return RecommendationFilters{}, errs
	}
	return RecommendationFilters{
		CuisineType:  strings.TrimSpace(in.CuisineType),
		Category:     strings.TrimSpace(in.Category),
		PriceRange:   priceRange,
		City:         strings.TrimSpace(in.City),
		District:     strings.TrimSpace(in.District),
		IsVegetarian: in.IsVegetarian,
		AvoidSpicy:   in.AvoidSpicy,
		Limit:        limit,
	}, nil
}

type RecommendationCard struct {
	MealCandidate
	Reason string `json:"reason"`
}

type PrimaryResult struct {
	Cards        []RecommendationCard `json:"cards"`
	Reason       string               `json:"reason"`
	FallbackUsed bool                 `json:"fallbackUsed"`
	Alert        string               `json:"alert,omitempty"`
}

// RecommendationEngine ranks meal candidates for a user. Every call
// re-reads current data; nothing is cached between calls.
type RecommendationEngine struct {
	candidates   CandidateStore
	cooldown     *CooldownService
	interactions InteractionStore
	prefs        PreferenceStore
}

func NewRecommendationEngine(
	candidates CandidateStore,
	cooldown *CooldownService,
	interactions InteractionStore,
	prefs PreferenceStore,
) *RecommendationEngine {
	return &RecommendationEngine{
		candidates:   candidates,
		cooldown:     cooldown,
		interactions: interactions,
		prefs:        prefs,
	}
}

// base returns available candidates minus the user's cooldown set. The
// cooldown exclusion applies to every query path, including fallbacks.
// The result is always a fresh slice: callers sort, shuffle and compact
// it in place, and the store's own slice must never be touched.
func (e *RecommendationEngine) base(userID uint) ([]MealCandidate, error) {
	all, err := e.candidates.AvailableCandidates()
	if err != nil {
		return nil, err
	}
	var excluded map[uint]struct{}
	if userID != 0 {
		excluded, err = e.cooldown.RecentSelectedMealIDs(userID, 0)
		if err != nil {
			return nil, err
		}
	}
	kept := make([]MealCandidate, 0, len(all))
	for _, c := range all {
		if _, skip := excluded[c.MealID]; skip {
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}

func matchesFilters(c MealCandidate, f RecommendationFilters) bool {
	if f.CuisineType != "" &&
		!strings.Contains(strings.ToLower(c.CuisineType), strings.ToLower(f.CuisineType)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
		return false
	}
	if f.PriceRange != "" && c.PriceRange != f.PriceRange {
		return false
	}
	if f.City != "" &&
		!strings.Contains(strings.ToLower(c.City), strings.ToLower(f.City)) {
		return false
	}
	if f.District != "" &&
		!strings.Contains(strings.ToLower(c.District), strings.ToLower(f.District)) {
		return false
	}
	if f.IsVegetarian && !c.IsVegetarian {
		return false
	}
	// Unknown spiciness is kept: only an explicit true is excluded.
	if f.AvoidSpicy && c.IsSpicy != nil && *c.IsSpicy {
		return false
	}
	return true
}

func sortByRating(list []MealCandidate) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Rating != list[j].Rating {
			return list[i].Rating > list[j].Rating
		}
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].MealID < list[j].MealID
	})
}

func sortByPopularity(list []MealCandidate) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].FavoriteCount != list[j].FavoriteCount {
			return list[i].FavoriteCount > list[j].FavoriteCount
		}
		if list[i].Rating != list[j].Rating {
			return list[i].Rating > list[j].Rating
		}
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].MealID < list[j].MealID
	})
}

func sortByNewest(list []MealCandidate) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].MealID > list[j].MealID
	})
}

func truncate(list []MealCandidate, limit int) []MealCandidate {
	limit = clampLimit(limit)
	if len(list) > limit {
		return list[:limit]
	}
	return list
}

// ApplyFilters runs the full pipeline: availability, cooldown
// exclusion, conjunctive predicates, rating-descending order, limit.
func (e *RecommendationEngine) ApplyFilters(userID uint, f RecommendationFilters) ([]MealCandidate, error) {
	pool, err := e.base(userID)
	if err != nil {
		return nil, err
	}
	matched := make([]MealCandidate, 0, len(pool))
	for _, c := range pool {
		if matchesFilters(c, f) {
			matched = append(matched, c)
		}
	}
	sortByRating(matched)
	return truncate(matched, f.Limit), nil
}

// PopularMeals ignores preference filters but never the cooldown.
func (e *RecommendationEngine) PopularMeals(userID uint, limit int) ([]MealCandidate, error) {
	pool, err := e.base(userID)
	if err != nil {
		return nil, err
	}
	sortByPopularity(pool)
	return truncate(pool, limit), nil
}

func (e *RecommendationEngine) BudgetFriendly(userID uint, limit int) ([]MealCandidate, error) {
	return e.ApplyFilters(userID, RecommendationFilters{PriceRange: models.PriceLow, Limit: clampLimit(limit)})
}

func (e *RecommendationEngine) VegetarianSpotlight(userID uint, limit int) ([]MealCandidate, error) {
	return e.ApplyFilters(userID, RecommendationFilters{IsVegetarian: true, Limit: clampLimit(limit)})
}

func (e *RecommendationEngine) MildFlavor(userID uint, limit int) ([]MealCandidate, error) {
	return e.ApplyFilters(userID, RecommendationFilters{AvoidSpicy: true, Limit: clampLimit(limit)})
}

// NewExperiences surfaces meals the user has never favorited or
// reviewed. The exclusion is lifetime, on top of the usual cooldown.
func (e *RecommendationEngine) NewExperiences(userID uint, limit int) ([]MealCandidate, error) {
	pool, err := e.base(userID)
	if err != nil {
		return nil, err
	}
	if userID != 0 {
		seen, err := e.interactions.InteractedMealIDs(userID)
		if err != nil {
			return nil, err
		}
		if len(seen) > 0 {
			seenSet := make(map[uint]struct{}, len(seen))
			for _, id := range seen {
				seenSet[id] = struct{}{}
			}
			kept := pool[:0]
			for _, c := range pool {
				if _, ok := seenSet[c.MealID]; !ok {
					kept = append(kept, c)
				}
			}
			pool = kept
		}
	}
	sortByNewest(pool)
	return truncate(pool, limit), nil
}

// SurpriseMeals shuffles the candidate pool with an explicit seed so
// "surprise me" stays uniformly random in production and reproducible
// under test.
func (e *RecommendationEngine) SurpriseMeals(userID uint, limit int, seed int64) ([]MealCandidate, error) {
	pool, err := e.base(userID)
	if err != nil {
		return nil, err
	}
	sortByRating(pool) // fixed pre-shuffle order so the seed fully determines the outcome
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return truncate(pool, limit), nil
}

// FiltersFromPreference builds the default filter set from a stored
// preference. A nil preference yields unconstrained filters.
func (e *RecommendationEngine) FiltersFromPreference(pref *models.UserPreference, limit int) RecommendationFilters {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	limit = clampLimit(limit)
	if pref == nil {
		return RecommendationFilters{Limit: limit}
	}
	return RecommendationFilters{
		CuisineType:  pref.CuisineType,
		Category:     pref.Category,
		PriceRange:   pref.PriceRange,
		IsVegetarian: pref.IsVegetarian,
		AvoidSpicy:   pref.AvoidSpicy,
		Limit:        limit,
	}
}

// DescribeFilters renders a short human label for the active filters.
func DescribeFilters(f RecommendationFilters) string {
	var parts []string
	if f.CuisineType != "" {
		parts = append(parts, "Cuisine: "+f.CuisineType)
	}
	if f.Category != "" {
		parts = append(parts, "Category: "+f.Category)
	}
	if f.PriceRange != "" {
		parts = append(parts, "Price: "+f.PriceRange)
	}
	if f.City != "" {
		parts = append(parts, "City: "+f.City)
	}
	if f.District != "" {
		parts = append(parts, "District: "+f.District)
	}
	if f.IsVegetarian {
		parts = append(parts, "Vegetarian only")
	}
	if f.AvoidSpicy {
		parts = append(parts, "Not spicy")
	}
	if len(parts) == 0 {
		return "Picked for you"
	}
	return strings.Join(parts, " · ")
}

const (
	reasonPreferences = "Based on your preferences"
	reasonPopular     = "Popular picks"
	alertFallback     = "Nothing matched your filters, so here are some popular picks instead."
	alertNoResults    = "No meals are available right now. Please check back later."
)

// PrimaryRecommendations produces the top-level result. Explicit filters
// take precedence over the stored preference; either way an empty match
// falls back to the popular ordering with the fallback flag set. The
// cooldown exclusion survives every fallback step.
func (e *RecommendationEngine) PrimaryRecommendations(userID uint, explicit *RecommendationFilters) (PrimaryResult, error) {
	var (
		filters RecommendationFilters
		reason  string
	)
	if explicit != nil {
		filters = *explicit
		filters.Limit = clampLimit(filters.Limit)
		reason = DescribeFilters(filters)
	} else {
		pref, err := e.prefs.PreferenceFor(userID)
		if err != nil {
			return PrimaryResult{}, err
		}
		filters = e.FiltersFromPreference(pref, 0)
		reason = reasonPreferences
	}

	meals, err := e.ApplyFilters(userID, filters)
	if err != nil {
		return PrimaryResult{}, err
	}

	result := PrimaryResult{Reason: reason}
	if len(meals) == 0 {
		meals, err = e.PopularMeals(userID, filters.Limit)
		if err != nil {
			return PrimaryResult{}, err
		}
		result.FallbackUsed = true
		result.Reason = reasonPopular
		result.Alert = alertFallback
		if len(meals) == 0 {
			result.Alert = alertNoResults
		}
	}

	result.Cards = make([]RecommendationCard, 0, len(meals))
	for _, m := range meals {
		result.Cards = append(result.Cards, RecommendationCard{MealCandidate: m, Reason: result.Reason})
	}
	return result, nil
}

// PreferenceSnapshot renders the stored preference as a one-line label
// for the filter form header.
func PreferenceSnapshot(pref *models.UserPreference) string {
	if pref == nil {
		return ""
	}
	var parts []string
	if pref.CuisineType != "" {
		parts = append(parts, pref.CuisineType)
	}
	if pref.Category != "" {
		parts = append(parts, fmt.Sprintf("Category %s", pref.Category))
	}
	if pref.PriceRange != "" {
		parts = append(parts, fmt.Sprintf("Price %s", pref.PriceRange))
	}
	if pref.IsVegetarian {
		parts = append(parts, "Vegetarian")
	}
	if pref.AvoidSpicy {
		parts = append(parts, "Not spicy")
	}
	if len(parts) == 0 {
		return "No filters set yet"
	}
	return strings.Join(parts, " · ")
}
