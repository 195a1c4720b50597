package services

import (
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

type stubCandidates struct {
	list []MealCandidate
	err  error
}

func (s *stubCandidates) AvailableCandidates() ([]MealCandidate, error) {
	return s.list, s.err
}

type historyEntry struct {
	userID uint
	mealID uint
	at     time.Time
}

type stubHistory struct {
	entries  []historyEntry
	appended []historyEntry
}

func (s *stubHistory) SelectedMealIDsSince(userID uint, since time.Time) ([]uint, error) {
	var ids []uint
	for _, e := range s.entries {
		if e.userID == userID && !e.at.Before(since) {
			ids = append(ids, e.mealID)
		}
	}
	return ids, nil
}

func (s *stubHistory) AppendChoice(userID, mealID, restaurantID uint) error {
	s.appended = append(s.appended, historyEntry{userID: userID, mealID: mealID, at: time.Now()})
	return nil
}

type stubPrefs struct {
	prefs map[uint]*models.UserPreference
}

func (s *stubPrefs) PreferenceFor(userID uint) (*models.UserPreference, error) {
	if s.prefs == nil {
		return nil, nil
	}
	return s.prefs[userID], nil
}

type stubInteractions struct {
	ids map[uint][]uint
}

func (s *stubInteractions) InteractedMealIDs(userID uint) ([]uint, error) {
	if s.ids == nil {
		return nil, nil
	}
	return s.ids[userID], nil
}

type stubRecords struct {
	records []models.DailyMealRecord
}

func (s *stubRecords) RecordsInRange(userID uint, from, to time.Time) ([]models.DailyMealRecord, error) {
	var out []models.DailyMealRecord
	for _, r := range s.records {
		if r.UserID != userID {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func newTestEngine(candidates []MealCandidate, history *stubHistory, prefs *stubPrefs, interactions *stubInteractions) (*RecommendationEngine, *CooldownService) {
	if history == nil {
		history = &stubHistory{}
	}
	if prefs == nil {
		prefs = &stubPrefs{}
	}
	if interactions == nil {
		interactions = &stubInteractions{}
	}
	cooldown := NewCooldownService(prefs, history)
	engine := NewRecommendationEngine(&stubCandidates{list: candidates}, cooldown, interactions, prefs)
	return engine, cooldown
}

func mealIDs(list []MealCandidate) []uint {
	out := make([]uint, 0, len(list))
	for _, c := range list {
		out = append(out, c.MealID)
	}
	return out
}

func cardIDs(cards []RecommendationCard) []uint {
	out := make([]uint, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.MealID)
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
