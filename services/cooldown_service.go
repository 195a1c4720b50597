package services

import (
	"time"
)

const (
	DefaultCooldownDays = 7
	MinCooldownDays     = 1
	MaxCooldownDays     = 30
)

func clampCooldown(days int) int {
	if days < MinCooldownDays {
		return MinCooldownDays
	}
	if days > MaxCooldownDays {
		return MaxCooldownDays
	}
	return days
}

// CooldownService decides how long a selected meal stays off the
// recommendation lists for a given user.
type CooldownService struct {
	prefs   PreferenceStore
	history HistoryLedger
	now     func() time.Time
}

func NewCooldownService(prefs PreferenceStore, history HistoryLedger) *CooldownService {
	return &CooldownService{prefs: prefs, history: history, now: time.Now}
}

// ResolveCooldownDays honors the user preference when present, clamped
// to the system range. Anonymous users and users without a preference
// row get the default.
func (s *CooldownService) ResolveCooldownDays(userID uint) int {
	if userID == 0 {
		return DefaultCooldownDays
	}
	pref, err := s.prefs.PreferenceFor(userID)
	if err != nil || pref == nil || pref.CooldownDays == nil {
		return DefaultCooldownDays
	}
	return clampCooldown(*pref.CooldownDays)
}

// RecentSelectedMealIDs returns the meal ids the user picked within the
// cooldown window. Pass days <= 0 to derive the window from the user's
// preference. Anonymous users have no history and get an empty set.
func (s *CooldownService) RecentSelectedMealIDs(userID uint, days int) (map[uint]struct{}, error) {
	if userID == 0 {
		return map[uint]struct{}{}, nil
	}
	if days <= 0 {
		days = s.ResolveCooldownDays(userID)
	} else {
		days = clampCooldown(days)
	}
	cutoff := s.now().AddDate(0, 0, -days)
	ids, err := s.history.SelectedMealIDsSince(userID, cutoff)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// RecordChoice appends a was-selected ledger entry. This is what starts
// a meal's cooldown.
func (s *CooldownService) RecordChoice(userID, mealID, restaurantID uint) error {
	if userID == 0 || mealID == 0 {
		return nil
	}
	return s.history.AppendChoice(userID, mealID, restaurantID)
}
