package services

import (
	"testing"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

func TestResolveCooldownDaysDefault(t *testing.T) {
	svc := NewCooldownService(&stubPrefs{}, &stubHistory{})

	if got := svc.ResolveCooldownDays(42); got != DefaultCooldownDays {
		t.Fatalf("no preference row: got %d, want %d", got, DefaultCooldownDays)
	}
	if got := svc.ResolveCooldownDays(0); got != DefaultCooldownDays {
		t.Fatalf("anonymous user: got %d, want %d", got, DefaultCooldownDays)
	}
}

func TestResolveCooldownDaysClamped(t *testing.T) {
	prefs := &stubPrefs{prefs: map[uint]*models.UserPreference{
		1: {UserID: 1, CooldownDays: intPtr(35)},
		2: {UserID: 2, CooldownDays: intPtr(-2)},
		3: {UserID: 3, CooldownDays: intPtr(10)},
		4: {UserID: 4}, // no explicit cooldown
	}}
	svc := NewCooldownService(prefs, &stubHistory{})

	cases := []struct {
		userID uint
		want   int
	}{
		{1, MaxCooldownDays},
		{2, MinCooldownDays},
		{3, 10},
		{4, DefaultCooldownDays},
	}
	for _, tc := range cases {
		if got := svc.ResolveCooldownDays(tc.userID); got != tc.want {
			t.Fatalf("user %d: got %d, want %d", tc.userID, got, tc.want)
		}
	}
}

func TestRecentSelectedMealIDsWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.Local)
	history := &stubHistory{entries: []historyEntry{
		{userID: 1, mealID: 10, at: now.AddDate(0, 0, -3)},
		{userID: 1, mealID: 11, at: now.AddDate(0, 0, -10)},
		{userID: 2, mealID: 12, at: now.AddDate(0, 0, -1)},
	}}
	svc := NewCooldownService(&stubPrefs{}, history)
	svc.now = func() time.Time { return now }

	got, err := svc.RecentSelectedMealIDs(1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got[10]; !ok {
		t.Fatalf("meal 10 picked 3 days ago should be inside the 7-day window")
	}
	if _, ok := got[11]; ok {
		t.Fatalf("meal 11 picked 10 days ago should be outside the 7-day window")
	}
	if _, ok := got[12]; ok {
		t.Fatalf("another user's choice leaked into the set")
	}
}

func TestRecentSelectedMealIDsAnonymous(t *testing.T) {
	history := &stubHistory{entries: []historyEntry{
		{userID: 1, mealID: 10, at: time.Now()},
	}}
	svc := NewCooldownService(&stubPrefs{}, history)

	got, err := svc.RecentSelectedMealIDs(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("anonymous user should have an empty cooldown set, got %v", got)
	}
}

func TestRecordChoice(t *testing.T) {
	history := &stubHistory{}
	svc := NewCooldownService(&stubPrefs{}, history)

	if err := svc.RecordChoice(1, 10, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.appended) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(history.appended))
	}

	if err := svc.RecordChoice(0, 10, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.appended) != 1 {
		t.Fatalf("anonymous choice should not be recorded")
	}
}
