package services

import (
	"testing"
	"time"

	"github.com/ethan-devlab/RMRS-Deploy/models"
)

func TestResetTokenUsable(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.Local)
	user := &models.User{
		ResetToken:    "ABC12345",
		ResetTokenExp: now.Add(10 * time.Minute),
	}

	if !ResetTokenUsable(user, "ABC12345", now) {
		t.Fatalf("matching unexpired code should be usable")
	}
	if ResetTokenUsable(user, "WRONG000", now) {
		t.Fatalf("mismatched code must not redeem")
	}
	if ResetTokenUsable(user, "ABC12345", now.Add(20*time.Minute)) {
		t.Fatalf("expired code must not redeem")
	}
	if ResetTokenUsable(user, "", now) {
		t.Fatalf("empty submission must not redeem")
	}

	// An account with no pending reset never matches, even on the
	// empty string.
	blank := &models.User{}
	if ResetTokenUsable(blank, "", now) {
		t.Fatalf("account without a pending reset must not redeem")
	}
	if ResetTokenUsable(nil, "ABC12345", now) {
		t.Fatalf("nil user must not redeem")
	}
}
