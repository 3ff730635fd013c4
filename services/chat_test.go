package services

import (
	"testing"
	"time"

	"github.com/Coderanger08/FinGenie/models"
)

// History selects newest-first so a limit keeps the tail of the conversation;
// oldestFirst must then restore reading order.
func TestOldestFirstRestoresReadingOrder(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	newestFirst := []models.ChatMessage{
		{ID: "m3", Text: "third", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "m2", Text: "second", CreatedAt: base.Add(time.Minute)},
		{ID: "m1", Text: "first", CreatedAt: base},
	}

	oldestFirst(newestFirst)

	wantIDs := []string{"m1", "m2", "m3"}
	for i, want := range wantIDs {
		if newestFirst[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, newestFirst[i].ID, want)
		}
	}
	for i := 1; i < len(newestFirst); i++ {
		if newestFirst[i].CreatedAt.Before(newestFirst[i-1].CreatedAt) {
			t.Fatalf("messages not in ascending time order at %d", i)
		}
	}
}

func TestOldestFirstHandlesShortSlices(t *testing.T) {
	oldestFirst(nil)

	one := []models.ChatMessage{{ID: "only"}}
	oldestFirst(one)
	if one[0].ID != "only" {
		t.Fatalf("single-element slice changed: %+v", one)
	}

	two := []models.ChatMessage{{ID: "newer"}, {ID: "older"}}
	oldestFirst(two)
	if two[0].ID != "older" || two[1].ID != "newer" {
		t.Fatalf("pair not flipped: %+v", two)
	}
}
