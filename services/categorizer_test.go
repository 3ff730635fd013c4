package services

import (
	"context"
	"testing"
)

// Static-rule hits resolve before any database or model access, so these run
// with nil backends.
func TestCategorizerStaticRules(t *testing.T) {
	svc := NewCategorizerService(nil, nil)

	cases := []struct {
		description  string
		wantCategory string
	}{
		{"STARBUCKS #1234 SEATTLE", "Food"},
		{"Netflix subscription", "Entertainment"},
		{"UBER EATS order", "Food"},
		{"Uber trip home", "Transport"},
		{"AMAZON.COM purchase", "Shopping"},
		{"monthly rent payment", "Rent"},
	}

	for _, tc := range cases {
		suggestions, fallback, err := svc.Suggest(context.Background(), tc.description)
		if err != nil {
			t.Fatalf("Suggest(%q) failed: %v", tc.description, err)
		}
		if fallback {
			t.Fatalf("Suggest(%q) should not be a fallback", tc.description)
		}
		if len(suggestions) != 1 {
			t.Fatalf("Suggest(%q) returned %d suggestions", tc.description, len(suggestions))
		}
		if suggestions[0].Category != tc.wantCategory {
			t.Fatalf("Suggest(%q) = %q, want %q", tc.description, suggestions[0].Category, tc.wantCategory)
		}
		if suggestions[0].Confidence < 0.9 {
			t.Fatalf("static rule confidence too low: %v", suggestions[0].Confidence)
		}
	}
}

func TestCategorizerEmptyDescription(t *testing.T) {
	svc := NewCategorizerService(nil, nil)

	suggestions, fallback, err := svc.Suggest(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fallback {
		t.Fatal("empty input is answered directly, not via fallback")
	}
	if suggestions[0].Category != "Uncategorized" || suggestions[0].Confidence != 0.1 {
		t.Fatalf("unexpected suggestion for empty input: %+v", suggestions[0])
	}
}
