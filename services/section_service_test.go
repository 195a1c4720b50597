package services

import (
	"testing"
)

func TestBuildSectionsNoRepeats(t *testing.T) {
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, nil)

	// Simulate a primary result that already used meal 3.
	used := map[uint]struct{}{3: {}}
	sections, err := engine.BuildSections(1, used)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[uint]string{}
	for _, s := range sections {
		if len(s.Cards) == 0 {
			t.Fatalf("section %q is empty but was not omitted", s.Title)
		}
		for _, c := range s.Cards {
			if c.MealID == 3 {
				t.Fatalf("meal from the primary result reappeared in %q", s.Title)
			}
			if prev, ok := seen[c.MealID]; ok {
				t.Fatalf("meal %d appears in both %q and %q", c.MealID, prev, s.Title)
			}
			seen[c.MealID] = s.Title
		}
	}
}

func TestBuildSectionsOmitsEmpty(t *testing.T) {
	// No vegetarian and no budget meals in the pool.
	pool := sampleCandidates()
	var trimmed []MealCandidate
	for _, c := range pool {
		if c.IsVegetarian {
			continue
		}
		trimmed = append(trimmed, c)
	}
	engine, _ := newTestEngine(trimmed, nil, nil, nil)

	sections, err := engine.BuildSections(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range sections {
		if s.Title == "Vegetarian" {
			t.Fatalf("empty vegetarian section should have been dropped")
		}
	}
}

func TestBuildSectionsSkipsLifetimeInteractions(t *testing.T) {
	interactions := &stubInteractions{ids: map[uint][]uint{1: {1, 2, 3, 4}}}
	engine, _ := newTestEngine(sampleCandidates(), nil, nil, interactions)

	sections, err := engine.BuildSections(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range sections {
		if s.Title == "New Experiences" {
			t.Fatalf("user has interacted with every meal; the section should vanish")
		}
	}
}
