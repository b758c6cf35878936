package templates

import "testing"

func TestIsTierAccessible(t *testing.T) {
	testCases := []struct {
		name     string
		user     PlanTier
		required PlanTier
		want     bool
	}{
		{"free can use free", PlanFree, PlanFree, true},
		{"free cannot use growth", PlanFree, PlanGrowth, false},
		{"free cannot use pro", PlanFree, PlanPro, false},
		{"growth can use free", PlanGrowth, PlanFree, true},
		{"growth can use growth", PlanGrowth, PlanGrowth, true},
		{"growth cannot use pro", PlanGrowth, PlanPro, false},
		{"pro can use everything", PlanPro, PlanPro, true},
		{"unknown tier ranks lowest", PlanTier("enterprise"), PlanGrowth, false},
		{"unknown tier still gets free", PlanTier("enterprise"), PlanFree, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTierAccessible(tc.user, tc.required); got != tc.want {
				t.Fatalf("IsTierAccessible(%s, %s) = %v, want %v", tc.user, tc.required, got, tc.want)
			}
		})
	}
}

func TestRegistryIntegrity(t *testing.T) {
	for id, def := range Registry {
		if def.ID != id {
			t.Fatalf("template %q carries mismatched id %q", id, def.ID)
		}
		if def.Slug == "" || def.DisplayName == "" || def.Category == "" {
			t.Fatalf("template %q is missing identity fields: %+v", id, def)
		}
		if _, ok := CategoryBySlug(def.Category); !ok {
			t.Fatalf("template %q references unknown category %q", id, def.Category)
		}
	}
}

func TestCategoriesRecommendKnownTemplates(t *testing.T) {
	for _, c := range Categories {
		if len(c.RecommendedTemplates) == 0 {
			t.Fatalf("category %q has no recommended templates", c.Slug)
		}
		for _, id := range c.RecommendedTemplates {
			def, ok := ByID(id)
			if !ok {
				t.Fatalf("category %q recommends unknown template %q", c.Slug, id)
			}
			if def.Status != "active" {
				t.Fatalf("category %q recommends inactive template %q", c.Slug, id)
			}
			if def.Category != c.Slug {
				t.Fatalf("category %q recommends template %q from category %q", c.Slug, id, def.Category)
			}
		}
	}
}

func TestActiveCatalog(t *testing.T) {
	defs := Active()

	seen := make(map[string]bool)
	for _, def := range defs {
		if seen[def.ID] {
			t.Fatalf("template %q appears twice in the catalog", def.ID)
		}
		seen[def.ID] = true
		if def.Status != "active" {
			t.Fatalf("inactive template %q in the catalog", def.ID)
		}
	}

	for id, def := range Registry {
		if def.Status == "active" && !seen[id] {
			t.Fatalf("active template %q missing from the catalog", id)
		}
	}

	// The catalog order must be stable across calls.
	again := Active()
	if len(again) != len(defs) {
		t.Fatalf("catalog length changed between calls: %d vs %d", len(defs), len(again))
	}
	for i := range defs {
		if defs[i].ID != again[i].ID {
			t.Fatalf("catalog order changed at %d: %q vs %q", i, defs[i].ID, again[i].ID)
		}
	}
}
