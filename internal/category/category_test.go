package category

import "testing"

func TestAllHasFiveCategories(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(all))
	}
	seen := map[Category]bool{}
	for _, c := range all {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
}

func TestResolveVerbatim(t *testing.T) {
	if got := Resolve("sports"); got != "sports" {
		t.Errorf("expected caller-supplied category verbatim, got %q", got)
	}
	if got := Resolve("cricket"); got != "cricket" {
		t.Errorf("expected cricket, got %q", got)
	}
}

func TestResolveRandomStaysInSet(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range All() {
		valid[string(c)] = true
	}

	hits := map[string]int{}
	for i := 0; i < 500; i++ {
		got := Resolve(Random)
		if !valid[got] {
			t.Fatalf("resolved to %q, not in the fixed set", got)
		}
		hits[got]++
	}

	// Over 500 trials each of the five categories should show up.
	for _, c := range All() {
		if hits[string(c)] == 0 {
			t.Errorf("category %q never selected in 500 trials", c)
		}
	}
}

func TestResolveEmptyIsRandom(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range All() {
		valid[string(c)] = true
	}
	for i := 0; i < 50; i++ {
		if got := Resolve(""); !valid[got] {
			t.Fatalf("empty category resolved to %q, not in the fixed set", got)
		}
	}
}
