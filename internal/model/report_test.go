package model

import "testing"

func TestCredibility(t *testing.T) {
	tests := []struct {
		name     string
		verified int
		failed   int
		want     float64
	}{
		{"all verified", 5, 0, 1.0},
		{"all failed", 0, 3, 0.0},
		{"two thirds", 2, 1, 0.67},
		{"one third", 1, 2, 0.33},
		{"half", 1, 1, 0.5},
		{"nothing ran", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Credibility(tt.verified, tt.failed); got != tt.want {
				t.Errorf("Credibility(%d, %d) = %v, want %v", tt.verified, tt.failed, got, tt.want)
			}
		})
	}
}

func TestClaimSet(t *testing.T) {
	set := NewClaimSet()
	if set.Len() != 0 {
		t.Fatalf("new set has %d claims", set.Len())
	}

	set.Add(Claim{Category: CategoryResolution, Text: "a"})
	set.Add(Claim{Category: CategoryResolution, Text: "b"})
	set.Add(Claim{Category: CategoryRuleEstablishment, Text: "c"})

	if set.Len() != 3 {
		t.Errorf("Len = %d, want 3", set.Len())
	}

	// All iterates in canonical category order, insertion order within
	all := set.All()
	if len(all) != 3 {
		t.Fatalf("All returned %d claims", len(all))
	}
	if all[0].Text != "a" || all[1].Text != "b" || all[2].Text != "c" {
		t.Errorf("unexpected order: %v", all)
	}
}
