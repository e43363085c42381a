//go:build unit

package journey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRank(t *testing.T) {
	routes := []Route{
		{Legs: []Leg{{Offer: Offer{ID: "slow-cheap"}}}, RealCost: 500, DurationMinutes: 900},
		{Legs: []Leg{{Offer: Offer{ID: "fast-pricey"}}}, RealCost: 1800, DurationMinutes: 150},
		{Legs: []Leg{{Offer: Offer{ID: "middle"}}}, RealCost: 900, DurationMinutes: 400},
	}

	rankRequest := func(priority Priority, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			// Copy to avoid shared state
			rCopy := make([]Route, len(routes))
			copy(rCopy, routes)

			got := Rank(rCopy, priority)
			gotIDs := make([]string, len(got))
			for i, r := range got {
				gotIDs[i] = r.Legs[0].ID
			}

			diff := cmp.Diff(wantIDs, gotIDs)
			if diff != "" {
				t.Fatalf("Rank(%s) mismatch (-want +got):\n%s", priority, diff)
			}
		}
	}

	t.Run("default_cheapest", rankRequest("", []string{"slow-cheap", "middle", "fast-pricey"}))
	t.Run("cheapest", rankRequest(PriorityCheapest, []string{"slow-cheap", "middle", "fast-pricey"}))
	t.Run("fastest", rankRequest(PriorityFastest, []string{"fast-pricey", "middle", "slow-cheap"}))
	t.Run("balanced_prefers_middle_ground", rankRequest(PriorityBalanced,
		[]string{"middle", "slow-cheap", "fast-pricey"}))
}

func TestRank_CheapestTiebreakByDuration(t *testing.T) {
	routes := []Route{
		{Legs: []Leg{{Offer: Offer{ID: "a"}}}, RealCost: 500, DurationMinutes: 300},
		{Legs: []Leg{{Offer: Offer{ID: "b"}}}, RealCost: 500, DurationMinutes: 120},
	}

	got := Rank(routes, PriorityCheapest)

	if got[0].Legs[0].ID != "b" {
		t.Fatalf("expected shorter route first on price tie, got %s", got[0].Legs[0].ID)
	}
}
