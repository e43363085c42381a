//go:build unit

package journey

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDigest(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	direct := Route{
		Legs: []Leg{{
			Offer: Offer{ID: "MU5138", Mode: ModeFlight, DepartureTime: "08:10",
				ArrivalTime: "10:25", Price: 780},
			From: "Changzhi", To: "Shanghai",
			DepartureAt: day.Add(8 * time.Hour), ArrivalAt: day.Add(10 * time.Hour),
		}},
		TotalPrice: 780, RealCost: 780, DurationMinutes: 135,
	}

	transfer := Route{
		Legs: []Leg{
			{
				Offer: Offer{ID: "K604", Mode: ModeTrain, DepartureTime: "08:00",
					ArrivalTime: "20:00", Price: 150},
				From: "Changzhi", To: "Beijing",
			},
			{
				Offer: Offer{ID: "CA1501", Mode: ModeFlight, DepartureTime: "09:00",
					ArrivalTime: "11:15", CrossDays: 0, Price: 650},
				From: "Beijing", To: "Shanghai",
			},
		},
		Hubs: []string{"Beijing"}, WaitMinutes: []int{780},
		TotalPrice: 800, AccommodationFee: 200, RealCost: 1000, DurationMinutes: 1635,
	}

	t.Run("sections_and_route_details", func(t *testing.T) {
		digest := BuildDigest([]Route{direct, transfer},
			"Changzhi", "Shanghai", "2026-09-01", DigestOptions{
				RouteType: "domestic route",
				Hubs:      []string{"Beijing", "Zhengzhou"},
			})

		assert.Contains(t, digest, "# 2026-09-01 Changzhi -> Shanghai journey options")
		assert.Contains(t, digest, "Route type: domestic route")
		assert.Contains(t, digest, "Candidate hubs: Beijing, Zhengzhou")
		assert.Contains(t, digest, "## Direct options")
		assert.Contains(t, digest, "## One-transfer options")
		assert.Contains(t, digest, "MU5138")
		assert.Contains(t, digest, "- Via: Beijing")
		assert.Contains(t, digest, "¥200 overnight stay, real cost ¥1,000")
		assert.Contains(t, digest, "- Transfer wait: 13h")
		assert.NotContains(t, digest, "Data caveats")
	})

	t.Run("caveats_when_degraded", func(t *testing.T) {
		digest := BuildDigest([]Route{direct}, "Changzhi", "Shanghai", "2026-09-01",
			DigestOptions{TrainStandIn: true, FlightDegraded: true})

		assert.Contains(t, digest, "## Data caveats")
		assert.Contains(t, digest, "booking window")
		assert.Contains(t, digest, "warm-up")
	})

	t.Run("international_train_disclaimer", func(t *testing.T) {
		digest := BuildDigest([]Route{direct}, "Shanghai", "Tokyo", "2026-09-01",
			DigestOptions{
				RouteType:     "domestic origin, international destination",
				International: true,
			})

		assert.Contains(t, digest, "## Data caveats")
		assert.Contains(t, digest, "train source only covers the domestic rail network")
		assert.NotContains(t, digest, "booking window")
	})

	t.Run("top_n_truncates", func(t *testing.T) {
		routes := make([]Route, 30)
		for i := range routes {
			routes[i] = direct
		}

		digest := BuildDigest(routes, "Changzhi", "Shanghai", "2026-09-01",
			DigestOptions{TopN: 10})

		assert.Contains(t, digest, "Computed 30 feasible option(s), showing 10")
		// direct list capped at its own limit
		assert.Equal(t, 5, strings.Count(digest, "**Option "))
	})
}
