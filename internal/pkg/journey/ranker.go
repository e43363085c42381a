package journey

import (
	"math"
	"sort"
)

// Priority selects how assembled routes are ordered.
type Priority string

const (
	PriorityCheapest Priority = "cheapest"
	PriorityFastest  Priority = "fastest"
	PriorityBalanced Priority = "balanced"
)

// weighted scoring using normalization, same scheme as multi-criteria
// decision analysis: 0 is the best route and 1 the worst
const (
	weightRealCost = 0.6
	weightDuration = 0.3
	weightLegs     = 0.1
)

// Rank sorts routes in place by the given priority. Cheapest orders by real
// cost with duration as tiebreak, fastest the reverse, balanced by a
// weighted normalized score across cost, duration and leg count.
func Rank(routes []Route, priority Priority) []Route {
	switch priority {
	case PriorityFastest:
		sort.SliceStable(routes, func(i, j int) bool {
			if routes[i].DurationMinutes != routes[j].DurationMinutes {
				return routes[i].DurationMinutes < routes[j].DurationMinutes
			}

			return routes[i].RealCost < routes[j].RealCost
		})
	case PriorityBalanced:
		scores := balancedScores(routes)
		sort.SliceStable(routes, func(i, j int) bool {
			return scores[routes[i].key()] < scores[routes[j].key()]
		})
	default:
		sort.SliceStable(routes, func(i, j int) bool {
			if routes[i].RealCost != routes[j].RealCost {
				return routes[i].RealCost < routes[j].RealCost
			}

			return routes[i].DurationMinutes < routes[j].DurationMinutes
		})
	}

	return routes
}

func balancedScores(routes []Route) map[string]float64 {
	costMin, costMax := findCostRange(routes)
	durationMin, durationMax := findDurationRange(routes)
	legsMin, legsMax := findLegsRange(routes)

	scores := make(map[string]float64, len(routes))

	for _, route := range routes {
		costScore := normalizeValue(float64(route.RealCost), costMin, costMax)
		durationScore := normalizeValue(float64(route.DurationMinutes),
			float64(durationMin), float64(durationMax))
		legsScore := normalizeValue(float64(len(route.Legs)),
			float64(legsMin), float64(legsMax))

		scores[route.key()] = weightRealCost*costScore +
			weightDuration*durationScore +
			weightLegs*legsScore
	}

	return scores
}

// key identifies one route within a single ranking pass.
func (r Route) key() string {
	key := ""
	for _, leg := range r.Legs {
		key += leg.From + ":" + leg.To + ":" + leg.ID + ":" + leg.DepartureAt.Format("2006-01-02 15:04") + "|"
	}

	return key
}

func findCostRange(routes []Route) (float64, float64) {
	if len(routes) == 0 {
		return 0, 0
	}

	minCost := math.MaxFloat64
	maxCost := -math.MaxFloat64
	for _, route := range routes {
		if float64(route.RealCost) < minCost {
			minCost = float64(route.RealCost)
		}
		if float64(route.RealCost) > maxCost {
			maxCost = float64(route.RealCost)
		}
	}
	return minCost, maxCost
}

func findDurationRange(routes []Route) (int, int) {
	if len(routes) == 0 {
		return 0, 0
	}

	minDuration := math.MaxInt
	maxDuration := -math.MaxInt
	for _, route := range routes {
		if route.DurationMinutes < minDuration {
			minDuration = route.DurationMinutes
		}
		if route.DurationMinutes > maxDuration {
			maxDuration = route.DurationMinutes
		}
	}
	return minDuration, maxDuration
}

func findLegsRange(routes []Route) (int, int) {
	if len(routes) == 0 {
		return 0, 0
	}

	minLegs := math.MaxInt
	maxLegs := -math.MaxInt
	for _, route := range routes {
		if len(route.Legs) < minLegs {
			minLegs = len(route.Legs)
		}
		if len(route.Legs) > maxLegs {
			maxLegs = len(route.Legs)
		}
	}
	return minLegs, maxLegs
}

func normalizeValue(value float64, min float64, max float64) float64 {
	if max == min {
		return 0
	}

	return (value - min) / (max - min)
}
