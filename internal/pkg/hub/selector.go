package hub

import "sort"

// Filter restricts which transport modes a journey may use.
type Filter string

const (
	FilterAny    Filter = "any"
	FilterFlight Filter = "flight"
	FilterTrain  Filter = "train"
)

// Allows reports whether the filter permits a hub with the given facilities.
func (f Filter) Allows(hasAirport, hasRail bool) bool {
	switch f {
	case FilterFlight:
		return hasAirport
	case FilterTrain:
		return hasRail
	default:
		return hasAirport || hasRail
	}
}

// Select returns up to count candidate transfer cities for a route,
// ordered by ascending tier and then by fixed registry order. Origin and
// destination are never candidates. On international route types the pool
// is restricted to gateway hubs. Identical inputs always yield identical
// output.
func (r *Registry) Select(routeType RouteType, count int, filter Filter, origin, destination string) []string {
	if count <= 0 {
		return nil
	}

	candidates := make([]Hub, 0, len(r.hubs))

	for _, h := range r.hubs {
		if h.City == origin || h.City == destination {
			continue
		}

		if routeType.International() && !h.International {
			continue
		}

		if !filter.Allows(h.HasAirport, h.HasRail) {
			continue
		}

		candidates = append(candidates, h)
	}

	// registry order is already the intra-tier priority order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Tier < candidates[j].Tier
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	cities := make([]string, len(candidates))
	for i, h := range candidates {
		cities[i] = h.City
	}

	return cities
}
