package journey

import (
	"github.com/ravindrad/journey-planner-service/internal/pkg/hub"
)

// Planner expands a travel request into the set of single-leg queries that
// cover the direct connection and every hub detour. It consults the hub
// registry to suppress train legs that touch cities outside the domestic
// rail network.
type Planner struct {
	registry *hub.Registry
}

func NewPlanner(registry *hub.Registry) *Planner {
	return &Planner{registry: registry}
}

// Plan returns the deduplicated query set for one request. For every hub it
// emits origin→hub and hub→destination once per enabled mode, so a single
// hub can back four mode pairs (flight+flight, flight+train, train+flight,
// train+train). Identical legs required by several candidate routes appear
// once. Order is deterministic: direct legs first, then hubs in the given
// order, flight before train.
func (p *Planner) Plan(origin, destination, date string, hubs []string, includeDirect bool, filter hub.Filter) []SegmentQuery {
	seen := make(map[SegmentKey]struct{})
	queries := make([]SegmentQuery, 0, 2+4*len(hubs))

	add := func(from, to string, mode TransportMode) {
		key := SegmentKey{From: from, To: to, Mode: mode, Date: date}
		if _, dup := seen[key]; dup {
			return
		}

		seen[key] = struct{}{}
		queries = append(queries, SegmentQuery{Key: key})
	}

	addLeg := func(from, to string) {
		for _, mode := range p.availableModes(from, to, filter) {
			add(from, to, mode)
		}
	}

	if includeDirect {
		addLeg(origin, destination)
	}

	for _, h := range hubs {
		if h == origin || h == destination {
			continue
		}

		addLeg(origin, h)
		addLeg(h, destination)
	}

	return queries
}

// availableModes applies the transport filter plus the hard constraint that
// train legs need both endpoints on the domestic rail network.
func (p *Planner) availableModes(from, to string, filter hub.Filter) []TransportMode {
	modes := make([]TransportMode, 0, 2)

	if filter == hub.FilterAny || filter == hub.FilterFlight {
		modes = append(modes, ModeFlight)
	}

	if filter == hub.FilterAny || filter == hub.FilterTrain {
		if p.registry.IsDomestic(from) && p.registry.IsDomestic(to) {
			modes = append(modes, ModeTrain)
		}
	}

	return modes
}
