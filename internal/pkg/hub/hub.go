package hub

// RouteType describes which side(s) of a journey fall outside the
// domestic rail network.
type RouteType string

const (
	RouteDomestic                 RouteType = "domestic"
	RouteOriginInternational      RouteType = "origin_international"
	RouteDestinationInternational RouteType = "destination_international"
	RouteFullyInternational       RouteType = "fully_international"
)

// Description returns a human readable label used in digests and logs.
func (r RouteType) Description() string {
	switch r {
	case RouteDomestic:
		return "domestic route"
	case RouteOriginInternational:
		return "international origin, domestic destination"
	case RouteDestinationInternational:
		return "domestic origin, international destination"
	case RouteFullyInternational:
		return "fully international route"
	}

	return "unknown route"
}

// International reports whether any endpoint is outside the domestic network.
func (r RouteType) International() bool {
	return r != RouteDomestic
}

// Hub is one candidate transfer city. Tier 1 is the highest priority.
type Hub struct {
	City          string
	Tier          int
	HasAirport    bool
	HasRail       bool
	International bool // usable as a gateway on international route types
}

// Registry is an immutable set of transfer hubs plus the domestic-city
// index used for route classification. Construct it once at startup and
// share it; all methods are read-only.
type Registry struct {
	hubs          []Hub
	domestic      map[string]struct{}
	international map[string]struct{}
}

// NewRegistry builds a registry from explicit reference data. The hub order
// given here is the fixed intra-tier selection order.
func NewRegistry(hubs []Hub, domesticCities, internationalCities []string) *Registry {
	reg := &Registry{
		hubs:          make([]Hub, len(hubs)),
		domestic:      make(map[string]struct{}, len(domesticCities)+len(hubs)),
		international: make(map[string]struct{}, len(internationalCities)),
	}
	copy(reg.hubs, hubs)

	for _, city := range domesticCities {
		reg.domestic[city] = struct{}{}
	}

	// every non-international hub is implicitly a domestic city
	for _, h := range hubs {
		reg.domestic[h.City] = struct{}{}
	}

	for _, city := range internationalCities {
		reg.international[city] = struct{}{}
		delete(reg.domestic, city)
	}

	return reg
}

// IsDomestic reports whether a city belongs to the domestic network.
// Unknown cities are treated as domestic on purpose: the train source can
// reject them later, whereas dropping them up-front would hide small cities
// that simply are not in the reference data.
func (r *Registry) IsDomestic(city string) bool {
	if _, ok := r.international[city]; ok {
		return false
	}

	return true
}

// Classify derives the route type for an origin/destination pair.
func (r *Registry) Classify(origin, destination string) RouteType {
	originDomestic := r.IsDomestic(origin)
	destDomestic := r.IsDomestic(destination)

	switch {
	case originDomestic && destDomestic:
		return RouteDomestic
	case !originDomestic && destDomestic:
		return RouteOriginInternational
	case originDomestic && !destDomestic:
		return RouteDestinationInternational
	default:
		return RouteFullyInternational
	}
}

// Hubs returns the full hub list in registry order.
func (r *Registry) Hubs() []Hub {
	out := make([]Hub, len(r.hubs))
	copy(out, r.hubs)

	return out
}
