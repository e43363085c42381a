package journey

import (
	"time"
)

// CombinerConfig tunes route assembly. MinBufferMinutes is the smallest
// acceptable connection gap at a hub. AccommodationFee is the flat overnight
// surcharge in yuan; zero disables the surcharge entirely.
type CombinerConfig struct {
	MinBufferMinutes int
	AccommodationFee int
}

const (
	// maxWaitHours is the hard feasibility ceiling for one hub connection.
	maxWaitHours = 24

	// connectionDayOffsets is how many extra calendar days after the first
	// leg's arrival we re-anchor the second leg's timetable on. Schedules
	// are treated as date-invariant within this horizon.
	connectionDayOffsets = 2

	// surcharge thresholds, in hours
	overnightWaitHours     = 6
	unconditionalWaitHours = 12

	nightStartHour = 22
	nightEndHour   = 6

	defaultAccommodationFee = 200
)

// Combiner assembles complete routes out of executed segment results. It is
// a pure function of its inputs: no queries, no clocks, no mutation of the
// result map.
type Combiner struct {
	cfg CombinerConfig
}

func NewCombiner(cfg CombinerConfig) *Combiner {
	return &Combiner{cfg: cfg}
}

// Combine builds every feasible route for one request: direct connections
// plus, per hub, all four mode pairings. Legs missing from the result map or
// resolved as empty/error simply yield no routes; nothing fails.
func (c *Combiner) Combine(
	results map[SegmentKey]SegmentResult,
	origin, destination, date string,
	hubs []string,
	includeDirect bool,
) []Route {
	var routes []Route

	modes := []TransportMode{ModeFlight, ModeTrain}

	if includeDirect {
		for _, mode := range modes {
			routes = append(routes, c.directRoutes(results, origin, destination, date, mode)...)
		}
	}

	for _, h := range hubs {
		for _, firstMode := range modes {
			for _, secondMode := range modes {
				routes = append(routes,
					c.hubRoutes(results, origin, h, destination, date, firstMode, secondMode)...)
			}
		}
	}

	return routes
}

func (c *Combiner) directRoutes(
	results map[SegmentKey]SegmentResult,
	origin, destination, date string,
	mode TransportMode,
) []Route {
	offers := usableOffers(results, SegmentKey{From: origin, To: destination, Mode: mode, Date: date})

	routes := make([]Route, 0, len(offers))

	for _, offer := range offers {
		leg, err := placeLeg(offer, origin, destination, date)
		if err != nil {
			continue
		}

		routes = append(routes, Route{
			Legs:            []Leg{leg},
			TotalPrice:      offer.Price,
			DurationMinutes: int(leg.ArrivalAt.Sub(leg.DepartureAt).Minutes()),
			RealCost:        offer.Price,
		})
	}

	return routes
}

// hubRoutes joins one leg pair through a hub. Every first-leg offer is
// paired with every second-leg offer that still connects, so the ranker
// sees the full cross join and can trade cost against duration itself.
func (c *Combiner) hubRoutes(
	results map[SegmentKey]SegmentResult,
	origin, hub, destination, date string,
	firstMode, secondMode TransportMode,
) []Route {
	firstOffers := usableOffers(results, SegmentKey{From: origin, To: hub, Mode: firstMode, Date: date})
	secondOffers := usableOffers(results, SegmentKey{From: hub, To: destination, Mode: secondMode, Date: date})

	if len(firstOffers) == 0 || len(secondOffers) == 0 {
		return nil
	}

	var routes []Route

	for _, first := range firstOffers {
		firstLeg, err := placeLeg(first, origin, hub, date)
		if err != nil {
			continue
		}

		routes = append(routes, c.connections(firstLeg, secondOffers, hub, destination)...)
	}

	return routes
}

// connections pairs a placed first leg with each second-leg offer in turn.
// A timetable entry is re-anchored on the arrival day and up to two days
// after; the earliest anchoring at or past the connection buffer decides
// the pairing, feasible only while the wait stays under the ceiling. Each
// offer pair yields at most one route.
func (c *Combiner) connections(firstLeg Leg, secondOffers []Offer, hub, destination string) []Route {
	var routes []Route

	earliest := firstLeg.ArrivalAt.Add(time.Duration(c.cfg.MinBufferMinutes) * time.Minute)

	for _, second := range secondOffers {
		for offset := 0; offset <= connectionDayOffsets; offset++ {
			anchor := firstLeg.ArrivalAt.AddDate(0, 0, offset).Format(dateLayout)

			secondLeg, err := placeLeg(second, hub, destination, anchor)
			if err != nil {
				break
			}

			if secondLeg.DepartureAt.Before(earliest) {
				continue
			}

			// later anchorings only lengthen the wait
			wait := secondLeg.DepartureAt.Sub(firstLeg.ArrivalAt)
			if wait > maxWaitHours*time.Hour {
				break
			}

			fee := c.accommodationFee(firstLeg.ArrivalAt, secondLeg.DepartureAt)

			routes = append(routes, Route{
				Legs:             []Leg{firstLeg, secondLeg},
				Hubs:             []string{hub},
				WaitMinutes:      []int{int(wait.Minutes())},
				TotalPrice:       firstLeg.Price + secondLeg.Price,
				DurationMinutes:  int(secondLeg.ArrivalAt.Sub(firstLeg.DepartureAt).Minutes()),
				AccommodationFee: fee,
				RealCost:         firstLeg.Price + secondLeg.Price + fee,
			})

			break
		}
	}

	return routes
}

// accommodationFee prices a layover. A wait of six hours or more that
// touches the 22:00 to 06:00 night window needs a room, and any wait of
// twelve hours or more does regardless of when it falls.
func (c *Combiner) accommodationFee(arrival, departure time.Time) int {
	if c.cfg.AccommodationFee <= 0 {
		return 0
	}

	wait := departure.Sub(arrival)

	if wait >= unconditionalWaitHours*time.Hour {
		return c.cfg.AccommodationFee
	}

	if wait >= overnightWaitHours*time.Hour && overlapsNight(arrival, departure) {
		return c.cfg.AccommodationFee
	}

	return 0
}

// overlapsNight walks the wait hour by hour and reports whether any of it
// falls inside the night window.
func overlapsNight(arrival, departure time.Time) bool {
	for t := arrival; t.Before(departure); t = t.Add(time.Hour) {
		h := t.Hour()
		if h >= nightStartHour || h < nightEndHour {
			return true
		}
	}

	return false
}

func usableOffers(results map[SegmentKey]SegmentResult, key SegmentKey) []Offer {
	res, ok := results[key]
	if !ok || res.Status != StatusSuccess {
		return nil
	}

	return res.Offers
}

func placeLeg(offer Offer, from, to, date string) (Leg, error) {
	dep, err := offer.DepartureAt(date)
	if err != nil {
		return Leg{}, err
	}

	arr, err := offer.ArrivalAt(date)
	if err != nil {
		return Leg{}, err
	}

	// occasional bad source rows have arrival before departure with no
	// cross-day marker, treat them as overnight
	if arr.Before(dep) {
		arr = arr.AddDate(0, 0, 1)
	}

	return Leg{
		Offer:       offer,
		From:        from,
		To:          to,
		DepartureAt: dep,
		ArrivalAt:   arr,
	}, nil
}
