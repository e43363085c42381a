package journey

import (
	"fmt"
	"time"

	"github.com/ravindrad/journey-planner-service/internal/pkg/hub"
)

// TransportMode is a single leg's transport kind.
type TransportMode string

const (
	ModeFlight TransportMode = "flight"
	ModeTrain  TransportMode = "train"
)

// SegmentKey uniquely identifies one directed single-mode leg query.
// Two candidate routes that need the same leg share one key, so the leg is
// queried at most once per batch.
type SegmentKey struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Mode TransportMode `json:"mode"`
	Date string        `json:"date"`
}

func (k SegmentKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.From, k.To, k.Mode, k.Date)
}

// SegmentQuery is one planned leg query.
type SegmentQuery struct {
	Key SegmentKey
}

// SegmentStatus tags the outcome of executing one segment query.
type SegmentStatus string

const (
	StatusSuccess SegmentStatus = "success"
	StatusEmpty   SegmentStatus = "empty"
	StatusError   SegmentStatus = "error"
)

// Offer is one bookable departure on a leg, taken verbatim from a source
// response. Times are wall-clock HH:MM on the queried date; CrossDays
// carries arrivals that roll onto a later calendar day.
type Offer struct {
	ID              string         `json:"id"` // flight or train number
	Mode            TransportMode  `json:"mode"`
	Carrier         string         `json:"carrier,omitempty"`
	DepartureTime   string         `json:"departure_time"`
	ArrivalTime     string         `json:"arrival_time"`
	CrossDays       int            `json:"cross_days,omitempty"`
	DurationMinutes int            `json:"duration_minutes,omitempty"`
	Price           int            `json:"price"` // yuan
	DepartureStop   string         `json:"departure_stop,omitempty"`
	ArrivalStop     string         `json:"arrival_stop,omitempty"`
	SeatPrices      map[string]int `json:"seat_prices,omitempty"` // trains only
}

// DepartureAt anchors the offer's departure on a calendar date.
func (o Offer) DepartureAt(date string) (time.Time, error) {
	return parseDateTime(date, o.DepartureTime)
}

// ArrivalAt anchors the offer's arrival on a calendar date, carrying the
// cross-day count forward.
func (o Offer) ArrivalAt(date string) (time.Time, error) {
	t, err := parseDateTime(date, o.ArrivalTime)
	if err != nil {
		return time.Time{}, err
	}

	return t.AddDate(0, 0, o.CrossDays), nil
}

func parseDateTime(date, clock string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", date, clock, err)
	}

	return t, nil
}

// SegmentResult is the outcome of one segment query. Exactly one result
// exists per distinct key; later consumers look it up, never recompute it.
type SegmentResult struct {
	Key          SegmentKey    `json:"key"`
	Status       SegmentStatus `json:"status"`
	Offers       []Offer       `json:"offers,omitempty"`
	Error        string        `json:"error,omitempty"`
	Elapsed      time.Duration `json:"elapsed,omitempty"`
	DateAdjusted bool          `json:"date_adjusted,omitempty"` // train leg queried at a clamped date
	Degraded     bool          `json:"degraded,omitempty"`      // flight source warm-up failed
	CacheHit     bool          `json:"cache_hit,omitempty"`
}

// Leg is one offer placed on the timeline of a concrete itinerary.
type Leg struct {
	Offer
	From        string    `json:"from"`
	To          string    `json:"to"`
	DepartureAt time.Time `json:"departure_at"`
	ArrivalAt   time.Time `json:"arrival_at"`
}

// Route is a complete origin-to-destination itinerary. It is constructed by
// the combiner and never mutated afterwards.
type Route struct {
	Legs             []Leg    `json:"legs"`
	Hubs             []string `json:"hubs,omitempty"`
	WaitMinutes      []int    `json:"wait_minutes,omitempty"`
	TotalPrice       int      `json:"total_price"`
	DurationMinutes  int      `json:"duration_minutes"`
	AccommodationFee int      `json:"accommodation_fee"`
	RealCost         int      `json:"real_cost"` // price sum plus surcharge
}

// Kind is a short tag such as "flight_direct" or "train_flight".
func (r Route) Kind() string {
	if len(r.Legs) == 1 {
		return string(r.Legs[0].Mode) + "_direct"
	}

	kind := ""
	for i, leg := range r.Legs {
		if i > 0 {
			kind += "_"
		}
		kind += string(leg.Mode)
	}

	return kind
}

// RouteClass groups hubs and transport filters; re-exported so callers of
// this package do not need to import hub directly for common cases.
type RouteClass = hub.RouteType

// LogFunc receives line-oriented progress messages. ProgressFunc is invoked
// after each completed query with (completed, total, description). Both are
// observational only; the caller owns any thread marshalling.
type (
	LogFunc      func(msg string)
	ProgressFunc func(current, total int, description string)
)
