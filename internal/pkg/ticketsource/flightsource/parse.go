package flightsource

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
)

// flightRow tolerates the payload variants the tool emits. Prices sometimes
// arrive as strings with currency symbols, times with cross-day suffixes.
type flightRow struct {
	FlightNo         string          `json:"flight_no"`
	Airline          string          `json:"airline"`
	DepartureTime    string          `json:"departure_time"`
	ArrivalTime      string          `json:"arrival_time"`
	DepartureAirport string          `json:"departure_airport"`
	ArrivalAirport   string          `json:"arrival_airport"`
	Price            json.RawMessage `json:"price"`
	DurationMinutes  int             `json:"duration_minutes"`
	Duration         string          `json:"duration"`
	CrossDays        int             `json:"cross_days"`
}

type flightEnvelope struct {
	Flights []flightRow     `json:"flights"`
	Data    json.RawMessage `json:"data"`
}

var (
	timePattern  = regexp.MustCompile(`(\d{1,2}:\d{2})`)
	digitPattern = regexp.MustCompile(`(\d+)`)

	// fallback for plain-text payloads: "CA1234 08:00 - 11:00 ¥1250"
	flightLinePattern = regexp.MustCompile(`([A-Z]{2}\d{3,4})\s+(\d{1,2}:\d{2})\D*(\d{1,2}:\d{2})[^\d¥￥]*[¥￥]?(\d+)`)

	hoursPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m`)
)

// ParseOffers extracts flight offers from a tool payload. JSON payloads are
// decoded structurally; anything else goes through the line pattern
// fallback so a partially scraped page still yields offers.
func ParseOffers(payload string) []journey.Offer {
	rows, ok := decodeRows(payload)
	if !ok {
		return parseText(payload)
	}

	offers := make([]journey.Offer, 0, len(rows))

	for _, row := range rows {
		offer, ok := rowToOffer(row)
		if !ok {
			continue
		}

		offers = append(offers, offer)
	}

	return offers
}

func decodeRows(payload string) ([]flightRow, bool) {
	trimmed := strings.TrimSpace(payload)

	var rows []flightRow
	if err := json.Unmarshal([]byte(trimmed), &rows); err == nil {
		return rows, true
	}

	var envelope flightEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, false
	}

	if len(envelope.Flights) > 0 {
		return envelope.Flights, true
	}

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &rows); err == nil {
			return rows, true
		}
	}

	return nil, false
}

func rowToOffer(row flightRow) (journey.Offer, bool) {
	if row.FlightNo == "" {
		return journey.Offer{}, false
	}

	depTime := cleanTime(row.DepartureTime)
	arrTime := cleanTime(row.ArrivalTime)

	if depTime == "" || arrTime == "" {
		return journey.Offer{}, false
	}

	crossDays := row.CrossDays
	if crossDays == 0 {
		crossDays = crossDaysFromSuffix(row.ArrivalTime)
	}

	duration := row.DurationMinutes
	if duration == 0 {
		duration = parseDuration(row.Duration)
	}

	return journey.Offer{
		ID:              row.FlightNo,
		Mode:            journey.ModeFlight,
		Carrier:         row.Airline,
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		CrossDays:       crossDays,
		DurationMinutes: duration,
		Price:           parsePrice(row.Price),
		DepartureStop:   row.DepartureAirport,
		ArrivalStop:     row.ArrivalAirport,
	}, true
}

func parseText(payload string) []journey.Offer {
	matches := flightLinePattern.FindAllStringSubmatch(payload, -1)

	offers := make([]journey.Offer, 0, len(matches))

	for _, m := range matches {
		price, _ := strconv.Atoi(m[4])

		offers = append(offers, journey.Offer{
			ID:            m[1],
			Mode:          journey.ModeFlight,
			DepartureTime: padTime(m[2]),
			ArrivalTime:   padTime(m[3]),
			Price:         price,
		})
	}

	return offers
}

func cleanTime(raw string) string {
	m := timePattern.FindString(raw)
	if m == "" {
		return ""
	}

	return padTime(m)
}

// padTime normalizes "8:00" to "08:00".
func padTime(clock string) string {
	if len(clock) == 4 {
		return "0" + clock
	}

	return clock
}

func crossDaysFromSuffix(raw string) int {
	switch {
	case strings.Contains(raw, "+2"):
		return 2
	case strings.Contains(raw, "+1"):
		return 1
	default:
		return 0
	}
}

func parsePrice(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}

	m := digitPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}

	n, _ = strconv.Atoi(m)

	return n
}

func parseDuration(raw string) int {
	total := 0

	if m := hoursPattern.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		total += h * 60
	}

	if m := minutesPattern.FindStringSubmatch(raw); m != nil {
		mins, _ := strconv.Atoi(m[1])
		total += mins
	}

	return total
}
