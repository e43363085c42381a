package trainsource

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
)

// trainRow tolerates the field spellings the tool has used across versions.
type trainRow struct {
	TrainNo     string `json:"train_no"`
	TrainNoAlt  string `json:"trainNo"`
	StartTime   string `json:"departure_time"`
	StartAlt    string `json:"startTime"`
	ArriveTime  string `json:"arrival_time"`
	ArriveAlt   string `json:"arriveTime"`
	RunTime     string `json:"duration"`
	RunTimeAlt  string `json:"runTime"`
	DayDiff     int    `json:"dayDiff"`
	FromStation string `json:"fromStation"`
	ToStation   string `json:"toStation"`

	BusinessSeat json.RawMessage `json:"businessSeat"`
	FirstSeat    json.RawMessage `json:"firstSeat"`
	SecondSeat   json.RawMessage `json:"secondSeat"`
	SoftSleeper  json.RawMessage `json:"softSleeper"`
	HardSleeper  json.RawMessage `json:"hardSleeper"`
	SoftSeat     json.RawMessage `json:"softSeat"`
	HardSeat     json.RawMessage `json:"hardSeat"`
	NoSeat       json.RawMessage `json:"noSeat"`
	Price        json.RawMessage `json:"price"`
}

type trainEnvelope struct {
	Trains []trainRow      `json:"trains"`
	Data   json.RawMessage `json:"data"`
}

var (
	digitPattern = regexp.MustCompile(`(\d+)`)
	timePattern  = regexp.MustCompile(`(\d{1,2}:\d{2})`)

	// fallback for plain-text payloads: "G1234 08:00 - 12:30 ¥553"
	trainLinePattern = regexp.MustCompile(`([GDCKTZ]\d{1,4})\s+(\d{1,2}:\d{2})\D*(\d{1,2}:\d{2})[^\d¥￥]*[¥￥]?(\d+)`)

	hoursPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m`)
)

// trainTypes maps the leading letter of a train number to its service
// class label.
var trainTypes = map[byte]string{
	'G': "high-speed",
	'D': "bullet",
	'C': "intercity",
	'K': "fast",
	'T': "express",
	'Z': "direct express",
}

// ParseOffers extracts train offers from a tool payload. The offer price is
// the lowest available seat class; all per-class prices are kept alongside.
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

func decodeRows(payload string) ([]trainRow, bool) {
	trimmed := strings.TrimSpace(payload)

	var rows []trainRow
	if err := json.Unmarshal([]byte(trimmed), &rows); err == nil {
		return rows, true
	}

	var envelope trainEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, false
	}

	if len(envelope.Trains) > 0 {
		return envelope.Trains, true
	}

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &rows); err == nil {
			return rows, true
		}
	}

	return nil, false
}

func rowToOffer(row trainRow) (journey.Offer, bool) {
	trainNo := firstOf(row.TrainNo, row.TrainNoAlt)
	if trainNo == "" {
		return journey.Offer{}, false
	}

	depTime := cleanTime(firstOf(row.StartTime, row.StartAlt))
	arrTime := cleanTime(firstOf(row.ArriveTime, row.ArriveAlt))

	if depTime == "" || arrTime == "" {
		return journey.Offer{}, false
	}

	seatPrices := map[string]int{}
	lowest := 0

	seatClasses := []struct {
		name string
		raw  json.RawMessage
	}{
		{"second_class", row.SecondSeat},
		{"first_class", row.FirstSeat},
		{"business_class", row.BusinessSeat},
		{"soft_sleeper", row.SoftSleeper},
		{"hard_sleeper", row.HardSleeper},
		{"soft_seat", row.SoftSeat},
		{"hard_seat", row.HardSeat},
		{"standing", row.NoSeat},
	}

	for _, class := range seatClasses {
		price := parsePrice(class.raw)
		if price <= 0 {
			continue
		}

		seatPrices[class.name] = price

		if lowest == 0 || price < lowest {
			lowest = price
		}
	}

	if lowest == 0 {
		lowest = parsePrice(row.Price)
	}

	if len(seatPrices) == 0 {
		seatPrices = nil
	}

	return journey.Offer{
		ID:              trainNo,
		Mode:            journey.ModeTrain,
		Carrier:         trainTypes[trainNo[0]],
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		CrossDays:       row.DayDiff,
		DurationMinutes: parseDuration(firstOf(row.RunTime, row.RunTimeAlt)),
		Price:           lowest,
		DepartureStop:   row.FromStation,
		ArrivalStop:     row.ToStation,
		SeatPrices:      seatPrices,
	}, true
}

func parseText(payload string) []journey.Offer {
	matches := trainLinePattern.FindAllStringSubmatch(payload, -1)

	offers := make([]journey.Offer, 0, len(matches))

	for _, m := range matches {
		price, _ := strconv.Atoi(m[4])

		offers = append(offers, journey.Offer{
			ID:            m[1],
			Mode:          journey.ModeTrain,
			Carrier:       trainTypes[m[1][0]],
			DepartureTime: padTime(m[2]),
			ArrivalTime:   padTime(m[3]),
			Price:         price,
		})
	}

	return offers
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func cleanTime(raw string) string {
	m := timePattern.FindString(raw)
	if m == "" {
		return ""
	}

	return padTime(m)
}

func padTime(clock string) string {
	if len(clock) == 4 {
		return "0" + clock
	}

	return clock
}

// parsePrice accepts numeric and string prices, ignoring placeholders such
// as "--".
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

// parseDuration reads "5h 32m" style run times. The tool sometimes emits
// "05:32" instead, treat that as hours and minutes too.
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

	if total > 0 {
		return total
	}

	if m := timePattern.FindString(raw); m != "" {
		parts := strings.SplitN(m, ":", 2)
		h, _ := strconv.Atoi(parts[0])
		mins, _ := strconv.Atoi(parts[1])

		return h*60 + mins
	}

	return 0
}
