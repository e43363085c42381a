//go:build unit

package trainsource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
)

func TestParseOffers_JSON(t *testing.T) {
	payload := `{"trains":[
		{"train_no":"G403","departure_time":"08:00","arrival_time":"12:28","duration":"4h 28m",
		 "fromStation":"Beijing West","toStation":"Kunming South",
		 "secondSeat":"553","firstSeat":"885.5","businessSeat":"--"},
		{"trainNo":"Z53","startTime":"21:10","arriveTime":"06:30","runTime":"9h 20m","dayDiff":1,
		 "hardSleeper":280,"softSleeper":430},
		{"secondSeat":"120"}
	]}`

	offers := ParseOffers(payload)

	assert.Len(t, offers, 2)

	g := offers[0]
	assert.Equal(t, "G403", g.ID)
	assert.Equal(t, journey.ModeTrain, g.Mode)
	assert.Equal(t, "high-speed", g.Carrier)
	assert.Equal(t, 553, g.Price) // lowest seat class
	assert.Equal(t, 268, g.DurationMinutes)
	assert.Equal(t, map[string]int{"second_class": 553, "first_class": 885}, g.SeatPrices)
	assert.Equal(t, "Beijing West", g.DepartureStop)

	z := offers[1]
	assert.Equal(t, "Z53", z.ID)
	assert.Equal(t, "direct express", z.Carrier)
	assert.Equal(t, 1, z.CrossDays)
	assert.Equal(t, 280, z.Price)
	assert.Equal(t, map[string]int{"hard_sleeper": 280, "soft_sleeper": 430}, z.SeatPrices)
}

func TestParseOffers_ColonDuration(t *testing.T) {
	payload := `[{"train_no":"D312","departure_time":"09:00","arrival_time":"14:32","duration":"05:32","secondSeat":300}]`

	offers := ParseOffers(payload)

	assert.Len(t, offers, 1)
	assert.Equal(t, 332, offers[0].DurationMinutes)
	assert.Equal(t, "bullet", offers[0].Carrier)
}

func TestParseOffers_TextFallback(t *testing.T) {
	payload := `G403  08:00 - 12:28  ¥553
K604  10:15 - 22:40  156`

	offers := ParseOffers(payload)

	assert.Len(t, offers, 2)
	assert.Equal(t, "G403", offers[0].ID)
	assert.Equal(t, "high-speed", offers[0].Carrier)
	assert.Equal(t, "K604", offers[1].ID)
	assert.Equal(t, "fast", offers[1].Carrier)
	assert.Equal(t, 156, offers[1].Price)
}

func TestParseOffers_Garbage(t *testing.T) {
	assert.Empty(t, ParseOffers("nothing useful"))
}
