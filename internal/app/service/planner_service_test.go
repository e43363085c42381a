//go:build unit

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ravindrad/journey-planner-service/internal/app/dto"
	"github.com/ravindrad/journey-planner-service/internal/pkg/hub"
	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
)

// fakeExecutor answers every planned query from a canned offer table keyed
// by "from->to:mode".
type fakeExecutor struct {
	offers  map[string][]journey.Offer
	queries []journey.SegmentQuery
}

func (f *fakeExecutor) Execute(_ context.Context, queries []journey.SegmentQuery,
	_ string) map[journey.SegmentKey]journey.SegmentResult {
	f.queries = queries

	results := make(map[journey.SegmentKey]journey.SegmentResult, len(queries))

	for _, q := range queries {
		offers := f.offers[q.Key.From+"->"+q.Key.To+":"+string(q.Key.Mode)]

		res := journey.SegmentResult{Key: q.Key, Status: journey.StatusEmpty}
		if len(offers) > 0 {
			res.Status = journey.StatusSuccess
			res.Offers = offers
		}

		results[q.Key] = res
	}

	return results
}

func testService(executor SegmentExecutor) *PlannerService {
	registry := hub.NewRegistry(
		[]hub.Hub{
			{City: "Beijing", Tier: 1, HasAirport: true, HasRail: true, International: true},
			{City: "Zhengzhou", Tier: 2, HasAirport: true, HasRail: true},
		},
		[]string{"Changzhi", "Shanghai"},
		[]string{"Tokyo"},
	)

	svc := NewPlannerService(registry, executor, 2, 0, 200, 20)
	svc.Now = func() time.Time { return time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC) }

	return svc
}

func TestPlannerService_PlanJourney(t *testing.T) {
	executor := &fakeExecutor{offers: map[string][]journey.Offer{
		"Changzhi->Beijing:train": {
			{ID: "K604", Mode: journey.ModeTrain, DepartureTime: "08:00", ArrivalTime: "12:00", Price: 150},
		},
		"Beijing->Shanghai:flight": {
			{ID: "CA1501", Mode: journey.ModeFlight, DepartureTime: "15:00", ArrivalTime: "17:20", Price: 900},
		},
		"Changzhi->Shanghai:flight": {
			{ID: "MU5138", Mode: journey.ModeFlight, DepartureTime: "08:10", ArrivalTime: "10:25", Price: 1400},
		},
	}}

	svc := testService(executor)

	got, err := svc.PlanJourney(context.Background(), dto.PlanRequest{
		Origin:      "Changzhi",
		Destination: "Shanghai",
		Date:        "2026-09-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "domestic", got.RouteType)
	assert.Equal(t, []string{"Beijing", "Zhengzhou"}, got.Hubs)
	assert.Len(t, got.Routes, 2)

	// default priority is cheapest by real cost: 150+900 beats 1400 direct
	assert.Equal(t, 1050, got.Routes[0].RealCost)
	assert.Equal(t, "train_flight", got.Routes[0].Kind())
	assert.Equal(t, "flight_direct", got.Routes[1].Kind())

	assert.NotEmpty(t, got.Digest)
	assert.Equal(t, len(executor.queries), got.Metadata.QueriesPlanned)
	assert.Equal(t, 3, got.Metadata.QueriesSucceeded)
	assert.False(t, got.Metadata.TrainDateAdjusted)
}

func TestPlannerService_PlanJourney_NoRoutes(t *testing.T) {
	svc := testService(&fakeExecutor{})

	_, err := svc.PlanJourney(context.Background(), dto.PlanRequest{
		Origin:      "Changzhi",
		Destination: "Shanghai",
		Date:        "2026-09-01",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRouteAssembled))
}

func TestPlannerService_PlanJourney_TrainDateClamped(t *testing.T) {
	executor := &fakeExecutor{offers: map[string][]journey.Offer{
		"Changzhi->Shanghai:train": {
			{ID: "G1956", Mode: journey.ModeTrain, DepartureTime: "09:00", ArrivalTime: "15:30", Price: 600},
		},
	}}

	svc := testService(executor)

	got, err := svc.PlanJourney(context.Background(), dto.PlanRequest{
		Origin:      "Changzhi",
		Destination: "Shanghai",
		Date:        "2026-10-01", // beyond today + 14 days
		Transport:   "train",
	})

	assert.NoError(t, err)
	assert.True(t, got.Metadata.TrainDateAdjusted)
	assert.Equal(t, "2026-09-08", got.Metadata.TrainDate)
	assert.NotEmpty(t, got.Warnings)
}

func TestPlannerService_PlanJourney_InternationalSkipsTrains(t *testing.T) {
	executor := &fakeExecutor{offers: map[string][]journey.Offer{
		"Shanghai->Tokyo:flight": {
			{ID: "NH920", Mode: journey.ModeFlight, DepartureTime: "09:30", ArrivalTime: "13:25", Price: 2400},
		},
	}}

	svc := testService(executor)

	got, err := svc.PlanJourney(context.Background(), dto.PlanRequest{
		Origin:      "Shanghai",
		Destination: "Tokyo",
		Date:        "2026-09-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "destination_international", got.RouteType)
	// only gateway hubs qualify
	assert.Equal(t, []string{"Beijing"}, got.Hubs)

	assert.Contains(t, got.Warnings,
		"train source only covers the domestic rail network, international legs are flight-only")
	assert.Contains(t, got.Digest, "Candidate hubs: Beijing")
	assert.Contains(t, got.Digest, "train source only covers the domestic rail network")

	for _, q := range executor.queries {
		if q.Key.To == "Tokyo" {
			assert.Equal(t, journey.ModeFlight, q.Key.Mode)
		}
	}
}

func TestPlannerService_AccommodationDisabled(t *testing.T) {
	executor := &fakeExecutor{offers: map[string][]journey.Offer{
		"Changzhi->Beijing:train": {
			{ID: "K604", Mode: journey.ModeTrain, DepartureTime: "08:00", ArrivalTime: "20:00", Price: 150},
		},
		"Beijing->Shanghai:flight": {
			{ID: "CA1501", Mode: journey.ModeFlight, DepartureTime: "09:00", ArrivalTime: "11:20", Price: 900},
		},
	}}

	svc := testService(executor)

	no := false
	got, err := svc.PlanJourney(context.Background(), dto.PlanRequest{
		Origin:        "Changzhi",
		Destination:   "Shanghai",
		Date:          "2026-09-01",
		IncludeDirect: &no,
		Accommodation: &no,
	})

	assert.NoError(t, err)
	assert.Len(t, got.Routes, 1)
	assert.Zero(t, got.Routes[0].AccommodationFee)
	assert.Equal(t, 1050, got.Routes[0].RealCost)
}
