package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ravindrad/journey-planner-service/internal/app/dto"
	"github.com/ravindrad/journey-planner-service/internal/pkg/hub"
	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
)

// SegmentExecutor runs one planned query batch and returns a result per key.
type SegmentExecutor interface {
	Execute(ctx context.Context, queries []journey.SegmentQuery, trainDate string) map[journey.SegmentKey]journey.SegmentResult
}

// PlannerService orchestrates one planning request end to end: classify the
// route, select hubs, expand and execute the leg queries, combine them into
// itineraries, rank and summarize.
type PlannerService struct {
	Registry         *hub.Registry
	Planner          *journey.Planner
	Executor         SegmentExecutor
	HubCount         int
	MinBufferMinutes int
	AccommodationFee int
	DigestTopN       int
	Now              func() time.Time
}

func NewPlannerService(registry *hub.Registry, executor SegmentExecutor,
	hubCount, minBufferMinutes, accommodationFee, digestTopN int) *PlannerService {
	return &PlannerService{
		Registry:         registry,
		Planner:          journey.NewPlanner(registry),
		Executor:         executor,
		HubCount:         hubCount,
		MinBufferMinutes: minBufferMinutes,
		AccommodationFee: accommodationFee,
		DigestTopN:       digestTopN,
		Now:              time.Now,
	}
}

// PlanJourney plans a single journey.
// PlanJourney godoc
// @Summary      Plan a journey
// @Tags         Journeys
// @Description  Find direct and one-transfer routes between two cities
// @Param        request  body      dto.PlanRequest  true  "Plan Request"
// @Success      200      {object}  dto.PlanResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/journeys/plan [post]
func (s *PlannerService) PlanJourney(ctx context.Context, req dto.PlanRequest) (dto.PlanResponse, error) {
	startTime := s.Now()

	routeType := s.Registry.Classify(req.Origin, req.Destination)
	filter := transportFilter(req.Transport)

	hubs := s.Registry.Select(routeType, s.hubCount(req), filter, req.Origin, req.Destination)

	trainDate, trainAdjusted := journey.AdjustTrainDate(req.Date, s.Now())

	queries := s.Planner.Plan(req.Origin, req.Destination, req.Date,
		hubs, req.WantsDirect(), filter)

	slog.InfoContext(ctx, "journey plan expanded",
		slog.String("route_type", string(routeType)),
		slog.Int("hubs", len(hubs)),
		slog.Int("queries", len(queries)))

	results := s.Executor.Execute(ctx, queries, trainDate)

	accommodationFee := s.AccommodationFee
	if !req.WantsAccommodation() {
		accommodationFee = 0
	}

	combiner := journey.NewCombiner(journey.CombinerConfig{
		MinBufferMinutes: s.MinBufferMinutes,
		AccommodationFee: accommodationFee,
	})

	routes := combiner.Combine(results, req.Origin, req.Destination, req.Date,
		hubs, req.WantsDirect())

	metadata := buildMetadata(results, trainDate, trainAdjusted)
	metadata.QueriesPlanned = len(queries)
	metadata.SearchTimeMs = int(time.Since(startTime).Milliseconds())

	if len(routes) == 0 {
		return dto.PlanResponse{}, fmt.Errorf("plan %s->%s: %w",
			req.Origin, req.Destination, ErrNoRouteAssembled)
	}

	routes = journey.Rank(routes, journey.Priority(req.Priority))

	digest := journey.BuildDigest(routes, req.Origin, req.Destination, req.Date,
		journey.DigestOptions{
			TopN:           s.DigestTopN,
			RouteType:      routeType.Description(),
			Hubs:           hubs,
			TrainStandIn:   metadata.TrainDateAdjusted,
			FlightDegraded: metadata.FlightDegraded,
			International:  routeType.International(),
		})

	return dto.PlanResponse{
		Request:          req,
		RouteType:        string(routeType),
		RouteDescription: routeType.Description(),
		Hubs:             hubs,
		Routes:           routes,
		Digest:           digest,
		Metadata:         metadata,
		Warnings:         buildWarnings(metadata, routeType),
	}, nil
}

func (s *PlannerService) hubCount(req dto.PlanRequest) int {
	if req.HubCount > 0 {
		return req.HubCount
	}

	return s.HubCount
}

func transportFilter(transport string) hub.Filter {
	switch transport {
	case "flight":
		return hub.FilterFlight
	case "train":
		return hub.FilterTrain
	default:
		return hub.FilterAny
	}
}

func buildMetadata(results map[journey.SegmentKey]journey.SegmentResult,
	trainDate string, trainAdjusted bool) dto.PlanMetadata {
	metadata := dto.PlanMetadata{
		TrainDate:         trainDate,
		TrainDateAdjusted: trainAdjusted,
	}

	for _, res := range results {
		switch res.Status {
		case journey.StatusSuccess:
			metadata.QueriesSucceeded++
		case journey.StatusEmpty:
			metadata.QueriesEmpty++
		default:
			metadata.QueriesFailed++
		}

		if res.CacheHit {
			metadata.CacheHits++
		}

		if res.Degraded {
			metadata.FlightDegraded = true
		}
	}

	return metadata
}

func buildWarnings(metadata dto.PlanMetadata, routeType hub.RouteType) []string {
	var warnings []string

	if routeType.International() {
		warnings = append(warnings,
			"train source only covers the domestic rail network, international legs are flight-only")
	}

	if metadata.TrainDateAdjusted {
		warnings = append(warnings, fmt.Sprintf(
			"requested date is beyond the train booking window, train times come from %s and are indicative",
			metadata.TrainDate))
	}

	if metadata.FlightDegraded {
		warnings = append(warnings,
			"flight source warm-up did not complete, flight coverage may be incomplete")
	}

	if metadata.QueriesFailed > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d of %d leg queries failed, some routes may be missing",
			metadata.QueriesFailed, metadata.QueriesPlanned))
	}

	return warnings
}
