package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ravindrad/journey-planner-service/internal/app/dto"
)

type PlannerService interface {
	PlanJourney(ctx context.Context, req dto.PlanRequest) (dto.PlanResponse, error)
}

// Endpoints collects every service endpoint exposed over transport.
type Endpoints struct {
	JourneyEndpoint JourneyEndpoint
}

type JourneyEndpoint struct {
	PlanJourney endpoint.Endpoint
}

func MakeJourneyEndpoint(service PlannerService) JourneyEndpoint {
	return JourneyEndpoint{
		PlanJourney: makePlanJourneyEndpoint(service),
	}
}

func makePlanJourneyEndpoint(service PlannerService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.PlanRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		plan, err := service.PlanJourney(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("planner service: %w", err)
		}

		return plan, nil
	}
}
