package dto

import (
	"fmt"
	"net/http"

	"github.com/ravindrad/journey-planner-service/internal/pkg/exception"
	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
)

// PlanRequest is the journey planning request body. Transport narrows the
// leg modes considered, priority selects the ranking order.
type PlanRequest struct {
	Origin        string `json:"origin" validate:"required"`
	Destination   string `json:"destination" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Transport     string `json:"transport,omitempty" validate:"omitempty,oneof=any flight train"`
	Priority      string `json:"priority,omitempty" validate:"omitempty,oneof=cheapest fastest balanced"`
	HubCount      int    `json:"hub_count,omitempty" validate:"omitempty,min=1,max=8"`
	IncludeDirect *bool  `json:"include_direct,omitempty"`
	Accommodation *bool  `json:"accommodation,omitempty"`
}

func (p *PlanRequest) Bind(r *http.Request) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (p *PlanRequest) Validate() error {
	if err := ValidateSingleError(p); err != nil {
		return exception.New(http.StatusBadRequest, err.Error())
	}

	if p.Origin == p.Destination {
		return exception.New(http.StatusBadRequest, "origin and destination must differ")
	}

	return nil
}

// WantsDirect reports whether direct connections should be planned,
// defaulting to true.
func (p *PlanRequest) WantsDirect() bool {
	return p.IncludeDirect == nil || *p.IncludeDirect
}

// WantsAccommodation reports whether overnight surcharges should be priced
// into real cost, defaulting to true.
func (p *PlanRequest) WantsAccommodation() bool {
	return p.Accommodation == nil || *p.Accommodation
}

// PlanMetadata summarizes how the query batch went.
type PlanMetadata struct {
	QueriesPlanned    int    `json:"queries_planned"`
	QueriesSucceeded  int    `json:"queries_succeeded"`
	QueriesEmpty      int    `json:"queries_empty"`
	QueriesFailed     int    `json:"queries_failed"`
	CacheHits         int    `json:"cache_hits"`
	SearchTimeMs      int    `json:"search_time_ms"`
	TrainDate         string `json:"train_date,omitempty"`
	TrainDateAdjusted bool   `json:"train_date_adjusted"`
	FlightDegraded    bool   `json:"flight_degraded"`
}

// PlanResponse is the journey planning response.
type PlanResponse struct {
	Request          PlanRequest     `json:"request"`
	RouteType        string          `json:"route_type"`
	RouteDescription string          `json:"route_description"`
	Hubs             []string        `json:"hubs"`
	Routes           []journey.Route `json:"routes"`
	Digest           string          `json:"digest"`
	Metadata         PlanMetadata    `json:"metadata"`
	Warnings         []string        `json:"warnings,omitempty"`
}
