// Package trainsource adapts the rail ticket tool to the leg query
// interface. The tool keys queries by telegraph-style station codes rather
// than city names, so the source resolves and caches one code per city.
package trainsource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource"
)

const (
	stationCodeTool = "train_get-station-code-of-citys"
	ticketTool      = "train_get-tickets"

	defaultCallTimeout = 60 * time.Second
)

// Source queries trains through a tool session.
type Source struct {
	invoker ticketsource.ToolInvoker
	cfg     ticketsource.Config

	mu       sync.Mutex
	stations map[string]string // city -> station code, "" means unresolvable
}

func NewSource(invoker ticketsource.ToolInvoker, cfg ticketsource.Config) *Source {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}

	return &Source{
		invoker:  invoker,
		cfg:      cfg,
		stations: make(map[string]string),
	}
}

func (s *Source) Name() string {
	return "train"
}

func (s *Source) Ready() error {
	return s.invoker.Ready()
}

// Search runs one train leg query. Cities without a resolvable station code
// (typically cities outside the rail network) fail fast without hitting the
// ticket tool.
func (s *Source) Search(ctx context.Context, from, to, date string) ([]journey.Offer, error) {
	fromStation, err := s.stationCode(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", from, err)
	}

	toStation, err := s.stationCode(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", to, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	payload, err := s.invoker.Invoke(callCtx, ticketTool, ticketsource.TrainTicketArgs{
		Date:        date,
		FromStation: fromStation,
		ToStation:   toStation,
	})
	if err != nil {
		return nil, err
	}

	if !ticketsource.ValidResponse(payload) {
		return nil, ticketsource.ErrInvalidResponse
	}

	return ParseOffers(payload), nil
}

// stationCode resolves a city to its station code, caching both hits and
// misses so one unresolvable city costs one tool call per batch.
func (s *Source) stationCode(ctx context.Context, city string) (string, error) {
	s.mu.Lock()
	code, cached := s.stations[city]
	s.mu.Unlock()

	if cached {
		if code == "" {
			return "", ticketsource.ErrNoStationCode
		}

		return code, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	payload, err := s.invoker.Invoke(callCtx, stationCodeTool, ticketsource.StationCodeArgs{
		Cities: city,
	})
	if err != nil {
		return "", err
	}

	var stations map[string]struct {
		StationCode string `json:"station_code"`
	}

	if err := json.Unmarshal([]byte(payload), &stations); err != nil {
		return "", fmt.Errorf("decode station codes: %w", err)
	}

	code = stations[city].StationCode

	s.mu.Lock()
	s.stations[city] = code
	s.mu.Unlock()

	if code == "" {
		return "", ticketsource.ErrNoStationCode
	}

	return code, nil
}
