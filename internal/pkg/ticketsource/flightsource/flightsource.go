// Package flightsource adapts the browser-automation flight search tool to
// the leg query interface. The tool scrapes a booking site behind the
// scenes, so the source is strictly single-session: one warm-up call first
// to settle cookies and any human verification, then serialized queries with
// retries for the empty responses its anti-bot countermeasures produce.
package flightsource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource"
)

const (
	searchTool = "flight_searchFlightRoutes"

	defaultCallTimeout   = 120 * time.Second
	defaultWarmupTimeout = 150 * time.Second
	defaultMaxRetries    = 2

	// one call per interval, the scraper misbehaves when driven faster
	// than a human would browse
	defaultPacingInterval = 2 * time.Second
)

// Source queries flights through a tool session.
type Source struct {
	invoker ticketsource.ToolInvoker
	cfg     ticketsource.Config
	pacer   *rate.Limiter

	mu       sync.Mutex
	warmedUp bool
}

func NewSource(invoker ticketsource.ToolInvoker, cfg ticketsource.Config) *Source {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}

	if cfg.WarmupTimeout <= 0 {
		cfg.WarmupTimeout = defaultWarmupTimeout
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.PacingInterval <= 0 {
		cfg.PacingInterval = defaultPacingInterval
	}

	return &Source{
		invoker: invoker,
		cfg:     cfg,
		pacer:   rate.NewLimiter(rate.Every(cfg.PacingInterval), 1),
	}
}

func (s *Source) Name() string {
	return "flight"
}

func (s *Source) Ready() error {
	return s.invoker.Ready()
}

// Warmup issues one throwaway search to trigger the verification flow
// before a batch. The generous timeout leaves room for a human to complete
// a challenge in the spawned browser. Warmup runs at most once per source.
func (s *Source) Warmup(ctx context.Context) error {
	s.mu.Lock()
	if s.warmedUp {
		s.mu.Unlock()

		return nil
	}
	s.mu.Unlock()

	if err := s.invoker.Ready(); err != nil {
		return err
	}

	warmCtx, cancel := context.WithTimeout(ctx, s.cfg.WarmupTimeout)
	defer cancel()

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	slog.InfoContext(ctx, "warming up flight source",
		slog.String("date", date))

	payload, err := s.invoker.Invoke(warmCtx, searchTool, ticketsource.FlightSearchArgs{
		DepartureCity:   "Beijing",
		DestinationCity: "Shanghai",
		DepartureDate:   date,
	})
	if err != nil {
		return fmt.Errorf("warm-up call: %w", err)
	}

	if !ticketsource.ValidResponse(payload) {
		return fmt.Errorf("warm-up: %w", ticketsource.ErrInvalidResponse)
	}

	s.mu.Lock()
	s.warmedUp = true
	s.mu.Unlock()

	return nil
}

// Search runs one flight leg query. Invalid and zero-offer payloads are
// retried, they usually mean the scraper hit a countermeasure rather than a
// genuinely empty route.
func (s *Source) Search(ctx context.Context, from, to, date string) ([]journey.Offer, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		if attempt > 0 {
			slog.DebugContext(ctx, "retrying flight query",
				slog.String("from", from),
				slog.String("to", to),
				slog.Int("attempt", attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		payload, err := s.invoker.Invoke(callCtx, searchTool, ticketsource.FlightSearchArgs{
			DepartureCity:   from,
			DestinationCity: to,
			DepartureDate:   date,
		})
		cancel()

		if err != nil {
			lastErr = err

			continue
		}

		if !ticketsource.ValidResponse(payload) {
			lastErr = ticketsource.ErrInvalidResponse

			continue
		}

		offers := ParseOffers(payload)
		if len(offers) == 0 {
			lastErr = fmt.Errorf("no flights in response")

			continue
		}

		return offers, nil
	}

	return nil, fmt.Errorf("flight query %s->%s failed after %d retries: %w",
		from, to, s.cfg.MaxRetries, lastErr)
}
