package journey

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/sync/errgroup"
)

// Source is one external ticket source reached through the tool-invocation
// boundary. Ready reports whether the source's session is established;
// Search runs one leg query and returns the parsed offers.
type Source interface {
	Name() string
	Ready() error
	Search(ctx context.Context, from, to, date string) ([]Offer, error)
}

// Warmer is implemented by sources that need a throwaway first call to
// settle session state (cookies, interactive verification) before a batch.
type Warmer interface {
	Warmup(ctx context.Context) error
}

// ExecutorConfig carries the concurrency tunables. Train concurrency is
// deliberately capped below the official source's throttle threshold;
// flights are always serialized because the scraping-backed source keeps
// per-session state that is unsafe to share across concurrent calls.
// Per-call timeouts live in the sources themselves.
type ExecutorConfig struct {
	TrainConcurrency int
	TrainRateRPS     int
}

const defaultTrainConcurrency = 5

// Executor fans leg queries out to both sources and joins them into a
// complete result map: every planned query gets exactly one result, whether
// success, empty or error.
type Executor struct {
	Flight   Source
	Train    Source
	Config   ExecutorConfig
	Limiter  *redis_rate.Limiter // optional, paces train queries per source
	Cache    *SegmentCache       // optional
	Log      LogFunc
	Progress ProgressFunc
}

func NewExecutor(flight, train Source, cfg ExecutorConfig) *Executor {
	if cfg.TrainConcurrency <= 0 {
		cfg.TrainConcurrency = defaultTrainConcurrency
	}

	return &Executor{
		Flight: flight,
		Train:  train,
		Config: cfg,
	}
}

// Execute runs the batch. Train legs go through a bounded worker pool,
// flight legs run strictly one at a time after a single warm-up call.
// trainDate is the (possibly clamped) date used for train queries; flight
// queries always use the date on their key. Cancellation via ctx marks the
// undispatched remainder as errors instead of blocking; combination can
// still run over whatever completed.
func (e *Executor) Execute(ctx context.Context, queries []SegmentQuery, trainDate string) map[SegmentKey]SegmentResult {
	results := make(map[SegmentKey]SegmentResult, len(queries))

	var (
		mu        sync.Mutex
		completed int
	)

	record := func(q SegmentQuery, res SegmentResult) {
		mu.Lock()
		results[q.Key] = res
		completed++
		current := completed
		mu.Unlock()

		e.logf("[%s %s->%s] %s (%.1fs)",
			q.Key.Mode, q.Key.From, q.Key.To, res.Status, res.Elapsed.Seconds())

		if e.Progress != nil {
			e.Progress(current, len(queries), fmt.Sprintf("%s->%s", q.Key.From, q.Key.To))
		}
	}

	var flightQueries, trainQueries []SegmentQuery

	for _, q := range queries {
		if q.Key.Mode == ModeFlight {
			flightQueries = append(flightQueries, q)
		} else {
			trainQueries = append(trainQueries, q)
		}
	}

	e.logf("executing %d queries (%d flight serialized, %d train pooled)",
		len(queries), len(flightQueries), len(trainQueries))

	e.runTrainBatch(ctx, trainQueries, trainDate, record)
	e.runFlightBatch(ctx, flightQueries, record)

	return results
}

func (e *Executor) runTrainBatch(ctx context.Context, queries []SegmentQuery, trainDate string, record func(SegmentQuery, SegmentResult)) {
	if len(queries) == 0 {
		return
	}

	if err := e.Train.Ready(); err != nil {
		e.logf("train source unavailable, skipping %d queries: %v", len(queries), err)

		for _, q := range queries {
			record(q, errorResult(q, fmt.Sprintf("source unavailable: %v", err)))
		}

		return
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.Config.TrainConcurrency)

	for _, q := range queries {
		q := q
		if ctx.Err() != nil {
			record(q, errorResult(q, "canceled before dispatch"))

			continue
		}

		group.Go(func() error {
			if err := e.waitTrainSlot(groupCtx); err != nil {
				record(q, errorResult(q, fmt.Sprintf("canceled: %v", err)))

				return nil //nolint:nilerr // per-leg failures never abort the batch
			}

			res := e.runQuery(groupCtx, e.Train, q, trainDate)
			res.DateAdjusted = trainDate != q.Key.Date
			record(q, res)

			return nil
		})
	}

	_ = group.Wait()
}

func (e *Executor) runFlightBatch(ctx context.Context, queries []SegmentQuery, record func(SegmentQuery, SegmentResult)) {
	if len(queries) == 0 {
		return
	}

	if err := e.Flight.Ready(); err != nil {
		e.logf("flight source unavailable, skipping %d queries: %v", len(queries), err)

		for _, q := range queries {
			record(q, errorResult(q, fmt.Sprintf("source unavailable: %v", err)))
		}

		return
	}

	degraded := false

	if warmer, ok := e.Flight.(Warmer); ok {
		if err := warmer.Warmup(ctx); err != nil {
			// proceed anyway: warm-up failure usually means the
			// verification step was not completed, results may be thin
			degraded = true

			e.logf("flight warm-up failed, results may be degraded: %v", err)
			slog.WarnContext(ctx, "flight warm-up failed",
				slog.String("error", err.Error()))
		}
	}

	for _, q := range queries {
		if ctx.Err() != nil {
			record(q, errorResult(q, "canceled before dispatch"))

			continue
		}

		res := e.runQuery(ctx, e.Flight, q, q.Key.Date)
		res.Degraded = degraded
		record(q, res)
	}
}

// runQuery executes a single leg query against one source, consulting the
// segment cache first. effectiveDate is the date actually sent to the
// source; the result stays keyed by the planned query key.
func (e *Executor) runQuery(ctx context.Context, src Source, q SegmentQuery, effectiveDate string) SegmentResult {
	cacheKey := q.Key
	cacheKey.Date = effectiveDate

	if e.Cache != nil {
		if cached, err := e.Cache.Get(ctx, cacheKey); err == nil {
			cached.Key = q.Key
			cached.CacheHit = true

			return cached
		}
	}

	start := time.Now()

	offers, err := src.Search(ctx, q.Key.From, q.Key.To, effectiveDate)

	res := SegmentResult{
		Key:     q.Key,
		Elapsed: time.Since(start),
	}

	switch {
	case err != nil:
		res.Status = StatusError
		res.Error = err.Error()
	case len(offers) == 0:
		res.Status = StatusEmpty
	default:
		res.Status = StatusSuccess
		res.Offers = offers
	}

	if e.Cache != nil && res.Status != StatusError {
		e.storeResult(ctx, cacheKey, res)
	}

	return res
}

func (e *Executor) storeResult(ctx context.Context, key SegmentKey, res SegmentResult) {
	acquired, err := e.Cache.AcquireLock(ctx, key)
	if err != nil || !acquired {
		return
	}
	defer e.Cache.ReleaseLock(ctx, key)

	if err := e.Cache.Set(ctx, key, res); err != nil {
		slog.WarnContext(ctx, "failed to cache segment result",
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
	}
}

// waitTrainSlot blocks until the shared rate limiter admits one more train
// query, keeping aggregate request rate under the provider threshold even
// when several planner batches run side by side.
func (e *Executor) waitTrainSlot(ctx context.Context) error {
	if e.Limiter == nil || e.Config.TrainRateRPS <= 0 {
		return nil
	}

	limitKey := fmt.Sprintf("limit:%s", e.Train.Name())

	for {
		res, err := e.Limiter.Allow(ctx, limitKey, redis_rate.PerSecond(e.Config.TrainRateRPS))
		if err != nil {
			// limiter backend down: degrade to the pool bound alone
			return nil //nolint:nilerr
		}

		if res.Allowed > 0 {
			return nil
		}

		select {
		case <-time.After(res.RetryAfter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (e *Executor) logf(format string, args ...any) {
	if e.Log != nil {
		e.Log(fmt.Sprintf(format, args...))
	}
}

func errorResult(q SegmentQuery, msg string) SegmentResult {
	return SegmentResult{
		Key:    q.Key,
		Status: StatusError,
		Error:  msg,
	}
}
