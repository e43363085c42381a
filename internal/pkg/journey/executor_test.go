//go:build unit

package journey

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	name     string
	readyErr error
	search   func(ctx context.Context, from, to, date string) ([]Offer, error)

	mu    sync.Mutex
	calls []string
	dates []string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Ready() error { return f.readyErr }

func (f *fakeSource) Search(ctx context.Context, from, to, date string) ([]Offer, error) {
	f.mu.Lock()
	f.calls = append(f.calls, from+"->"+to)
	f.dates = append(f.dates, date)
	f.mu.Unlock()

	if f.search != nil {
		return f.search(ctx, from, to, date)
	}

	return []Offer{{ID: "X1", Mode: ModeFlight, DepartureTime: "08:00", ArrivalTime: "10:00", Price: 500}}, nil
}

type warmableSource struct {
	fakeSource

	warmupErr   error
	warmupCalls atomic.Int32
}

func (w *warmableSource) Warmup(_ context.Context) error {
	w.warmupCalls.Add(1)

	return w.warmupErr
}

func testQueries(date string) []SegmentQuery {
	return []SegmentQuery{
		{Key: SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeFlight, Date: date}},
		{Key: SegmentKey{From: "Beijing", To: "Shanghai", Mode: ModeFlight, Date: date}},
		{Key: SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeTrain, Date: date}},
		{Key: SegmentKey{From: "Beijing", To: "Shanghai", Mode: ModeTrain, Date: date}},
	}
}

func TestExecutor_EveryQueryGetsAResult(t *testing.T) {
	flight := &fakeSource{name: "flight"}
	train := &fakeSource{name: "train"}

	executor := NewExecutor(flight, train, ExecutorConfig{TrainConcurrency: 2})

	queries := testQueries("2026-09-01")
	results := executor.Execute(context.Background(), queries, "2026-09-01")

	assert.Len(t, results, len(queries))

	for _, q := range queries {
		res, ok := results[q.Key]
		assert.True(t, ok, "missing result for %s", q.Key)
		assert.Equal(t, StatusSuccess, res.Status)
	}
}

func TestExecutor_ErrorsAbsorbedPerLeg(t *testing.T) {
	flight := &fakeSource{name: "flight"}
	train := &fakeSource{
		name: "train",
		search: func(_ context.Context, from, _, _ string) ([]Offer, error) {
			if from == "Changzhi" {
				return nil, errors.New("boom")
			}

			return nil, nil
		},
	}

	executor := NewExecutor(flight, train, ExecutorConfig{})

	results := executor.Execute(context.Background(), testQueries("2026-09-01"), "2026-09-01")

	assert.Len(t, results, 4)
	assert.Equal(t, StatusError,
		results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeTrain, Date: "2026-09-01"}].Status)
	assert.Equal(t, StatusEmpty,
		results[SegmentKey{From: "Beijing", To: "Shanghai", Mode: ModeTrain, Date: "2026-09-01"}].Status)
	assert.Equal(t, StatusSuccess,
		results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeFlight, Date: "2026-09-01"}].Status)
}

func TestExecutor_UnavailableSourceFailsItsLegsOnly(t *testing.T) {
	flight := &fakeSource{name: "flight", readyErr: errors.New("session not established")}
	train := &fakeSource{name: "train"}

	executor := NewExecutor(flight, train, ExecutorConfig{})

	results := executor.Execute(context.Background(), testQueries("2026-09-01"), "2026-09-01")

	assert.Len(t, results, 4)
	assert.Equal(t, StatusError,
		results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeFlight, Date: "2026-09-01"}].Status)
	assert.Equal(t, StatusSuccess,
		results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeTrain, Date: "2026-09-01"}].Status)
	assert.Empty(t, flight.calls)
}

func TestExecutor_TrainDateAdjustmentFlagged(t *testing.T) {
	flight := &fakeSource{name: "flight"}
	train := &fakeSource{name: "train"}

	executor := NewExecutor(flight, train, ExecutorConfig{})

	results := executor.Execute(context.Background(), testQueries("2026-10-01"), "2026-09-08")

	trainRes := results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeTrain, Date: "2026-10-01"}]
	assert.True(t, trainRes.DateAdjusted)

	flightRes := results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeFlight, Date: "2026-10-01"}]
	assert.False(t, flightRes.DateAdjusted)

	// trains queried at the clamped date, flights at the requested one
	for _, date := range train.dates {
		assert.Equal(t, "2026-09-08", date)
	}

	for _, date := range flight.dates {
		assert.Equal(t, "2026-10-01", date)
	}
}

func TestExecutor_WarmupFailureDegradesFlights(t *testing.T) {
	flight := &warmableSource{
		fakeSource: fakeSource{name: "flight"},
		warmupErr:  errors.New("verification not completed"),
	}
	train := &fakeSource{name: "train"}

	executor := NewExecutor(flight, train, ExecutorConfig{})

	results := executor.Execute(context.Background(), testQueries("2026-09-01"), "2026-09-01")

	flightRes := results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeFlight, Date: "2026-09-01"}]
	assert.Equal(t, StatusSuccess, flightRes.Status)
	assert.True(t, flightRes.Degraded)
	assert.Equal(t, int32(1), flight.warmupCalls.Load())

	trainRes := results[SegmentKey{From: "Changzhi", To: "Beijing", Mode: ModeTrain, Date: "2026-09-01"}]
	assert.False(t, trainRes.Degraded)
}

func TestExecutor_CancellationMarksRemainder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flight := &fakeSource{name: "flight"}
	train := &fakeSource{name: "train"}

	executor := NewExecutor(flight, train, ExecutorConfig{})

	queries := testQueries("2026-09-01")
	results := executor.Execute(ctx, queries, "2026-09-01")

	// still one result per query, none dispatched
	assert.Len(t, results, len(queries))

	for _, res := range results {
		assert.Equal(t, StatusError, res.Status)
	}
}

func TestExecutor_ProgressCallback(t *testing.T) {
	flight := &fakeSource{name: "flight"}
	train := &fakeSource{name: "train"}

	executor := NewExecutor(flight, train, ExecutorConfig{})

	var mu sync.Mutex
	var seen []int

	executor.Progress = func(current, total int, _ string) {
		mu.Lock()
		seen = append(seen, current)
		mu.Unlock()

		assert.Equal(t, 4, total)
	}

	executor.Execute(context.Background(), testQueries("2026-09-01"), "2026-09-01")

	assert.Len(t, seen, 4)
}
