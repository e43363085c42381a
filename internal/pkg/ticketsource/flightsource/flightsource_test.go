//go:build unit

package flightsource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource"
)

type fakeInvoker struct {
	mu       sync.Mutex
	calls    int
	readyErr error
	invoke   func(call int, args ticketsource.FlightSearchArgs) (string, error)
}

func (f *fakeInvoker) Ready() error { return f.readyErr }

func (f *fakeInvoker) Invoke(_ context.Context, tool string, args any) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if tool != searchTool {
		return "", errors.New("unexpected tool " + tool)
	}

	return f.invoke(call, args.(ticketsource.FlightSearchArgs))
}

const goodPayload = `[{"flight_no":"CA1501","departure_time":"08:00","arrival_time":"10:15","price":1250}]`

func TestSource_Search(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(_ int, args ticketsource.FlightSearchArgs) (string, error) {
			assert.Equal(t, "Changzhi", args.DepartureCity)
			assert.Equal(t, "Beijing", args.DestinationCity)

			return goodPayload, nil
		},
	}

	src := NewSource(invoker, ticketsource.Config{PacingInterval: time.Millisecond})

	offers, err := src.Search(context.Background(), "Changzhi", "Beijing", "2026-09-01")
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, "CA1501", offers[0].ID)
}

func TestSource_Search_RetriesEmptyResponses(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(call int, _ ticketsource.FlightSearchArgs) (string, error) {
			if call < 3 {
				return `[]`, nil
			}

			return goodPayload, nil
		},
	}

	src := NewSource(invoker, ticketsource.Config{PacingInterval: time.Millisecond})

	offers, err := src.Search(context.Background(), "Changzhi", "Beijing", "2026-09-01")
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, 3, invoker.calls)
}

func TestSource_Search_ExhaustsRetries(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(_ int, _ ticketsource.FlightSearchArgs) (string, error) {
			return "query timed out", nil
		},
	}

	src := NewSource(invoker, ticketsource.Config{PacingInterval: time.Millisecond})

	_, err := src.Search(context.Background(), "Changzhi", "Beijing", "2026-09-01")
	assert.ErrorIs(t, err, ticketsource.ErrInvalidResponse)
	assert.Equal(t, 3, invoker.calls)
}

func TestSource_Warmup(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(_ int, _ ticketsource.FlightSearchArgs) (string, error) {
			return goodPayload, nil
		},
	}

	src := NewSource(invoker, ticketsource.Config{PacingInterval: time.Millisecond})

	assert.NoError(t, src.Warmup(context.Background()))

	// second warm-up is a no-op
	assert.NoError(t, src.Warmup(context.Background()))
	assert.Equal(t, 1, invoker.calls)
}

func TestSource_Warmup_Failure(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(_ int, _ ticketsource.FlightSearchArgs) (string, error) {
			return "", errors.New("browser did not start")
		},
	}

	src := NewSource(invoker, ticketsource.Config{PacingInterval: time.Millisecond})

	assert.Error(t, src.Warmup(context.Background()))

	// a failed warm-up stays failed until it succeeds
	assert.Error(t, src.Warmup(context.Background()))
	assert.Equal(t, 2, invoker.calls)
}
