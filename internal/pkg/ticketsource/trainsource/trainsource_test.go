//go:build unit

package trainsource

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource"
)

type fakeInvoker struct {
	mu       sync.Mutex
	calls    []string
	readyErr error
	invoke   func(tool string, args any) (string, error)
}

func (f *fakeInvoker) Ready() error { return f.readyErr }

func (f *fakeInvoker) Invoke(_ context.Context, tool string, args any) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, tool)
	f.mu.Unlock()

	return f.invoke(tool, args)
}

func TestSource_Search(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(tool string, args any) (string, error) {
			switch tool {
			case stationCodeTool:
				city := args.(ticketsource.StationCodeArgs).Cities
				if city == "Bangkok" {
					return `{}`, nil
				}

				return `{"` + city + `":{"station_code":"` + city[:3] + `"}}`, nil
			case ticketTool:
				return `[{"train_no":"G403","departure_time":"08:00","arrival_time":"12:28","secondSeat":553}]`, nil
			default:
				return "", errors.New("unexpected tool " + tool)
			}
		},
	}

	src := NewSource(invoker, ticketsource.Config{})

	offers, err := src.Search(context.Background(), "Changzhi", "Beijing", "2026-09-01")
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, "G403", offers[0].ID)

	// station codes cached: second search only hits the ticket tool
	callsBefore := len(invoker.calls)
	_, err = src.Search(context.Background(), "Changzhi", "Beijing", "2026-09-01")
	assert.NoError(t, err)
	assert.Equal(t, callsBefore+1, len(invoker.calls))
}

func TestSource_Search_NoStationCode(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(tool string, _ any) (string, error) {
			return `{}`, nil
		},
	}

	src := NewSource(invoker, ticketsource.Config{})

	_, err := src.Search(context.Background(), "Bangkok", "Beijing", "2026-09-01")
	assert.ErrorIs(t, err, ticketsource.ErrNoStationCode)

	// the miss is cached too
	_, err = src.Search(context.Background(), "Bangkok", "Beijing", "2026-09-01")
	assert.ErrorIs(t, err, ticketsource.ErrNoStationCode)
	assert.Len(t, invoker.calls, 1)
}

func TestSource_Search_InvalidPayload(t *testing.T) {
	invoker := &fakeInvoker{
		invoke: func(tool string, args any) (string, error) {
			if tool == stationCodeTool {
				return `{"Changzhi":{"station_code":"CZF"},"Beijing":{"station_code":"BJP"}}`, nil
			}

			return "query timed out", nil
		},
	}

	src := NewSource(invoker, ticketsource.Config{})

	_, err := src.Search(context.Background(), "Changzhi", "Beijing", "2026-09-01")
	assert.ErrorIs(t, err, ticketsource.ErrInvalidResponse)
}
