// Package ticketsource defines the boundary to external ticket inventory
// tools. Sources speak a tool-call protocol: each query is one named tool
// invocation with typed arguments, answered with a free-form text payload
// that the source-specific packages parse into offers.
package ticketsource

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ToolInvoker executes one named tool call and returns the raw text payload.
// Implementations own transport, framing and timeouts beyond the ctx
// deadline.
type ToolInvoker interface {
	Invoke(ctx context.Context, tool string, args any) (string, error)
	Ready() error
}

var (
	ErrNotReady        = errors.New("ticketsource: session not established")
	ErrInvalidResponse = errors.New("ticketsource: response reports failure")
	ErrNoStationCode   = errors.New("ticketsource: no station code for city")
)

// FlightSearchArgs are the arguments of the flight route search tool.
type FlightSearchArgs struct {
	DepartureCity   string `json:"departure_city"`
	DestinationCity string `json:"destination_city"`
	DepartureDate   string `json:"departure_date"`
}

// StationCodeArgs are the arguments of the station code lookup tool.
type StationCodeArgs struct {
	Cities string `json:"citys"`
}

// TrainTicketArgs are the arguments of the train ticket query tool.
type TrainTicketArgs struct {
	Date        string `json:"date"`
	FromStation string `json:"fromStation"`
	ToStation   string `json:"toStation"`
}

// failureMarkers are substrings that flag a tool payload as an error
// response even when the call itself returned without a transport error.
// The tools report failures inside the payload text rather than the
// protocol envelope.
var failureMarkers = []string{
	"timeout",
	"timed out",
	"error",
	"failed",
	"exception",
	"cannot",
	"not found",
	"no data",
	"unavailable",
	"service not started",
}

// ValidResponse reports whether a payload looks like real inventory rather
// than an in-band error report. Empty payloads are invalid.
func ValidResponse(payload string) bool {
	if strings.TrimSpace(payload) == "" {
		return false
	}

	lowered := strings.ToLower(payload)

	for _, marker := range failureMarkers {
		if strings.Contains(lowered, marker) {
			return false
		}
	}

	return true
}

// Config carries the per-source invocation tunables.
type Config struct {
	CallTimeout    time.Duration
	WarmupTimeout  time.Duration
	MaxRetries     int
	PacingInterval time.Duration
}
