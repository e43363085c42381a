package journey

import (
	"fmt"
	"strings"

	"github.com/ravindrad/journey-planner-service/internal/pkg/utils"
)

// DigestOptions controls the plain-text summary handed to downstream
// assistants for natural-language recommendation.
type DigestOptions struct {
	TopN          int
	DirectLimit   int
	TransferLimit int

	RouteType string   // classification label printed in the header
	Hubs      []string // transfer hubs the plan considered

	TrainStandIn   bool // train schedules were queried at a clamped date
	FlightDegraded bool // flight source warm-up failed
	International  bool // an endpoint sits outside the domestic rail network
}

const (
	defaultDigestTopN     = 20
	defaultDirectLimit    = 5
	defaultTransferLimit  = 10
	digestRecommendations = `## Recommend from the options above:
1. **Cheapest** - lowest real cost
2. **Fastest** - shortest total duration
3. **Best value** - balanced price and time

Describe the recommended options in natural language, including the exact
flight/train numbers, times and prices.`
)

// BuildDigest renders ranked routes as a structured plain-text report:
// header, direct options, one-transfer options, data caveats, then the
// recommendation prompt. Routes beyond the configured limits are counted
// but not listed.
func BuildDigest(routes []Route, origin, destination, date string, opts DigestOptions) string {
	if opts.TopN <= 0 {
		opts.TopN = defaultDigestTopN
	}

	if opts.DirectLimit <= 0 {
		opts.DirectLimit = defaultDirectLimit
	}

	if opts.TransferLimit <= 0 {
		opts.TransferLimit = defaultTransferLimit
	}

	total := len(routes)
	if len(routes) > opts.TopN {
		routes = routes[:opts.TopN]
	}

	var direct, transfer []Route

	for _, r := range routes {
		if len(r.Legs) == 1 {
			direct = append(direct, r)
		} else {
			transfer = append(transfer, r)
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s -> %s journey options\n\n", date, origin, destination)

	if opts.RouteType != "" {
		fmt.Fprintf(&b, "Route type: %s\n", opts.RouteType)
	}

	if len(opts.Hubs) > 0 {
		fmt.Fprintf(&b, "Candidate hubs: %s\n", strings.Join(opts.Hubs, ", "))
	}

	if opts.RouteType != "" || len(opts.Hubs) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Computed %d feasible option(s), showing %d:\n\n", total, len(routes))

	if len(direct) > 0 {
		b.WriteString("## Direct options\n\n")

		for i, r := range direct {
			if i >= opts.DirectLimit {
				break
			}

			writeRoute(&b, r, i+1)
		}
	}

	if len(transfer) > 0 {
		b.WriteString("## One-transfer options\n\n")

		for i, r := range transfer {
			if i >= opts.TransferLimit {
				break
			}

			writeRoute(&b, r, i+1)
		}
	}

	if opts.International || opts.TrainStandIn || opts.FlightDegraded {
		b.WriteString("## Data caveats\n\n")

		if opts.International {
			b.WriteString("- The train source only covers the domestic rail network; legs touching an international city are flight-only.\n")
		}

		if opts.TrainStandIn {
			b.WriteString("- Train times come from a nearer date inside the booking window; the requested date is beyond it. Treat them as typical schedules, recheck closer to departure.\n")
		}

		if opts.FlightDegraded {
			b.WriteString("- The flight source ran without a completed warm-up; flight coverage may be incomplete.\n")
		}

		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(digestRecommendations)
	b.WriteString("\n")

	return b.String()
}

func writeRoute(b *strings.Builder, r Route, index int) {
	fmt.Fprintf(b, "**Option %d**: %s\n", index, routeDescription(r))
	fmt.Fprintf(b, "- Type: %s\n", r.Kind())

	price := fmt.Sprintf("- Price: %s", utils.FormatYuan(r.TotalPrice))
	if r.AccommodationFee > 0 {
		price += fmt.Sprintf(" (plus %s overnight stay, real cost %s)",
			utils.FormatYuan(r.AccommodationFee), utils.FormatYuan(r.RealCost))
	}

	b.WriteString(price + "\n")
	fmt.Fprintf(b, "- Duration: %s\n", formatMinutes(r.DurationMinutes))

	if len(r.Hubs) > 0 {
		fmt.Fprintf(b, "- Via: %s\n", strings.Join(r.Hubs, " -> "))

		waits := make([]string, 0, len(r.WaitMinutes))
		for _, w := range r.WaitMinutes {
			waits = append(waits, formatMinutes(w))
		}

		fmt.Fprintf(b, "- Transfer wait: %s\n", strings.Join(waits, ", "))
	}

	b.WriteString("- Legs:\n")

	for i, leg := range r.Legs {
		crossDay := ""
		if leg.CrossDays > 0 {
			crossDay = fmt.Sprintf("(+%dd)", leg.CrossDays)
		}

		depStop := leg.DepartureStop
		if depStop == "" {
			depStop = leg.From
		}

		arrStop := leg.ArrivalStop
		if arrStop == "" {
			arrStop = leg.To
		}

		fmt.Fprintf(b, "  %d. [%s] %s: %s(%s) -> %s%s(%s) | %s\n",
			i+1, leg.Mode, leg.ID,
			leg.DepartureTime, depStop,
			leg.ArrivalTime, crossDay, arrStop,
			utils.FormatYuan(leg.Price))
	}

	b.WriteString("\n")
}

func routeDescription(r Route) string {
	parts := make([]string, 0, len(r.Legs)+1)
	parts = append(parts, r.Legs[0].From)

	for _, leg := range r.Legs {
		parts = append(parts, leg.To)
	}

	return strings.Join(parts, " -> ")
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}

	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
