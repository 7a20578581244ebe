// Command adjudicate resolves a single Diplomacy movement turn from a DFEN
// game state and a set of DSON order lines, printing the result as JSON.
//
// It exercises nothing but the core: no database, no server, no bot. It
// exists so the CSP core can be driven end to end from the command line for
// manual testing and for piping into the display/visualiser/save-loader
// collaborators the core itself never talks to.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dipcsp/adjudicator/pkg/diplomacy"
)

// powerOrdersFlag collects repeated -orders POWER=DSON flag values.
type powerOrdersFlag map[diplomacy.Power]string

func (f powerOrdersFlag) String() string { return "" }

func (f powerOrdersFlag) Set(s string) error {
	power, dson, ok := splitOnce(s, '=')
	if !ok {
		return fmt.Errorf("expected POWER=DSON, got %q", s)
	}
	f[diplomacy.Power(power)] = dson
	return nil
}

func splitOnce(s string, sep byte) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// turnOutput is the JSON shape printed on success.
type turnOutput struct {
	Orders    []diplomacy.ResolvedOrder `json:"orders"`
	Executed  []string                  `json:"executed_dson"`
	Dislodged []diplomacy.DislodgedUnit `json:"dislodged"`
	State     string                    `json:"dfen"`
}

func main() {
	var (
		dfen    string
		verbose bool
	)
	orders := make(powerOrdersFlag)

	flag.StringVar(&dfen, "state", "", "DFEN game state (required)")
	flag.Var(orders, "orders", "POWER=DSON order line, repeatable")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	diplomacy.SetLogger(diplomacy.NewDevelopmentLogger(level))

	if dfen == "" {
		fmt.Fprintln(os.Stderr, "adjudicate: -state is required")
		os.Exit(2)
	}

	if err := run(dfen, orders); err != nil {
		fmt.Fprintf(os.Stderr, "adjudicate: %v\n", err)
		os.Exit(1)
	}
}

func run(dfen string, orders powerOrdersFlag) error {
	gs, err := diplomacy.DecodeDFEN(dfen)
	if err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}
	m := diplomacy.StandardMap()

	var all []diplomacy.Order
	for power, dson := range orders {
		parsed, err := diplomacy.ParseDSONToOrders(dson, power)
		if err != nil {
			return fmt.Errorf("parsing orders for %s: %w", power, err)
		}
		all = append(all, parsed...)
	}

	defaulted, voided := diplomacy.ValidateAndDefaultOrders(all, gs, m)
	for _, v := range voided {
		diplomacy.Logger.Warn().Str("order", v.Order.Describe()).Msg("order_voided_at_validation")
	}

	results, dislodged, err := diplomacy.Resolve(defaulted, gs, m)
	if err != nil {
		return fmt.Errorf("resolving turn: %w", err)
	}

	diplomacy.ApplyResolution(gs, m, results, dislodged)
	diplomacy.AdvanceState(gs, len(dislodged) > 0)

	executed := make([]string, len(results))
	for i, ro := range results {
		executed[i] = diplomacy.FormatDSON([]diplomacy.DSONOrder{diplomacy.OrderToDSON(ro.Order)})
	}

	out := turnOutput{
		Orders:    results,
		Executed:  executed,
		Dislodged: dislodged,
		State:     diplomacy.EncodeDFEN(gs),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
