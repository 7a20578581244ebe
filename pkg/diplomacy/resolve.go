package diplomacy

import (
	"fmt"

	"github.com/dipcsp/adjudicator/internal/csp"
)

// AdjudicationError reports that the CSP encoding of a turn failed to
// settle on exactly one outcome: either no assignment satisfies every
// constraint, or more than one does. Both are encoder defects, never a
// reflection of the submitted game state — a validated (GameState, Orders)
// pair is expected to always yield a unique resolution. Callers should
// treat this as fatal rather than retry with the same input.
type AdjudicationError struct {
	Reason string
	Err    error
}

func (e *AdjudicationError) Error() string {
	return fmt.Sprintf("adjudication failed (%s): %v", e.Reason, e.Err)
}

func (e *AdjudicationError) Unwrap() error { return e.Err }

// Resolve adjudicates a set of validated orders against the game state and
// map. It builds the turn's hypergraph, encodes it as a constraint
// satisfaction problem, solves for the unique satisfying assignment, and
// projects that assignment back into resolved orders and dislodgements.
//
// orders must already be the output of ValidateAndDefaultOrders (one order
// per unit, invalid orders replaced with Hold); Resolve does not validate.
func Resolve(orders []Order, gs *GameState, m *DiplomacyMap) ([]ResolvedOrder, []DislodgedUnit, error) {
	hg := BuildHypergraph(orders, gs, m)
	model, enc := encode(hg, gs, m)

	if e := Logger.Debug(); e.Enabled() {
		for i := range orders {
			e = e.Str(fmt.Sprintf("order_%d", i), orders[i].Describe())
		}
		e.Int("order_count", len(orders)).Msg("solve_start")
	}
	assignment, err := csp.NewSolver(model).Solve()
	if err != nil {
		Logger.Error().Err(err).Msg("solve_failed")
		return nil, nil, &AdjudicationError{Reason: "turn constraint network", Err: err}
	}
	Logger.Debug().Int("variables", len(model.Variables)).Msg("solve_done")

	results, dislodged := projectResults(hg, enc, assignment)
	return results, dislodged, nil
}

// moveSucceeds reports the final resolved value for the move order at
// provIdx, treating a void or nonexistent move as unsuccessful.
func moveSucceeds(hg *Hypergraph, e *encoding, assignment map[int]int, provIdx int16) bool {
	ar := hg.OrderAt(provIdx)
	if ar == nil || ar.Void || ar.Order.Type != OrderMove {
		return false
	}
	id, ok := e.moveVar[provIdx]
	if !ok {
		return false
	}
	return assignment[id] == 1
}

// projectResults converts a solved assignment back into the external
// ResolvedOrder/DislodgedUnit shapes, including dislodgement detection:
// any order whose province was the target of a successful move is
// dislodged unless it was itself a move that got away first.
func projectResults(hg *Hypergraph, e *encoding, assignment map[int]int) ([]ResolvedOrder, []DislodgedUnit) {
	successfulMoves := make(map[string]string)
	for i := range hg.Orders {
		o := &hg.Orders[i]
		if o.Order.Type == OrderMove && moveSucceeds(hg, e, assignment, o.ProvIdx) {
			successfulMoves[o.Order.Target] = o.Order.Location
		}
	}

	results := make([]ResolvedOrder, 0, len(hg.Orders))
	var dislodged []DislodgedUnit

	for i := range hg.Orders {
		o := &hg.Orders[i]
		result := orderOutcome(hg, e, assignment, o)

		if attacker, ok := successfulMoves[o.Order.Location]; ok {
			if o.Order.Type != OrderMove || !moveSucceeds(hg, e, assignment, o.ProvIdx) {
				result = ResultDislodged
				dislodgedUnit := Unit{
					Type:     o.Order.UnitType,
					Power:    o.Order.Power,
					Province: o.Order.Location,
					Coast:    o.Order.Coast,
				}
				Logger.Debug().Stringer("unit", dislodgedUnit).Str("attacker_from", attacker).Msg("unit_dislodged")
				dislodged = append(dislodged, DislodgedUnit{
					Unit:          dislodgedUnit,
					DislodgedFrom: o.Order.Location,
					AttackerFrom:  attacker,
				})
			}
		}

		results = append(results, ResolvedOrder{Order: o.Order, Result: result})
	}

	return results, dislodged
}

func orderOutcome(hg *Hypergraph, e *encoding, assignment map[int]int, o *OrderRef) OrderResult {
	switch o.Order.Type {
	case OrderMove:
		if o.Void {
			return ResultVoid
		}
		if !moveSucceeds(hg, e, assignment, o.ProvIdx) {
			return ResultBounced
		}
	case OrderSupport:
		if o.Void {
			return ResultVoid
		}
		id, ok := e.supportVar[o.ProvIdx]
		if !ok || assignment[id] != 1 {
			return ResultCut
		}
	case OrderConvoy:
		if o.Void {
			return ResultVoid
		}
		id, ok := e.convoyVar[o.ProvIdx]
		if !ok || assignment[id] != 1 {
			return ResultFailed
		}
	}
	return ResultSucceeded
}

// applyUnitKey identifies a unit by power and province for resolution application.
type applyUnitKey struct {
	power    Power
	province string
}

// applyMoveEntry stores the result of a successful move for batch application.
type applyMoveEntry struct {
	target      string
	targetCoast Coast
	clearCoast  bool
}

// ApplyResolution updates the game state based on resolved orders.
// Moves successful units, removes dislodged units from the board.
func ApplyResolution(gs *GameState, m *DiplomacyMap, results []ResolvedOrder, dislodged []DislodgedUnit) {
	dislodgedSet := make(map[applyUnitKey]bool)
	for _, d := range dislodged {
		dislodgedSet[applyUnitKey{d.Unit.Power, d.DislodgedFrom}] = true
	}

	moves := make(map[applyUnitKey]applyMoveEntry)
	for _, ro := range results {
		if ro.Order.Type == OrderMove && ro.Result == ResultSucceeded {
			clearCoast := ro.Order.TargetCoast == NoCoast && !m.HasCoasts(ro.Order.Target)
			moves[applyUnitKey{ro.Order.Power, ro.Order.Location}] = applyMoveEntry{
				target:      ro.Order.Target,
				targetCoast: ro.Order.TargetCoast,
				clearCoast:  clearCoast,
			}
		}
	}
	applyMoves(gs, moves, dislodgedSet, dislodged)
}

// applyMoves applies move updates and removes dislodged units from the game state.
func applyMoves(gs *GameState, moves map[applyUnitKey]applyMoveEntry, dislodgedSet map[applyUnitKey]bool, dislodged []DislodgedUnit) {
	for i := range gs.Units {
		key := applyUnitKey{gs.Units[i].Power, gs.Units[i].Province}
		if mu, ok := moves[key]; ok {
			gs.Units[i].Province = mu.target
			if mu.targetCoast != NoCoast {
				gs.Units[i].Coast = mu.targetCoast
			} else if mu.clearCoast {
				gs.Units[i].Coast = NoCoast
			}
		}
	}

	remaining := gs.Units[:0]
	for _, u := range gs.Units {
		if !dislodgedSet[applyUnitKey{u.Power, u.Province}] {
			remaining = append(remaining, u)
		}
	}
	gs.Units = remaining
	gs.Dislodged = dislodged
}

// Resolver is a reusable order adjudicator for repeated calls in hot loops
// (e.g. bots exploring candidate orders). It reuses its result buffers and
// apply-phase maps across calls; each call still runs the package-level
// Resolve, which builds a fresh hypergraph and constraint model. Allocate
// once with NewResolver and call Resolve repeatedly; the returned slices
// are owned by the Resolver and overwritten on the next call.
type Resolver struct {
	resBuf  []ResolvedOrder
	disBuf  []DislodgedUnit
	lastErr error

	dislodgedSet map[applyUnitKey]bool
	movesMap     map[applyUnitKey]applyMoveEntry
}

// NewResolver creates a reusable resolver. capacity should be the expected
// number of orders per resolution (e.g. 34 for a full board).
func NewResolver(capacity int) *Resolver {
	return &Resolver{
		resBuf:       make([]ResolvedOrder, 0, capacity),
		disBuf:       make([]DislodgedUnit, 0, 4),
		dislodgedSet: make(map[applyUnitKey]bool, 4),
		movesMap:     make(map[applyUnitKey]applyMoveEntry, capacity),
	}
}

// Resolve adjudicates orders and returns resolved results plus dislodged
// units. The returned slices are backed by internal buffers and are valid
// until the next Resolve call. A non-nil error is an AdjudicationError;
// the buffers are left empty in that case.
func (rv *Resolver) Resolve(orders []Order, gs *GameState, m *DiplomacyMap) ([]ResolvedOrder, []DislodgedUnit, error) {
	results, dislodged, err := Resolve(orders, gs, m)
	rv.lastErr = err
	if err != nil {
		rv.resBuf = rv.resBuf[:0]
		rv.disBuf = rv.disBuf[:0]
		return nil, nil, err
	}

	rv.resBuf = append(rv.resBuf[:0], results...)
	rv.disBuf = append(rv.disBuf[:0], dislodged...)
	return rv.resBuf, rv.disBuf, nil
}

// Apply updates the game state using the results from the most recent
// successful Resolve call. Moves successful units and removes dislodged
// units.
func (rv *Resolver) Apply(gs *GameState, m *DiplomacyMap) {
	clear(rv.dislodgedSet)
	clear(rv.movesMap)

	for _, d := range rv.disBuf {
		rv.dislodgedSet[applyUnitKey{d.Unit.Power, d.DislodgedFrom}] = true
	}

	for _, ro := range rv.resBuf {
		if ro.Order.Type == OrderMove && ro.Result == ResultSucceeded {
			clearCoast := ro.Order.TargetCoast == NoCoast && !m.HasCoasts(ro.Order.Target)
			rv.movesMap[applyUnitKey{ro.Order.Power, ro.Order.Location}] = applyMoveEntry{
				target:      ro.Order.Target,
				targetCoast: ro.Order.TargetCoast,
				clearCoast:  clearCoast,
			}
		}
	}
	applyMoves(gs, rv.movesMap, rv.dislodgedSet, rv.disBuf)
}

// HasDislodged returns true if the last Resolve call produced any dislodged units.
func (rv *Resolver) HasDislodged() bool {
	return len(rv.disBuf) > 0
}
