package diplomacy

import (
	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"

	"github.com/dipcsp/adjudicator/internal/csp"
)

// encoding carries the state needed to translate a Hypergraph into a
// csp.Model and back. One encoding is built per Resolve call.
//
// Three families of boolean search variable cover every order on the
// board: moveVar (does this Move succeed), supportVar (does this Support
// survive uncut) and convoyVar (does this Convoy stay undisrupted).
// Strength and hold/prevent computations are not modeled as separate CSP
// variables; they are pure functions of the search variables, evaluated
// ternary-style (unknown/false/true) against whatever the store currently
// knows, so that a constraint can fire as soon as its inputs collapse to a
// single value without having to wait for every variable in the model.
type encoding struct {
	hg *Hypergraph
	gs *GameState
	m  *DiplomacyMap

	moveVar    map[int16]int
	supportVar map[int16]int
	convoyVar  map[int16]int
}

func buildEncoding(hg *Hypergraph, gs *GameState, m *DiplomacyMap) *encoding {
	return &encoding{
		hg:         hg,
		gs:         gs,
		m:          m,
		moveVar:    make(map[int16]int),
		supportVar: make(map[int16]int),
		convoyVar:  make(map[int16]int),
	}
}

// encode builds the csp.Model for hg: one boolean variable per non-void
// Move/Support/Convoy order, plus the constraints (families 1-13 of the
// adjudication rules) tying them together.
func encode(hg *Hypergraph, gs *GameState, m *DiplomacyMap) (*csp.Model, *encoding) {
	e := buildEncoding(hg, gs, m)
	model := csp.NewModel()

	for i := range hg.Orders {
		o := &hg.Orders[i]
		if o.Void {
			continue
		}
		switch o.Order.Type {
		case OrderMove:
			e.moveVar[o.ProvIdx] = model.NewBoolVar("move@" + o.Order.Location)
		case OrderSupport:
			e.supportVar[o.ProvIdx] = model.NewBoolVar("support@" + o.Order.Location)
		case OrderConvoy:
			e.convoyVar[o.ProvIdx] = model.NewBoolVar("convoy@" + o.Order.Location)
		}
	}

	// Branching order follows the dependency direction: a support's
	// cut-status is the least entangled (it depends on moves, never on
	// other supports), convoy activity depends on moves into the
	// convoying fleet's province, and move success depends on both.
	for _, id := range e.supportVar {
		model.Order = append(model.Order, id)
	}
	for _, id := range e.convoyVar {
		model.Order = append(model.Order, id)
	}
	for _, id := range e.moveVar {
		model.Order = append(model.Order, id)
	}

	for provIdx, vid := range e.supportVar {
		model.AddConstraint(&supportCutConstraint{e, provIdx, vid})
	}
	for provIdx, vid := range e.convoyVar {
		model.AddConstraint(&convoyParadoxConstraint{e, provIdx, vid})
		model.AddConstraint(&convoyDisruptionConstraint{e, provIdx, vid})
	}
	for provIdx, vid := range e.moveVar {
		model.AddConstraint(&moveResolutionConstraint{e, provIdx, vid})
	}

	return model, e
}

func (e *encoding) boolVar(store *csp.Store, varID int, known bool) (bool, bool) {
	if !known {
		return false, false
	}
	return store.Bool(varID)
}

// needsConvoy reports whether a move requires a convoy chain: only armies
// moving to a province they are not directly adjacent to.
func (e *encoding) needsConvoy(o Order) bool {
	if o.Type != OrderMove || o.UnitType != Army {
		return false
	}
	return !e.m.Adjacent(o.Location, o.Coast, o.Target, NoCoast, false)
}

// selfPowerBarred reports whether mv is structurally barred from
// attacking its own target at all: an army or fleet may not attack a
// province held by a unit of its own power unless that unit is ordered
// elsewhere (and not simply swapping back into mv's origin).
func (e *encoding) selfPowerBarred(mv *OrderRef) bool {
	occupier := e.gs.UnitAt(mv.Order.Target)
	if occupier == nil || occupier.Power != mv.Order.Power {
		return false
	}
	occOrder := e.hg.OrderAt(mv.TargetIdx)
	if occOrder == nil || occOrder.Order.Type != OrderMove {
		return true
	}
	return occOrder.TargetIdx == mv.ProvIdx
}

// hasConvoyPath ternary-evaluates whether an active convoy chain connects
// o.Location to o.Target, given the convoy orders whose activity is
// already known. Returns (_, false) if some relevant convoy order's
// activity is still undetermined and no path was found among the known
// ones (the absence of a path is not yet provable).
func (e *encoding) hasConvoyPath(store *csp.Store, o Order) (bool, bool) {
	var active []string
	unknownAny := false

	for i := range e.hg.Orders {
		c := &e.hg.Orders[i]
		if c.Void || c.Order.Type != OrderConvoy {
			continue
		}
		if c.Order.AuxLoc != o.Location || c.Order.AuxTarget != o.Target {
			continue
		}
		v, known := e.boolVar(store, e.convoyVar[c.ProvIdx], true)
		if !known {
			unknownAny = true
			continue
		}
		if v {
			active = append(active, c.Order.Location)
		}
	}

	if e.convoyChainExists(o, active) {
		return true, true
	}
	if unknownAny {
		return false, false
	}
	return false, true
}

// convoyChainExists runs a BFS over a subgraph containing only the convoy
// orders already known to be active, from o.Location to o.Target.
func (e *encoding) convoyChainExists(o Order, active []string) bool {
	if len(active) == 0 {
		return false
	}
	activeSet := make(map[string]bool, len(active))
	for _, p := range active {
		activeSet[p] = true
	}

	g := core.NewGraph(core.WithDirected(true))
	g.AddVertex(o.Location)
	g.AddVertex(o.Target)
	for p := range activeSet {
		g.AddVertex(p)
	}
	for p := range activeSet {
		if e.m.Adjacent(o.Location, NoCoast, p, NoCoast, true) {
			g.AddEdge(o.Location, p, 0)
		}
		if e.m.Adjacent(p, NoCoast, o.Target, NoCoast, true) {
			g.AddEdge(p, o.Target, 0)
		}
		for q := range activeSet {
			if q != p && e.m.Adjacent(p, NoCoast, q, NoCoast, true) {
				g.AddEdge(p, q, 0)
			}
		}
	}

	res, err := bfs.BFS(g, o.Location)
	if err != nil {
		return false
	}
	_, reached := res.Depth[o.Target]
	return reached
}

// paradoxEntangled reports whether conv sits at the center of a Szykman
// cycle: the army it carries needs this very convoy, and some support
// stationed exactly at that army's destination backs an attack on conv's
// own province. Disrupting conv would save the support from being cut;
// the support being cut would save conv from the attack it backs. Neither
// branch can be derived from the other by propagation alone.
func (e *encoding) paradoxEntangled(conv *OrderRef) bool {
	carried := e.hg.OrderAt(conv.AuxLocIdx)
	if carried == nil || carried.Order.Type != OrderMove || carried.TargetIdx != conv.AuxTargetIdx {
		return false
	}
	if !e.needsConvoy(carried.Order) {
		return false
	}
	for _, att := range e.hg.Attackers(conv.ProvIdx) {
		for _, s := range e.hg.SupportsOf(att.ProvIdx, conv.ProvIdx) {
			if s.ProvIdx == carried.TargetIdx && s.Order.Power != carried.Order.Power {
				return true
			}
		}
	}
	return false
}

// convoyParadoxConstraint applies the Szykman tiebreak (spec rule: a
// convoy caught in a self-referential disruption/support-cut cycle is
// treated as disrupted). Without it the network admits two internally
// consistent completions and the solver reports them as ambiguous instead
// of resolving the turn.
type convoyParadoxConstraint struct {
	e       *encoding
	provIdx int16
	varID   int
}

func (c *convoyParadoxConstraint) Vars() []int { return []int{c.varID} }

func (c *convoyParadoxConstraint) Revise(store *csp.Store) (bool, bool) {
	if !c.e.paradoxEntangled(c.e.hg.OrderAt(c.provIdx)) {
		return false, true
	}
	return narrowBool(store, c.varID, 0)
}

// attackStrength ternary-evaluates the attack strength of move mv: 1 plus
// every support backing it that is known to remain valid. Returns
// (_, false) if the convoy requirement or any backing support's validity
// is still undetermined.
func (e *encoding) attackStrength(store *csp.Store, mv *OrderRef) (int, bool) {
	if e.selfPowerBarred(mv) {
		return 0, true
	}
	if e.needsConvoy(mv.Order) {
		ok, known := e.hasConvoyPath(store, mv.Order)
		if !known {
			return 0, false
		}
		if !ok {
			return 0, true
		}
	}

	strength := 1
	for _, s := range e.hg.SupportsOf(mv.ProvIdx, mv.TargetIdx) {
		v, known := e.boolVar(store, e.supportVar[s.ProvIdx], true)
		if !known {
			return 0, false
		}
		if v {
			strength++
		}
	}
	return strength, true
}

// holdStrength ternary-evaluates the strength defending a province: 0 if
// it is empty or the unit there is moving away and that move succeeds, 1
// if that move fails, otherwise 1 plus valid hold-supports.
func (e *encoding) holdStrength(store *csp.Store, provIdx int16) (int, bool) {
	ar := e.hg.OrderAt(provIdx)
	if ar == nil {
		return 0, true
	}
	if ar.Order.Type == OrderMove && !ar.Void {
		v, known := e.boolVar(store, e.moveVar[provIdx], true)
		if !known {
			return 0, false
		}
		if v {
			return 0, true
		}
		return 1, true
	}

	strength := 1
	for _, s := range e.hg.SupportsOf(provIdx, -1) {
		v, known := e.boolVar(store, e.supportVar[s.ProvIdx], true)
		if !known {
			return 0, false
		}
		if v {
			strength++
		}
	}
	return strength, true
}

// preventStrength ternary-evaluates the strength with which mv blocks a
// third move into mv's own target. Identical to attackStrength, except
// that in a head-to-head (the unit at mv's target is itself moving back
// into mv's origin) mv only prevents if mv itself wins that battle.
func (e *encoding) preventStrength(store *csp.Store, mv *OrderRef) (int, bool) {
	defender := e.hg.OrderAt(mv.TargetIdx)
	if defender != nil && defender.Order.Type == OrderMove && !defender.Void && defender.TargetIdx == mv.ProvIdx {
		v, known := e.boolVar(store, e.moveVar[mv.ProvIdx], true)
		if !known {
			return 0, false
		}
		if !v {
			return 0, true
		}
	}
	return e.attackStrength(store, mv)
}

// supportCutConstraint pins supportVar[s] to valid(1) unless a qualifying
// attacking move exists (constraint family: support validity/cut,
// exempting the power being supported against and the supporter's own
// power). A convoyed attacker cuts as soon as its convoy path is active
// (attack strength >= 1), whether or not the move goes on to succeed at
// its destination — the cut doesn't wait for the battle there to resolve.
type supportCutConstraint struct {
	e       *encoding
	provIdx int16
	varID   int
}

func (c *supportCutConstraint) Vars() []int {
	ids := []int{c.varID}
	for _, m := range c.e.moveVar {
		ids = append(ids, m)
	}
	for _, cv := range c.e.convoyVar {
		ids = append(ids, cv)
	}
	return ids
}

func (c *supportCutConstraint) Revise(store *csp.Store) (bool, bool) {
	s := c.e.hg.OrderAt(c.provIdx)

	cutFound := false
	inconclusive := false

	for _, other := range c.e.hg.Attackers(c.provIdx) {
		if s.AuxTargetIdx >= 0 && other.ProvIdx == s.AuxTargetIdx {
			continue // cannot be cut by the unit being attacked on its behalf
		}
		if other.Order.Power == s.Order.Power {
			continue // cannot be cut by a unit of the same power
		}
		if c.e.selfPowerBarred(other) {
			continue
		}
		if c.e.needsConvoy(other.Order) {
			ok, known := c.e.hasConvoyPath(store, other.Order)
			if !known {
				inconclusive = true
				continue
			}
			if !ok {
				continue
			}
		}
		cutFound = true
		break
	}

	want := 1
	if cutFound {
		want = 0
	} else if inconclusive {
		return false, true
	}
	return narrowBool(store, c.varID, want)
}

// convoyDisruptionConstraint pins convoyVar[c] to active(1) unless some
// move succeeds into the convoying fleet's own province.
type convoyDisruptionConstraint struct {
	e       *encoding
	provIdx int16
	varID   int
}

func (c *convoyDisruptionConstraint) Vars() []int {
	ids := []int{c.varID}
	for _, m := range c.e.moveVar {
		ids = append(ids, m)
	}
	return ids
}

func (c *convoyDisruptionConstraint) Revise(store *csp.Store) (bool, bool) {
	disrupted := false
	inconclusive := false

	for _, other := range c.e.hg.Attackers(c.provIdx) {
		v, known := c.e.boolVar(store, c.e.moveVar[other.ProvIdx], true)
		if !known {
			inconclusive = true
			continue
		}
		if v {
			disrupted = true
			break
		}
	}

	want := 1
	if disrupted {
		want = 0
	} else if inconclusive {
		return false, true
	}
	return narrowBool(store, c.varID, want)
}

// moveResolutionConstraint pins moveVar[mv] to succeeds(1) iff mv's attack
// strength exceeds the defended hold strength, wins any head-to-head
// battle, and exceeds every other mover's prevent strength at the same
// target (constraint families: strength comparison, head-to-head,
// standoff/bounce, dislodgement).
type moveResolutionConstraint struct {
	e       *encoding
	provIdx int16
	varID   int
}

func (c *moveResolutionConstraint) Vars() []int {
	ids := []int{c.varID}
	for _, m := range c.e.moveVar {
		ids = append(ids, m)
	}
	for _, s := range c.e.supportVar {
		ids = append(ids, s)
	}
	for _, cv := range c.e.convoyVar {
		ids = append(ids, cv)
	}
	return ids
}

func (c *moveResolutionConstraint) Revise(store *csp.Store) (bool, bool) {
	mv := c.e.hg.OrderAt(c.provIdx)

	attackStr, known := c.e.attackStrength(store, mv)
	if !known {
		return false, true
	}
	holdStr, known := c.e.holdStrength(store, mv.TargetIdx)
	if !known {
		return false, true
	}

	succeeds := attackStr > holdStr

	if succeeds {
		defender := c.e.hg.OrderAt(mv.TargetIdx)
		if defender != nil && defender.Order.Type == OrderMove && !defender.Void && defender.TargetIdx == c.provIdx {
			defendAttack, known := c.e.attackStrength(store, defender)
			if !known {
				return false, true
			}
			if attackStr <= defendAttack {
				succeeds = false
			}
		}
	}

	if succeeds {
		for i := range c.e.hg.Orders {
			other := &c.e.hg.Orders[i]
			if other.Void || other.Order.Type != OrderMove || other.ProvIdx == c.provIdx {
				continue
			}
			if other.TargetIdx != mv.TargetIdx {
				continue
			}
			preventStr, known := c.e.preventStrength(store, other)
			if !known {
				return false, true
			}
			if attackStr <= preventStr {
				succeeds = false
				break
			}
		}
	}

	want := 0
	if succeeds {
		want = 1
	}
	return narrowBool(store, c.varID, want)
}

// narrowBool pins a boolean variable to want, reporting a contradiction if
// it was already pinned to the opposite value.
func narrowBool(store *csp.Store, varID int, want int) (changed bool, ok bool) {
	if cur, known := store.Singleton(varID); known {
		return false, cur == want
	}
	return store.Narrow(varID, func(v int) bool { return v == want })
}
