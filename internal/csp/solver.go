package csp

import "errors"

// ErrInconsistent is returned when no assignment satisfies every constraint.
var ErrInconsistent = errors.New("csp: constraints admit no solution")

// ErrAmbiguous is returned when more than one assignment satisfies every
// constraint. A correctly encoded turn should never produce this; callers
// treat it as a fatal modeling error, not as game state to report.
var ErrAmbiguous = errors.New("csp: constraints admit more than one solution")

// VariableOrdering selects which undetermined variable the solver branches
// on next, when propagation alone cannot resolve every domain to a single
// value (which only happens inside a genuine dependency cycle, such as a
// convoy-disruption/support-cut paradox).
type VariableOrdering int

const (
	// OrderGiven branches on Model.Order, falling back to ID order for
	// variables propagation left out of it.
	OrderGiven VariableOrdering = iota
	// OrderMostConstrained branches on the unassigned variable referenced by
	// the most constraints first (a static degree count over every
	// constraint, satisfied or not).
	OrderMostConstrained
)

// SolverConfig tunes search. The zero value is a reasonable default: branch
// in Model.Order, try each variable's values in domain order (0 before 1
// for booleans).
type SolverConfig struct {
	Ordering VariableOrdering
	// Monitor, if set, is notified of search progress; useful for the
	// debug logging the diplomacy package attaches per turn.
	Monitor *Monitor
}

// Monitor receives search telemetry. All fields are counters the caller may
// read after Solve returns; Solve never resets them itself.
type Monitor struct {
	Guesses     int
	Backtracks  int
	Propagation int
}

// Solver runs backtracking search with constraint propagation over a Model.
type Solver struct {
	model *Model
	cfg   SolverConfig
}

// NewSolver returns a Solver for the given model using default settings.
func NewSolver(m *Model) *Solver {
	return &Solver{model: m}
}

// NewSolverWithConfig returns a Solver for the given model with explicit
// search configuration.
func NewSolverWithConfig(m *Model, cfg SolverConfig) *Solver {
	return &Solver{model: m, cfg: cfg}
}

// Solve searches for the unique assignment of every variable satisfying
// every constraint. It returns ErrInconsistent if none exists and
// ErrAmbiguous if more than one does; diplomacy turns are modeled so that a
// legal GameState+Orders pair always yields exactly one.
func (s *Solver) Solve() (map[int]int, error) {
	store := NewStore(s.model.Variables)

	if ok := s.propagate(store, nil); !ok {
		return nil, ErrInconsistent
	}

	solutions := s.search(store, 0)
	switch len(solutions) {
	case 0:
		return nil, ErrInconsistent
	case 1:
		return solutions[0], nil
	default:
		return nil, ErrAmbiguous
	}
}

// propagate runs every constraint to a fixpoint. dirty, if non-nil, limits
// the first pass to constraints touching those variable IDs; nil means
// "consider everything" (used for the initial propagation before any guess).
func (s *Solver) propagate(store *Store, dirty map[int]bool) bool {
	for {
		changedAny := false
		for _, c := range s.model.Constraints {
			if dirty != nil && !touches(c, dirty) {
				continue
			}
			changed, ok := c.Revise(store)
			if s.cfg.Monitor != nil {
				s.cfg.Monitor.Propagation++
			}
			if !ok {
				return false
			}
			if changed {
				changedAny = true
			}
		}
		if !changedAny {
			return true
		}
		// Once a fixpoint pass has made progress, reconsider every
		// constraint, not just those seeded by the branch just taken.
		dirty = nil
	}
}

func touches(c Constraint, dirty map[int]bool) bool {
	for _, id := range c.Vars() {
		if dirty[id] {
			return true
		}
	}
	return false
}

// search finds up to two complete, consistent assignments (enough to
// distinguish "unique" from "ambiguous" without exploring the whole tree).
func (s *Solver) search(store *Store, maxSolutions int) []map[int]int {
	if maxSolutions == 0 {
		maxSolutions = 2
	}
	var out []map[int]int
	s.searchInto(store, &out, maxSolutions)
	return out
}

func (s *Solver) searchInto(store *Store, out *[]map[int]int, limit int) {
	if len(*out) >= limit {
		return
	}

	varID, ok := s.pickUnassigned(store)
	if !ok {
		*out = append(*out, s.extract(store))
		return
	}

	for _, v := range append(Domain(nil), store.Domain(varID)...) {
		mark := store.mark()
		if s.cfg.Monitor != nil {
			s.cfg.Monitor.Guesses++
		}
		if ok := store.Assign(varID, v); ok && s.propagate(store, map[int]bool{varID: true}) {
			s.searchInto(store, out, limit)
		} else if s.cfg.Monitor != nil {
			s.cfg.Monitor.Backtracks++
		}
		store.undo(mark)
		if len(*out) >= limit {
			return
		}
	}
}

func (s *Solver) pickUnassigned(store *Store) (int, bool) {
	switch s.cfg.Ordering {
	case OrderMostConstrained:
		return s.pickMostConstrained(store)
	default:
		return s.pickGivenOrder(store)
	}
}

func (s *Solver) pickGivenOrder(store *Store) (int, bool) {
	for _, id := range s.model.Order {
		if _, known := store.Singleton(id); !known {
			return id, true
		}
	}
	for _, v := range s.model.Variables {
		if _, known := store.Singleton(v.ID); !known {
			return v.ID, true
		}
	}
	return 0, false
}

func (s *Solver) pickMostConstrained(store *Store) (int, bool) {
	best := -1
	bestDegree := -1
	for _, v := range s.model.Variables {
		if _, known := store.Singleton(v.ID); known {
			continue
		}
		degree := 0
		for _, c := range s.model.Constraints {
			if touches(c, map[int]bool{v.ID: true}) {
				degree++
			}
		}
		if degree > bestDegree {
			bestDegree = degree
			best = v.ID
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func (s *Solver) extract(store *Store) map[int]int {
	out := make(map[int]int, len(s.model.Variables))
	for _, v := range s.model.Variables {
		val, _ := store.Singleton(v.ID)
		out[v.ID] = val
	}
	return out
}
