package csp

import "testing"

// notEqual is a binary constraint forcing two variables to differ, the
// textbook building block for an all-different encoding.
type notEqual struct {
	a, b int
}

func (c notEqual) Vars() []int { return []int{c.a, c.b} }

func (c notEqual) Revise(s *Store) (bool, bool) {
	av, aKnown := s.Singleton(c.a)
	bv, bKnown := s.Singleton(c.b)
	changed := false
	if aKnown && !bKnown {
		ch, ok := s.Narrow(c.b, func(v int) bool { return v != av })
		if !ok {
			return changed, false
		}
		changed = changed || ch
	}
	if bKnown && !aKnown {
		ch, ok := s.Narrow(c.a, func(v int) bool { return v != bv })
		if !ok {
			return changed, false
		}
		changed = changed || ch
	}
	if aKnown && bKnown && av == bv {
		return changed, false
	}
	return changed, true
}

func TestSolver_UniqueSolution(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 1) // domain {0,1}
	y := m.NewIntVar("y", 1)
	m.Fix("z", 0)
	m.AddConstraint(notEqual{x, y})
	// Pin x to force a unique outcome for y.
	m.Variables[x].Initial = Domain{0}

	got, err := NewSolver(m).Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got[x] != 0 || got[y] != 1 {
		t.Fatalf("got x=%d y=%d, want x=0 y=1", got[x], got[y])
	}
}

func TestSolver_Inconsistent(t *testing.T) {
	m := NewModel()
	x := m.Fix("x", 0)
	y := m.Fix("y", 0)
	m.AddConstraint(notEqual{x, y})

	_, err := NewSolver(m).Solve()
	if err != ErrInconsistent {
		t.Fatalf("err = %v, want ErrInconsistent", err)
	}
}

func TestSolver_Ambiguous(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")
	y := m.NewBoolVar("y")
	m.AddConstraint(notEqual{x, y})

	_, err := NewSolver(m).Solve()
	if err != ErrAmbiguous {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
}

func TestSolver_BacktracksOutOfDeadBranch(t *testing.T) {
	// x != y, x != z, y == z, and z != w with w fixed at 1 (z ranges over
	// {0,1,2}): the first value tried, x = 0, forces y = 1 and z = 2, which
	// y == z rejects, so the search backtracks to x = 1, y = z = 0.
	m := NewModel()
	x := m.NewBoolVar("x")
	y := m.NewBoolVar("y")
	z := m.NewIntVar("z", 2)
	w := m.Fix("w", 1)
	m.AddConstraint(notEqual{x, y})
	m.AddConstraint(notEqual{x, z})
	m.AddConstraint(notEqual{z, w})
	m.AddConstraint(equalConstraint{y, z})

	got, err := NewSolver(m).Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got[y] != got[z] {
		t.Fatalf("y=%d z=%d, want equal", got[y], got[z])
	}
	if got[x] == got[y] {
		t.Fatalf("x=%d y=%d, want different", got[x], got[y])
	}
}

type equalConstraint struct{ a, b int }

func (c equalConstraint) Vars() []int { return []int{c.a, c.b} }

func (c equalConstraint) Revise(s *Store) (bool, bool) {
	av, aKnown := s.Singleton(c.a)
	bv, bKnown := s.Singleton(c.b)
	changed := false
	if aKnown && !bKnown {
		ch, ok := s.Narrow(c.b, func(v int) bool { return v == av })
		if !ok {
			return changed, false
		}
		changed = changed || ch
	}
	if bKnown && !aKnown {
		ch, ok := s.Narrow(c.a, func(v int) bool { return v == bv })
		if !ok {
			return changed, false
		}
		changed = changed || ch
	}
	if aKnown && bKnown && av != bv {
		return changed, false
	}
	return changed, true
}
