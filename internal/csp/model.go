// Package csp provides a small generic finite-domain constraint satisfaction
// engine: variables with integer domains, constraints that narrow those
// domains, and a solver that combines propagation with backtracking search.
//
// A Model is the immutable description of a problem (variables and
// constraints). Solving a Model produces a Store, a mutable, trail-based
// record of the domain narrowing performed during search. Constraints never
// see or mutate two Stores at once; they always operate against "the current
// branch", which keeps the propagation code free of explicit copy-on-write
// bookkeeping.
package csp

// Domain is the set of values a Variable may still take. Encoders rarely
// touch Domain directly outside of tests; the Store is the normal interface.
type Domain []int

// Contains reports whether v is a member of d.
func (d Domain) Contains(v int) bool {
	for _, x := range d {
		if x == v {
			return true
		}
	}
	return false
}

// Variable is a named integer-domain unknown. ID is its index into the
// Store's domain slice and must match its position in Model.Variables.
type Variable struct {
	ID      int
	Name    string
	Initial Domain
}

// Constraint narrows the domains of the variables it is interested in.
// Revise is called repeatedly during propagation until no constraint in the
// model reports a change (fixpoint), or one reports a contradiction.
//
// Revise must be monotonic: it may only remove values from domains, never
// add them, and it must not depend on anything outside the Store (no wall
// clock, no randomness) so that propagation is deterministic and replayable.
type Constraint interface {
	// Vars returns the variable IDs this constraint reads or narrows, used
	// by the solver to schedule re-propagation after those IDs change.
	Vars() []int
	// Revise inspects the current domains and optionally narrows one of its
	// variables. changed reports whether any domain was narrowed. ok is
	// false if the constraint is unsatisfiable given the current domains
	// (e.g. it would empty a domain); the search backtracks in that case.
	Revise(s *Store) (changed bool, ok bool)
}

// Model is the static description of a constraint satisfaction problem:
// the variable set, the constraints over them, and the order in which the
// solver should branch on variables that propagation leaves undetermined.
type Model struct {
	Variables   []Variable
	Constraints []Constraint
	// Order lists variable IDs in branching priority; variables not listed
	// are branched on last, in ID order. Encoders should list the most
	// constraining variable family first (see SolverConfig.Ordering).
	Order []int
}

// NewModel returns an empty Model ready for variable/constraint registration.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar registers a boolean variable (domain {0, 1}) and returns its ID.
func (m *Model) NewBoolVar(name string) int {
	id := len(m.Variables)
	m.Variables = append(m.Variables, Variable{ID: id, Name: name, Initial: Domain{0, 1}})
	return id
}

// NewIntVar registers a variable whose domain is [0, max] inclusive.
func (m *Model) NewIntVar(name string, max int) int {
	id := len(m.Variables)
	dom := make(Domain, max+1)
	for i := range dom {
		dom[i] = i
	}
	m.Variables = append(m.Variables, Variable{ID: id, Name: name, Initial: dom})
	return id
}

// Fix registers a variable whose domain is pinned to a single value, for
// structurally-determined facts (e.g. void orders) that never need search.
func (m *Model) Fix(name string, value int) int {
	id := len(m.Variables)
	m.Variables = append(m.Variables, Variable{ID: id, Name: name, Initial: Domain{value}})
	return id
}

// AddConstraint registers a constraint. It does not touch Model.Order.
func (m *Model) AddConstraint(c Constraint) {
	m.Constraints = append(m.Constraints, c)
}
