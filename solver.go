package tabsimplex

import (
	"math"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMaxIterations caps the number of pivots when Solver.MaxIter is not set.
const DefaultMaxIterations = 1000

// State is a state of the solve loop.
type State int

const (
	Checking State = iota
	Pivoting
	Optimal
	Unbounded
	Infeasible
	IterationLimitExceeded
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Pivoting:
		return "pivoting"
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	case IterationLimitExceeded:
		return "iteration-limit-exceeded"
	}
	return "unknown"
}

// Terminal reports whether the loop stops in s.
func (s State) Terminal() bool {
	return s != Checking && s != Pivoting
}

// Result is the outcome of a solve.
type Result struct {
	State State
	// Objective is the objective value read from the last tableau.
	Objective float64
	// Alternative is set on an optimal tableau with a zero objective coefficient.
	Alternative bool
	Iterations  int
	Solution    map[string]float64
	Basis       []string
	Final       Snapshot
}

// Solver runs the simplex loop on a tableau.
type Solver struct {
	// Rule defaults to Dantzig.
	Rule PivotRule
	// MaxIter defaults to DefaultMaxIterations.
	MaxIter int
	// Observer, when set, receives the initial tableau, every pivoted tableau
	// and the final one.
	Observer Observer
}

// Solve runs the loop with the default rule.
// Input is a tableau in exchange form:
// rows 0..m-1 hold b_i, a_i_1..a_i_n and row m holds 0, -c_1..-c_n.
// - Checking: classify the tableau (compatible, limited, permissible and optimal)
// - Pivoting: choose the entering column and leaving row, then pivot
// - Stop on an optimal, unbounded or infeasible tableau, or after maxIter pivots
func Solve(t *Tableau, maxIter int) (*Result, error) {
	s := Solver{MaxIter: maxIter}
	return s.Solve(t)
}

// Solve pivots t in place until it reaches a terminal state.
// Infeasible, unbounded and iteration-limited problems are reported through
// Result.State; an error means the tableau or the arithmetic broke down.
func (s *Solver) Solve(t *Tableau) (*Result, error) {
	if t == nil {
		return nil, errors.Wrap(ErrMalformed, "nil tableau")
	}
	rule := s.Rule
	if rule == nil {
		rule = Dantzig{}
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	s.observe(0, t)

	iter := 0
	state := Checking
	for !state.Terminal() {
		switch state {
		case Checking:
			state = check(t, iter, maxIter)
		case Pivoting:
			if err := step(t, rule); err != nil {
				return nil, errors.Wrapf(err, "iteration %d", iter+1)
			}
			iter++
			s.observe(iter, t)
			state = Checking
		}
	}

	res := &Result{
		State:      state,
		Objective:  t.Objective(),
		Iterations: iter,
		Solution:   t.Solution(),
		Basis:      t.Basis(),
		Final:      t.Snapshot(),
	}
	if state == Optimal {
		res.Alternative = t.HasAlternative()
	}
	if math.IsNaN(res.Objective) || math.IsInf(res.Objective, 0) {
		return nil, errors.Wrapf(ErrSingularPivot, "objective became %g", res.Objective)
	}
	klog.V(1).Infof("simplex finished: state=%s objective=%g iterations=%d alternative=%t", res.State, res.Objective, res.Iterations, res.Alternative)
	if s.Observer != nil {
		s.Observer.Done(res)
	}
	return res, nil
}

func check(t *Tableau, iter, maxIter int) State {
	compatible := t.IsCompatible()
	if !compatible {
		return Infeasible
	}
	limited := t.IsLimited()
	if !limited {
		return Unbounded
	}
	permissible, optimal := t.IsPermissible(), t.IsOptimal()
	klog.V(4).Infof("iteration %d: compatible=%t limited=%t permissible=%t optimal=%t", iter, compatible, limited, permissible, optimal)
	if permissible && optimal {
		return Optimal
	}
	if iter >= maxIter {
		return IterationLimitExceeded
	}
	return Pivoting
}

func step(t *Tableau, rule PivotRule) error {
	col, ok := rule.EnteringColumn(t)
	if !ok {
		return errors.Wrapf(ErrNoPivot, "%s: no entering column", rule.Name())
	}
	row, ok := rule.LeavingRow(t, col)
	if !ok {
		return errors.Wrapf(ErrNoPivot, "%s: no leaving row for %s", rule.Name(), t.ColLabel(col))
	}
	klog.V(2).Infof("pivot (%d, %d) = %g: %s enters, %s leaves", row, col, t.At(row, col), t.ColLabel(col), t.RowLabel(row))
	return t.Pivot(row, col)
}

func (s *Solver) observe(iter int, t *Tableau) {
	if s.Observer != nil {
		s.Observer.Observe(iter, t.Snapshot())
	}
}
