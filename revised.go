package tabsimplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"
)

const (
	reducedCostTol = 1e-9
	verifyTol      = 1e-6
)

// revisedForm is the canonical form of a Problem solved with an explicit basis
// matrix instead of a tableau. It is independent of the tableau engine and
// only serves to verify it.
type revisedForm struct {
	// Structural variables
	n int
	// Constraints
	m int
	// Matrix (m, n+m), structural then slack columns
	A *mat.Dense
	// Row vector (n+m)
	c *mat.Dense
	// Column vector (m), values of the basic variables
	xB *mat.Dense

	// Views on A and c: basic columns (m, m) and non-basic columns (m, n)
	B  *mat.Dense
	AN *mat.Dense
	cB *mat.Dense
	cN *mat.Dense

	// remap[k] is the variable currently stored in column k of A
	remap []int
}

func newRevisedForm(p Problem) (*revisedForm, error) {
	c, A, b, err := p.Dense()
	if err != nil {
		return nil, err
	}
	rf := &revisedForm{}
	_, rf.n = c.Dims()
	rf.m, _ = A.Dims()
	for i := 0; i < rf.m; i++ {
		if b.At(i, 0) < 0 {
			return nil, errors.Wrapf(ErrMalformed, "revised form needs b >= 0, b_%d = %g", i+1, b.At(i, 0))
		}
	}

	rf.A = A.Grow(0, rf.m).(*mat.Dense)
	for i := 0; i < rf.m; i++ {
		rf.A.Set(i, rf.n+i, 1)
	}
	rf.c = c.Grow(0, rf.m).(*mat.Dense)
	rf.xB = mat.DenseCopyOf(b)

	rf.B = rf.A.Slice(0, rf.m, rf.n, rf.n+rf.m).(*mat.Dense)
	rf.AN = rf.A.Slice(0, rf.m, 0, rf.n).(*mat.Dense)
	rf.cB = rf.c.Slice(0, 1, rf.n, rf.n+rf.m).(*mat.Dense)
	rf.cN = rf.c.Slice(0, 1, 0, rf.n).(*mat.Dense)

	rf.remap = make([]int, rf.n+rf.m)
	for k := range rf.remap {
		rf.remap[k] = k
	}
	return rf, nil
}

// iter runs one iteration and returns the state it ends in, Pivoting when
// another iteration is needed.
func (rf *revisedForm) iter() (State, error) {
	// y = cB*B^-1
	var BInv, y mat.Dense
	if err := BInv.Inverse(rf.B); err != nil {
		return 0, errors.Wrap(err, "invert basis")
	}
	y.Mul(rf.cB, &BInv)

	// reduced costs cN - y*AN, Dantzig: largest positive enters
	var reduced mat.Dense
	reduced.Mul(&y, rf.AN)
	reduced.Sub(rf.cN, &reduced)
	costs := reduced.RawRowView(0)
	entering := floats.MaxIdx(costs)
	if costs[entering] <= reducedCostTol {
		return Optimal, nil
	}

	// d = B^-1*a_k
	var d mat.Dense
	d.Mul(&BInv, rf.AN.ColView(entering))

	leaving := -1
	step := math.Inf(1)
	for i := 0; i < rf.m; i++ {
		if d.At(i, 0) <= reducedCostTol {
			continue
		}
		if r := rf.xB.At(i, 0) / d.At(i, 0); r < step {
			step = r
			leaving = i
		}
	}
	if leaving == -1 {
		return Unbounded, nil
	}

	var move mat.Dense
	move.Scale(step, &d)
	rf.xB.Sub(rf.xB, &move)
	rf.xB.Set(leaving, 0, step)

	for i := 0; i < rf.m; i++ {
		bv, nv := rf.B.At(i, leaving), rf.AN.At(i, entering)
		rf.B.Set(i, leaving, nv)
		rf.AN.Set(i, entering, bv)
	}
	cb, cn := rf.cB.At(0, leaving), rf.cN.At(0, entering)
	rf.cB.Set(0, leaving, cn)
	rf.cN.Set(0, entering, cb)
	rf.remap[rf.n+leaving], rf.remap[entering] = rf.remap[entering], rf.remap[rf.n+leaving]
	return Pivoting, nil
}

// score returns the objective value of the current basis.
func (rf *revisedForm) score() float64 {
	return mat.Dot(rf.cB.RowView(0), rf.xB.ColView(0))
}

// solution returns the value of every variable, structural then slack, in
// the current basis.
func (rf *revisedForm) solution() []float64 {
	x := make([]float64, rf.n+rf.m)
	for i := 0; i < rf.m; i++ {
		x[rf.remap[rf.n+i]] = rf.xB.At(i, 0)
	}
	return x
}

func solveRevised(p Problem, maxIter int) (*revisedForm, State, error) {
	rf, err := newRevisedForm(p)
	if err != nil {
		return nil, 0, err
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	for i := 0; i < maxIter; i++ {
		state, err := rf.iter()
		if err != nil {
			return nil, 0, err
		}
		if state != Pivoting {
			return rf, state, nil
		}
	}
	return rf, IterationLimitExceeded, nil
}

// CrossCheck solves p with the revised simplex method and returns the state
// reached and the objective value. p must have b >= 0.
func CrossCheck(p Problem, maxIter int) (State, float64, error) {
	rf, state, err := solveRevised(p, maxIter)
	if err != nil {
		return 0, 0, err
	}
	return state, rf.score(), nil
}

// Verify compares res with CrossCheck on the same problem. On a unique
// optimum the values of the structural variables must agree too.
func Verify(p Problem, res *Result, maxIter int) error {
	rf, state, err := solveRevised(p, maxIter)
	if err != nil {
		return errors.Wrap(err, "cross-check")
	}
	score := rf.score()
	klog.V(2).Infof("cross-check: state=%s objective=%g", state, score)
	if state != res.State {
		return errors.Wrapf(ErrCrossCheck, "revised simplex ends %s, tableau ends %s", state, res.State)
	}
	if state != Optimal {
		return nil
	}
	if !scalar.EqualWithinAbsOrRel(score, res.Objective, verifyTol, verifyTol) {
		return errors.Wrapf(ErrCrossCheck, "revised simplex objective %g, tableau objective %g", score, res.Objective)
	}
	if res.Alternative {
		return nil
	}
	x := rf.solution()
	for j := 0; j < rf.n; j++ {
		name := variableName(j + 1)
		got, ok := res.Solution[name]
		if !ok {
			return errors.Wrapf(ErrCrossCheck, "tableau solution has no %s", name)
		}
		if !scalar.EqualWithinAbsOrRel(x[j], got, verifyTol, verifyTol) {
			return errors.Wrapf(ErrCrossCheck, "revised simplex %s = %g, tableau %s = %g", name, x[j], name, got)
		}
	}
	return nil
}
