package tabsimplex

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewRevisedForm(t *testing.T) {
	rf, err := newRevisedForm(problem([]float64{7, 9, 18, 17}, [][]float64{
		{2, 4, 5, 7},
		{1, 1, 2, 2},
		{1, 2, 3, 3},
	}, []float64{42, 17, 24}))
	require.NoError(t, err)

	assert.Equal(t, 3, rf.m)
	assert.Equal(t, 4, rf.n)
	assert.True(t, mat.Equal(mat.NewDense(3, 7, []float64{
		2, 4, 5, 7, 1, 0, 0,
		1, 1, 2, 2, 0, 1, 0,
		1, 2, 3, 3, 0, 0, 1,
	}), rf.A))
	assert.True(t, mat.Equal(mat.NewDense(1, 7, []float64{7, 9, 18, 17, 0, 0, 0}), rf.c))
	assert.True(t, mat.Equal(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), rf.B))
	assert.True(t, mat.Equal(mat.NewDense(1, 3, []float64{0, 0, 0}), rf.cB))
	assert.True(t, mat.Equal(mat.NewDense(1, 4, []float64{7, 9, 18, 17}), rf.cN))

	// x3 has the largest reduced cost and row 3 the smallest ratio 24/3
	state, err := rf.iter()
	require.NoError(t, err)
	assert.Equal(t, Pivoting, state)
	assert.True(t, mat.EqualApprox(mat.NewDense(3, 1, []float64{2, 1, 8}), rf.xB, tol))
	assert.True(t, mat.Equal(mat.NewDense(3, 3, []float64{1, 0, 5, 0, 1, 2, 0, 0, 3}), rf.B))
	assert.True(t, mat.Equal(mat.NewDense(1, 3, []float64{0, 0, 18}), rf.cB))
	assert.Equal(t, []int{0, 1, 6, 3, 4, 5, 2}, rf.remap)
	assert.InDeltaSlice(t, []float64{0, 0, 8, 0, 2, 1, 0}, rf.solution(), tol)
	assert.InDelta(t, 144, rf.score(), tol)
}

func TestCrossCheck(t *testing.T) {
	state, score, err := CrossCheck(problem([]float64{100, 85}, [][]float64{
		{12, 24},
		{9, 5},
		{30, 30},
	}, []float64{480, 180, 720}), 10)
	require.NoError(t, err)
	assert.Equal(t, Optimal, state)
	assert.InDelta(t, 2265, score, tol)

	state, _, err = CrossCheck(problem([]float64{1, 0}, [][]float64{{-1, 1}}, []float64{1}), 10)
	require.NoError(t, err)
	assert.Equal(t, Unbounded, state)

	_, _, err = CrossCheck(problem([]float64{1, 1}, [][]float64{{1, 1}}, []float64{-1}), 10)
	assert.Equal(t, ErrMalformed, errors.Cause(err))
}

func TestVerifyMismatch(t *testing.T) {
	p := problem([]float64{2, 3}, [][]float64{{1, 1}, {1, 2}}, []float64{4, 5})
	res := solveProblem(t, p, nil)
	require.NoError(t, Verify(p, res, 10))

	wrong := *res
	wrong.Objective = 11
	assert.Equal(t, ErrCrossCheck, errors.Cause(Verify(p, &wrong, 10)))

	wrong = *res
	wrong.State = Unbounded
	assert.Equal(t, ErrCrossCheck, errors.Cause(Verify(p, &wrong, 10)))

	// same objective at another point
	wrong = *res
	wrong.Solution = map[string]float64{"X1": 4.5, "X2": 0}
	assert.Equal(t, ErrCrossCheck, errors.Cause(Verify(p, &wrong, 10)))

	wrong = *res
	wrong.Solution = map[string]float64{"X1": 3}
	assert.Equal(t, ErrCrossCheck, errors.Cause(Verify(p, &wrong, 10)))

	// alternative optima may end on different vertices
	alt := problem([]float64{1, 1}, [][]float64{{1, 1}}, []float64{4})
	res = solveProblem(t, alt, nil)
	require.True(t, res.Alternative)
	res.Solution = map[string]float64{"X1": 2, "X2": 2}
	require.NoError(t, Verify(alt, res, 10))
}

func TestCrossCheckSolution(t *testing.T) {
	rf, state, err := solveRevised(problem([]float64{4, 3, 5}, [][]float64{
		{4, 12, 8},
		{4, 4, 8},
		{12, 4, 8},
	}, []float64{4800, 4000, 5600}), 10)
	require.NoError(t, err)
	assert.Equal(t, Optimal, state)
	assert.InDeltaSlice(t, []float64{200, 100, 350, 0, 0, 0}, rf.solution(), 1e-6)
}
