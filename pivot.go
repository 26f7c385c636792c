package tabsimplex

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PivotTolerance is the smallest pivot magnitude Pivot accepts.
const PivotTolerance = 1e-12

// PivotRule chooses the entering column and the leaving row of an iteration.
// Both methods report false when there is no candidate.
type PivotRule interface {
	Name() string
	EnteringColumn(t *Tableau) (int, bool)
	LeavingRow(t *Tableau, col int) (int, bool)
}

// Dantzig picks the most negative objective coefficient and the smallest
// strictly positive ratio, breaking ties on the lowest index. It does not
// prevent cycling on degenerate problems.
type Dantzig struct{}

// Name implements PivotRule.
func (Dantzig) Name() string { return "dantzig" }

// EnteringColumn implements PivotRule.
func (Dantzig) EnteringColumn(t *Tableau) (int, bool) {
	costs := t.objectiveRow()[1:]
	j := floats.MinIdx(costs)
	if costs[j] >= 0 {
		return 0, false
	}
	return j + 1, true
}

// LeavingRow implements PivotRule. A ratio rhs/coefficient only competes when
// it is strictly positive.
func (Dantzig) LeavingRow(t *Tableau, col int) (int, bool) {
	ratios := make([]float64, t.rows-1)
	for i := range ratios {
		ratios[i] = math.Inf(1)
		a := t.table.At(i, col)
		if a == 0 {
			continue
		}
		if r := t.table.At(i, 0) / a; r > 0 {
			ratios[i] = r
		}
	}
	i := floats.MinIdx(ratios)
	if math.IsInf(ratios[i], 1) {
		return 0, false
	}
	return i, true
}

// Bland picks the negative objective coefficient whose variable comes first
// in the initial labelling, and among the rows with a positive coefficient
// and a non-negative ratio the smallest ratio, ties going to the basic
// variable that comes first. It never cycles.
type Bland struct{}

// Name implements PivotRule.
func (Bland) Name() string { return "bland" }

// EnteringColumn implements PivotRule.
func (Bland) EnteringColumn(t *Tableau) (int, bool) {
	obj := t.objectiveRow()
	col := -1
	for j := 1; j < t.cols; j++ {
		if obj[j] >= 0 {
			continue
		}
		if col == -1 || t.order[t.colLabels[j]] < t.order[t.colLabels[col]] {
			col = j
		}
	}
	return col, col != -1
}

// LeavingRow implements PivotRule.
func (Bland) LeavingRow(t *Tableau, col int) (int, bool) {
	row := -1
	best := math.Inf(1)
	for i := 0; i < t.rows-1; i++ {
		a := t.table.At(i, col)
		if a <= 0 {
			continue
		}
		r := t.table.At(i, 0) / a
		if r < 0 {
			continue
		}
		if r < best || (r == best && t.order[t.rowLabels[i]] < t.order[t.rowLabels[row]]) {
			best = r
			row = i
		}
	}
	return row, row != -1
}

// RuleByName returns the pivot rule called name.
func RuleByName(name string) (PivotRule, error) {
	switch strings.ToLower(name) {
	case "", "dantzig":
		return Dantzig{}, nil
	case "bland":
		return Bland{}, nil
	}
	return nil, errors.Errorf("unknown pivot rule %q", name)
}

// Pivot exchanges the basic variable of row r with the non-basic variable of
// column c. Every entry of the new table is computed from the old one:
//
//	(r, c)  1/p
//	(r, j)  a[r][j] / p
//	(i, c)  -a[i][c] / p
//	(i, j)  a[i][j] - a[i][c]*a[r][j]/p
func (t *Tableau) Pivot(r, c int) error {
	if r < 0 || r >= t.rows-1 || c < 1 || c >= t.cols {
		return errors.Wrapf(ErrPivotOutOfRange, "(%d, %d) in a %dx%d tableau", r, c, t.rows, t.cols)
	}
	p := t.table.At(r, c)
	if math.Abs(p) < PivotTolerance {
		return errors.Wrapf(ErrSingularPivot, "pivot (%d, %d) is %g", r, c, p)
	}

	old := t.table
	next := mat.NewDense(t.rows, t.cols, nil)
	for i := 0; i < t.rows; i++ {
		for j := 0; j < t.cols; j++ {
			switch {
			case i == r && j == c:
				next.Set(i, j, 1/p)
			case i == r:
				next.Set(i, j, old.At(r, j)/p)
			case j == c:
				next.Set(i, j, -old.At(i, c)/p)
			default:
				next.Set(i, j, old.At(i, j)-old.At(i, c)*old.At(r, j)/p)
			}
		}
	}
	t.table = next
	t.rowLabels[r], t.colLabels[c] = t.colLabels[c], t.rowLabels[r]
	return nil
}
