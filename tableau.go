package tabsimplex

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// RHSLabel heads column 0, which holds the right-hand side of every row.
	RHSLabel = "S"
	// ObjectiveLabel names the last row, which holds the objective function.
	ObjectiveLabel = "F"
)

// Tableau is a simplex table in exchange form.
// Layout for m constraints and n structural variables, (m+1, n+1):
//
//	column 0        right-hand side of each row, objective value in the last row
//	columns 1..n    coefficients of the non-basic variables
//	rows 0..m-1     constraints, one basic variable each
//	row m           objective row, stores -c for a maximization
//
// rowLabels[i] names the basic variable of row i and colLabels[j] the
// non-basic variable of column j. A pivot swaps exactly one of each.
type Tableau struct {
	rows int
	cols int

	table *mat.Dense

	rowLabels []string
	colLabels []string

	// Position of every variable in the initial labelling, used by Bland's rule.
	order map[string]int
}

// NewTableau builds a tableau from a fully populated matrix and its labels.
// rowLabels must have one entry per row and colLabels one entry per column;
// the objective row and the right-hand side column are relabelled with
// ObjectiveLabel and RHSLabel whatever the caller passed.
func NewTableau(table *mat.Dense, rowLabels, colLabels []string) (*Tableau, error) {
	if table == nil || table.IsEmpty() {
		return nil, errors.Wrap(ErrMalformed, "empty table")
	}
	rows, cols := table.Dims()
	if rows < 2 || cols < 2 {
		return nil, errors.Wrapf(ErrMalformed, "table is %dx%d, need at least 2x2", rows, cols)
	}
	if len(rowLabels) != rows {
		return nil, errors.Wrapf(ErrMalformed, "%d row labels for %d rows", len(rowLabels), rows)
	}
	if len(colLabels) != cols {
		return nil, errors.Wrapf(ErrMalformed, "%d column labels for %d columns", len(colLabels), cols)
	}
	for i := 0; i < rows; i++ {
		row := table.RawRowView(i)
		if floats.HasNaN(row) || hasInf(row) {
			return nil, errors.Wrapf(ErrMalformed, "row %d has a non-finite entry", i)
		}
	}

	t := &Tableau{
		rows:      rows,
		cols:      cols,
		table:     mat.DenseCopyOf(table),
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		order:     make(map[string]int, rows+cols-2),
	}
	t.rowLabels[rows-1] = ObjectiveLabel
	t.colLabels[0] = RHSLabel

	variables := append(append([]string(nil), t.colLabels[1:]...), t.rowLabels[:rows-1]...)
	for k, name := range variables {
		if name == "" {
			return nil, errors.Wrap(ErrMalformed, "missing variable label")
		}
		if name == RHSLabel || name == ObjectiveLabel {
			return nil, errors.Wrapf(ErrMalformed, "variable label %q is reserved", name)
		}
		if _, ok := t.order[name]; ok {
			return nil, errors.Wrapf(ErrMalformed, "duplicate variable label %q", name)
		}
		t.order[name] = k
	}
	return t, nil
}

// NewTableauDefault builds a tableau labelled X1..Xn across the columns and
// X(n+1)..X(n+m) down the constraint rows.
func NewTableauDefault(table *mat.Dense) (*Tableau, error) {
	if table == nil || table.IsEmpty() {
		return nil, errors.Wrap(ErrMalformed, "empty table")
	}
	rows, cols := table.Dims()
	rowLabels, colLabels := DefaultLabels(rows, cols)
	return NewTableau(table, rowLabels, colLabels)
}

// DefaultLabels returns the initial labelling of a rows x cols tableau.
func DefaultLabels(rows, cols int) ([]string, []string) {
	if rows < 1 || cols < 1 {
		return nil, nil
	}
	colLabels := make([]string, cols)
	colLabels[0] = RHSLabel
	for j := 1; j < cols; j++ {
		colLabels[j] = variableName(j)
	}
	rowLabels := make([]string, rows)
	for i := 0; i < rows-1; i++ {
		rowLabels[i] = variableName(cols + i)
	}
	rowLabels[rows-1] = ObjectiveLabel
	return rowLabels, colLabels
}

func variableName(k int) string {
	return fmt.Sprintf("X%d", k)
}

func hasInf(s []float64) bool {
	for _, v := range s {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// Dims returns the number of rows and columns, objective row and right-hand side included.
func (t *Tableau) Dims() (int, int) {
	return t.rows, t.cols
}

// At returns the entry at row i, column j.
func (t *Tableau) At(i, j int) float64 {
	return t.table.At(i, j)
}

// RowLabel returns the basic variable of row i, or ObjectiveLabel for the last row.
func (t *Tableau) RowLabel(i int) string {
	return t.rowLabels[i]
}

// ColLabel returns the non-basic variable of column j, or RHSLabel for column 0.
func (t *Tableau) ColLabel(j int) string {
	return t.colLabels[j]
}

// Objective returns the current objective value.
func (t *Tableau) Objective() float64 {
	return t.table.At(t.rows-1, 0)
}

func (t *Tableau) objectiveRow() []float64 {
	return t.table.RawRowView(t.rows - 1)
}

// Solution returns the value of every variable in the current basic solution:
// basic variables take their right-hand side, non-basic variables are zero.
func (t *Tableau) Solution() map[string]float64 {
	solution := make(map[string]float64, len(t.order))
	for j := 1; j < t.cols; j++ {
		solution[t.colLabels[j]] = 0
	}
	for i := 0; i < t.rows-1; i++ {
		solution[t.rowLabels[i]] = t.table.At(i, 0)
	}
	return solution
}

// Basis returns the basic variables, one per constraint row.
func (t *Tableau) Basis() []string {
	return append([]string(nil), t.rowLabels[:t.rows-1]...)
}

// Snapshot is a read-only copy of a tableau.
type Snapshot struct {
	Rows      int
	Cols      int
	Values    *mat.Dense
	RowLabels []string
	ColLabels []string
}

// Snapshot copies the current state of the tableau.
func (t *Tableau) Snapshot() Snapshot {
	return Snapshot{
		Rows:      t.rows,
		Cols:      t.cols,
		Values:    mat.DenseCopyOf(t.table),
		RowLabels: append([]string(nil), t.rowLabels...),
		ColLabels: append([]string(nil), t.colLabels...),
	}
}
