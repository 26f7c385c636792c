package tabsimplex

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Problem is a linear program in standard form:
// Maximize z = Σ(1<=j<=n) c_j*x_j
// Constraints:
// 1<=i<=m,  Σ(1<=j<=n) a_i_j*x_j <= b_i
// 1<=j<=n x_j >= 0
type Problem struct {
	Objective   []float64    `json:"objective" mapstructure:"objective"`
	Constraints []Constraint `json:"constraints" mapstructure:"constraints"`
}

// Constraint is one row Σ a_j*x_j <= Bound.
type Constraint struct {
	Coefficients []float64 `json:"coefficients" mapstructure:"coefficients"`
	Bound        float64   `json:"bound" mapstructure:"bound"`
}

// Validate checks that every constraint has one coefficient per variable.
func (p Problem) Validate() error {
	n := len(p.Objective)
	if n == 0 {
		return errors.Wrap(ErrMalformed, "objective has no coefficients")
	}
	if len(p.Constraints) == 0 {
		return errors.Wrap(ErrMalformed, "problem has no constraints")
	}
	for i, c := range p.Constraints {
		if len(c.Coefficients) != n {
			return errors.Wrapf(ErrMalformed, "constraint %d has %d coefficients, objective has %d", i+1, len(c.Coefficients), n)
		}
	}
	return nil
}

// Tableau returns the initial tableau of p, slack variables basic.
func (p Problem) Tableau() (*Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m, n := len(p.Constraints), len(p.Objective)
	table := mat.NewDense(m+1, n+1, nil)
	for i, c := range p.Constraints {
		table.Set(i, 0, c.Bound)
		for j, a := range c.Coefficients {
			table.Set(i, j+1, a)
		}
	}
	for j, c := range p.Objective {
		if c != 0 {
			table.Set(m, j+1, -c)
		}
	}
	return NewTableauDefault(table)
}

// Dense returns c as a row vector, A and b as a column vector.
func (p Problem) Dense() (c, A, b *mat.Dense, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, nil, err
	}
	m, n := len(p.Constraints), len(p.Objective)
	c = mat.NewDense(1, n, append([]float64(nil), p.Objective...))
	A = mat.NewDense(m, n, nil)
	b = mat.NewDense(m, 1, nil)
	for i, row := range p.Constraints {
		A.SetRow(i, row.Coefficients)
		b.Set(i, 0, row.Bound)
	}
	return c, A, b, nil
}
