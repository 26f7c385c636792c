package tabsimplex

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Initializer produces the initial tableau of a solve.
type Initializer interface {
	Init() (*Tableau, error)
}

// InitializerFunc adapts a function to Initializer.
type InitializerFunc func() (*Tableau, error)

// Init implements Initializer.
func (f InitializerFunc) Init() (*Tableau, error) { return f() }

// ProblemInitializer builds the tableau of a Problem.
type ProblemInitializer struct {
	Problem Problem
}

// Init implements Initializer.
func (p ProblemInitializer) Init() (*Tableau, error) {
	return p.Problem.Tableau()
}

// DemoProblem is the fixed demonstration dataset:
// maximize 5x1 + 6x2 + x3 subject to
//
//	2x1 +    x2 + x3 <= 5
//	 x1 +   2x2      <= 3
//	      0.5x2 + x3 <= 8
func DemoProblem() Problem {
	return Problem{
		Objective: []float64{5, 6, 1},
		Constraints: []Constraint{
			{Coefficients: []float64{2, 1, 1}, Bound: 5},
			{Coefficients: []float64{1, 2, 0}, Bound: 3},
			{Coefficients: []float64{0, 0.5, 1}, Bound: 8},
		},
	}
}

// Demo loads DemoProblem.
type Demo struct{}

// Init implements Initializer.
func (Demo) Init() (*Tableau, error) {
	return NewTableauDefault(mat.NewDense(4, 4, []float64{
		5, 2, 1, 1,
		3, 1, 2, 0,
		8, 0, 0.5, 1,
		0, -5, -6, -1,
	}))
}

// Interactive reads a problem from In, writing prompts to Out.
// It asks for the number of variables, the number of constraints, the
// objective coefficients and, for each constraint, its free term followed by
// its coefficients.
type Interactive struct {
	In  io.Reader
	Out io.Writer
}

// Init implements Initializer.
func (in Interactive) Init() (*Tableau, error) {
	p, err := in.ReadProblem()
	if err != nil {
		return nil, err
	}
	return p.Tableau()
}

// ReadProblem runs the prompts and returns the problem read.
func (in Interactive) ReadProblem() (Problem, error) {
	r := bufio.NewReader(in.In)
	out := in.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintln(out, "Problem AX <= B, cX -> max")
	var n, m int
	fmt.Fprint(out, "Number of variables: ")
	if _, err := fmt.Fscan(r, &n); err != nil {
		return Problem{}, errors.Wrap(err, "read number of variables")
	}
	fmt.Fprint(out, "Number of constraints: ")
	if _, err := fmt.Fscan(r, &m); err != nil {
		return Problem{}, errors.Wrap(err, "read number of constraints")
	}
	if n < 1 || m < 1 {
		return Problem{}, errors.Wrapf(ErrMalformed, "need at least one variable and one constraint, got %d and %d", n, m)
	}

	p := Problem{
		Objective:   make([]float64, n),
		Constraints: make([]Constraint, m),
	}
	fmt.Fprintln(out, "Objective coefficients:")
	for j := range p.Objective {
		fmt.Fprintf(out, "coefficient of X%d = ", j+1)
		if _, err := fmt.Fscan(r, &p.Objective[j]); err != nil {
			return Problem{}, errors.Wrapf(err, "read objective coefficient %d", j+1)
		}
	}
	fmt.Fprintln(out, "Constraint coefficients:")
	for i := range p.Constraints {
		c := &p.Constraints[i]
		c.Coefficients = make([]float64, n)
		fmt.Fprintf(out, "Inequality %d:\n", i+1)
		fmt.Fprint(out, "free term S = ")
		if _, err := fmt.Fscan(r, &c.Bound); err != nil {
			return Problem{}, errors.Wrapf(err, "read free term of inequality %d", i+1)
		}
		for j := range c.Coefficients {
			fmt.Fprintf(out, "coefficient of X%d = ", j+1)
			if _, err := fmt.Fscan(r, &c.Coefficients[j]); err != nil {
				return Problem{}, errors.Wrapf(err, "read coefficient %d of inequality %d", j+1, i+1)
			}
		}
	}
	return p, nil
}
