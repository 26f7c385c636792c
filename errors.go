package tabsimplex

import "github.com/pkg/errors"

var (
	// ErrMalformed is returned when a tableau or a problem does not have a consistent shape.
	ErrMalformed = errors.New("tabsimplex: malformed tableau")
	// ErrSingularPivot is returned when the pivot element is indistinguishable from zero.
	ErrSingularPivot = errors.New("tabsimplex: singular pivot element")
	// ErrPivotOutOfRange is returned when a pivot position is not a constraint row and a variable column.
	ErrPivotOutOfRange = errors.New("tabsimplex: pivot position out of range")
	// ErrNoPivot is returned when the tableau is neither terminal nor pivotable by the rule.
	ErrNoPivot = errors.New("tabsimplex: no admissible pivot")
	// ErrCrossCheck is returned when the revised simplex disagrees with the tableau optimum.
	ErrCrossCheck = errors.New("tabsimplex: cross-check mismatch")
)
