package tabsimplex

// IsCompatible reports whether the constraint system may still have a
// solution. Only the first row with a negative right-hand side is examined:
// it is repairable when it has at least one negative coefficient.
func (t *Tableau) IsCompatible() bool {
	for i := 0; i < t.rows-1; i++ {
		row := t.table.RawRowView(i)
		if row[0] >= 0 {
			continue
		}
		for _, v := range row[1:] {
			if v < 0 {
				return true
			}
		}
		return false
	}
	return true
}

// IsLimited reports whether the objective is bounded: every column with a
// negative objective coefficient must have a positive entry in some
// constraint row.
func (t *Tableau) IsLimited() bool {
	obj := t.objectiveRow()
	for j := 1; j < t.cols; j++ {
		if obj[j] >= 0 {
			continue
		}
		limited := false
		for i := t.rows - 2; i >= 0; i-- {
			if t.table.At(i, j) > 0 {
				limited = true
				break
			}
		}
		if !limited {
			return false
		}
	}
	return true
}

// IsPermissible reports whether the current basic solution is feasible.
func (t *Tableau) IsPermissible() bool {
	for i := 0; i < t.rows-1; i++ {
		if t.table.At(i, 0) < 0 {
			return false
		}
	}
	return true
}

// IsOptimal reports whether no objective coefficient is negative.
func (t *Tableau) IsOptimal() bool {
	for _, v := range t.objectiveRow()[1:] {
		if v < 0 {
			return false
		}
	}
	return true
}

// HasAlternative reports whether some objective coefficient is exactly zero,
// meaning another basis reaches the same objective value.
func (t *Tableau) HasAlternative() bool {
	for _, v := range t.objectiveRow()[1:] {
		if v == 0 {
			return true
		}
	}
	return false
}
