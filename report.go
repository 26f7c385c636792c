package tabsimplex

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Observer receives tableau snapshots during a solve.
type Observer interface {
	// Observe is called with the initial tableau (iter 0) and after each pivot.
	Observe(iter int, s Snapshot)
	// Done is called once with the terminal result.
	Done(res *Result)
}

// Printer writes every snapshot as a table and the terminal message to W.
type Printer struct {
	W io.Writer
	// Trace prints the intermediate tableaux, not only the first and the last.
	Trace bool
}

const separator = "-----------------------------------------------"

// Observe implements Observer.
func (p *Printer) Observe(iter int, s Snapshot) {
	if p.Trace || iter == 0 {
		FormatSnapshot(p.W, s)
	}
}

// Done implements Observer.
func (p *Printer) Done(res *Result) {
	if !p.Trace && res.Iterations > 0 {
		FormatSnapshot(p.W, res.Final)
	}
	fmt.Fprintln(p.W, Message(res))
}

// FormatSnapshot writes s with the variable names around the values.
func FormatSnapshot(w io.Writer, s Snapshot) {
	var b strings.Builder
	b.WriteString(separator + "\n")
	b.WriteString(strings.Repeat(" ", 5))
	for _, name := range s.ColLabels {
		fmt.Fprintf(&b, "%10s", name)
	}
	b.WriteString("\n")
	for i, name := range s.RowLabels {
		fmt.Fprintf(&b, "%-5s", name)
		for j := 0; j < s.Cols; j++ {
			fmt.Fprintf(&b, "%10.4f", s.Values.At(i, j))
		}
		b.WriteString("\n")
	}
	b.WriteString(separator + "\n")
	io.WriteString(w, b.String())
}

// Message describes the terminal state of res in one sentence.
func Message(res *Result) string {
	switch res.State {
	case Optimal:
		msg := fmt.Sprintf("F = %.6g", res.Objective)
		if res.Alternative {
			msg += "\nHas an alternative solution."
		}
		return msg
	case Unbounded:
		return "The objective function is unbounded."
	case Infeasible:
		return "The constraint system is incompatible."
	case IterationLimitExceeded:
		return fmt.Sprintf("Stopped after %d iterations without reaching a terminal tableau.", res.Iterations)
	}
	return res.State.String()
}

// Report is the serializable summary of a Result.
type Report struct {
	State       string             `json:"state"`
	Objective   *float64           `json:"objective,omitempty"`
	Alternative bool               `json:"alternative"`
	Iterations  int                `json:"iterations"`
	Basis       []string           `json:"basis"`
	Solution    map[string]float64 `json:"solution,omitempty"`
	Message     string             `json:"message"`
}

// NewReport summarizes res. The objective and the solution are only reported
// for an optimal result.
func NewReport(res *Result) Report {
	r := Report{
		State:       res.State.String(),
		Alternative: res.Alternative,
		Iterations:  res.Iterations,
		Basis:       res.Basis,
		Message:     Message(res),
	}
	if res.State == Optimal {
		obj := res.Objective
		r.Objective = &obj
		r.Solution = res.Solution
	}
	return r
}

// Marshal encodes r as "yaml" or "json".
func (r Report) Marshal(format string) ([]byte, error) {
	y, err := yaml.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "marshal report")
	}
	switch format {
	case "yaml":
		return y, nil
	case "json":
		return yaml.YAMLToJSON(y)
	}
	return nil, errors.Errorf("unknown report format %q", format)
}
