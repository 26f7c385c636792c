package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/askiada/tabsimplex"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errout bytes.Buffer
	root := NewCommand("tabsimplex", strings.NewReader(stdin), &out, &errout)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeProblem(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDemoText(t *testing.T) {
	out, err := run(t, "", "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "X4       5.0000"), "initial tableau printed once")
	assert.Contains(t, out, "X6       7.8333")
	assert.True(t, strings.HasSuffix(out, "F = 13.6667\n"))
}

func TestDemoYAML(t *testing.T) {
	out, err := run(t, "", "demo", "-o", "yaml", "--rule", "bland", "--verify")
	require.NoError(t, err)

	var r tabsimplex.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, "optimal", r.State)
	require.NotNil(t, r.Objective)
	assert.InDelta(t, 41.0/3, *r.Objective, 1e-9)
	assert.Equal(t, []string{"X1", "X2", "X6"}, r.Basis)
	assert.Equal(t, 2, r.Iterations)
}

func TestSolveConfigJSON(t *testing.T) {
	path := writeProblem(t, `
problem:
  objective: [2, 3]
  constraints:
    - coefficients: [1, 1]
      bound: 4
    - coefficients: [1, 2]
      bound: 5
`)
	out, err := run(t, "", "solve", "--config", path, "-o", "json", "--verify")
	require.NoError(t, err)

	var r map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "optimal", r["state"])
	assert.Equal(t, 9.0, r["objective"])
	assert.Equal(t, false, r["alternative"])
}

func TestSolveTraceVerify(t *testing.T) {
	path := writeProblem(t, `
trace: true
verify: true
problem:
  objective: [1, 1]
  constraints:
    - coefficients: [1, 1]
      bound: 4
`)
	out, err := run(t, "", "solve", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Has an alternative solution.")
	assert.Contains(t, out, "Cross-check with the revised simplex method passed.")
}

func TestSolveTerminalStates(t *testing.T) {
	tests := []struct {
		name    string
		problem string
		state   string
	}{
		{
			name: "unbounded",
			problem: `
problem:
  objective: [1, 0]
  constraints:
    - coefficients: [-1, 1]
      bound: 1
`,
			state: "unbounded",
		},
		{
			name: "infeasible",
			problem: `
problem:
  objective: [1, 1]
  constraints:
    - coefficients: [1, 1]
      bound: 4
    - coefficients: [1, 2]
      bound: -1
`,
			state: "infeasible",
		},
		{
			name: "iteration limit",
			problem: `
max_iterations: 1
problem:
  objective: [2, 3]
  constraints:
    - coefficients: [1, 1]
      bound: 4
    - coefficients: [1, 2]
      bound: 5
`,
			state: "iteration-limit-exceeded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", "solve", "--config", writeProblem(t, tt.problem), "-o", "yaml", "--verify")
			require.NoError(t, err)
			var r tabsimplex.Report
			require.NoError(t, yaml.Unmarshal([]byte(out), &r))
			assert.Equal(t, tt.state, r.State)
			assert.Nil(t, r.Objective)
		})
	}
}

func TestSolveErrors(t *testing.T) {
	_, err := run(t, "", "solve")
	assert.EqualError(t, err, "--config is required")

	path := writeProblem(t, "problem:\n  objective: [1, 2]\n  constraints:\n    - coefficients: [1]\n      bound: 1\n")
	_, err = run(t, "", "solve", "--config", path)
	assert.Error(t, err)

	_, err = run(t, "", "demo", "--rule", "steepest")
	assert.Error(t, err)

	_, err = run(t, "", "demo", "--max-iterations", "0")
	assert.Error(t, err)
}

func TestSolveDegenerate(t *testing.T) {
	path := writeProblem(t, `
problem:
  objective: [0.75, -20, 0.5, -6]
  constraints:
    - coefficients: [0.25, -8, -1, 9]
      bound: 0
    - coefficients: [0.5, -12, -0.5, 3]
      bound: 0
    - coefficients: [0, 0, 1, 0]
      bound: 1
`)
	_, err := run(t, "", "solve", "--config", path)
	require.Error(t, err)
	assert.Equal(t, tabsimplex.ErrNoPivot, errors.Cause(err))
	assert.Contains(t, err.Error(), "retry with --rule=bland")

	out, err := run(t, "", "solve", "--config", path, "--rule", "bland", "-o", "yaml")
	require.NoError(t, err)
	var r tabsimplex.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, "optimal", r.State)
	require.NotNil(t, r.Objective)
	assert.InDelta(t, 1.25, *r.Objective, 1e-9)
	assert.Equal(t, 6, r.Iterations)
}

func TestInteractive(t *testing.T) {
	out, err := run(t, "2 2\n2 3\n4 1 1\n5 1 2\n", "interactive")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "F = 9\n"))
	assert.NotContains(t, out, "Number of variables")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}
