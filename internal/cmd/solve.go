package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/askiada/tabsimplex"
	"github.com/askiada/tabsimplex/internal/config"
)

var solveExample = `# solve the problem described in a configuration file
%[1]s solve --config lp.yaml

# use Bland's rule, print every tableau and check the optimum
%[1]s solve --config lp.yaml --rule=bland --trace --verify

# print the result as JSON
%[1]s solve --config lp.yaml -o json`

// Source of the initial tableau.
type Source int

const (
	FromConfig Source = iota
	FromDemo
	FromPrompt
)

// SolveOptions is everything a solve command needs once flags are parsed.
type SolveOptions struct {
	ConfigFile string
	Source     Source

	Config  *config.Config
	Problem tabsimplex.Problem

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewCmdSolve solves a problem read from a configuration file.
func NewCmdSolve(parent string, in io.Reader, out, errout io.Writer) *cobra.Command {
	return newSolveCommand(FromConfig, in, out, errout, &cobra.Command{
		Use:     "solve --config FILE",
		Short:   "Solve the linear program described in a configuration file",
		Long:    "Solve maximize cx subject to Ax <= b, x >= 0 with the tableau simplex method. The problem is read from the configuration file.",
		Example: fmt.Sprintf(solveExample, parent),
	})
}

// NewCmdDemo solves the built-in demonstration problem.
func NewCmdDemo(parent string, in io.Reader, out, errout io.Writer) *cobra.Command {
	return newSolveCommand(FromDemo, in, out, errout, &cobra.Command{
		Use:   "demo",
		Short: "Solve the built-in 3x3 demonstration problem",
		Long:  "Solve maximize 5x1 + 6x2 + x3 subject to 2x1 + x2 + x3 <= 5, x1 + 2x2 <= 3, 0.5x2 + x3 <= 8.",
	})
}

// NewCmdInteractive prompts for a problem on standard input and solves it.
func NewCmdInteractive(parent string, in io.Reader, out, errout io.Writer) *cobra.Command {
	return newSolveCommand(FromPrompt, in, out, errout, &cobra.Command{
		Use:   "interactive",
		Short: "Read a problem from the terminal and solve it",
	})
}

func newSolveCommand(source Source, in io.Reader, out, errout io.Writer, cmd *cobra.Command) *cobra.Command {
	o := &SolveOptions{Source: source, In: in, Out: out, ErrOut: errout}
	cmd.Args = cobra.NoArgs
	cmd.SilenceUsage = true
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if err := o.Complete(c); err != nil {
			return err
		}
		if err := o.Validate(); err != nil {
			return err
		}
		return o.Run()
	}
	config.AddFlags(cmd.Flags())
	if source == FromConfig {
		cmd.Flags().StringVar(&o.ConfigFile, "config", "", "Configuration file (yaml, json or toml) holding the problem")
	}
	return cmd
}

// Complete loads the configuration and the problem.
func (o *SolveOptions) Complete(c *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile, c.Flags())
	if err != nil {
		return err
	}
	o.Config = cfg

	switch o.Source {
	case FromConfig:
		o.Problem = cfg.Problem
	case FromDemo:
		o.Problem = tabsimplex.DemoProblem()
	case FromPrompt:
		p, err := tabsimplex.Interactive{In: o.In, Out: o.ErrOut}.ReadProblem()
		if err != nil {
			return err
		}
		o.Problem = p
	}
	return nil
}

// Validate checks the configuration and the problem.
func (o *SolveOptions) Validate() error {
	if o.Source == FromConfig && o.ConfigFile == "" {
		return errors.New("--config is required")
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	return o.Problem.Validate()
}

// Run solves the problem and prints the outcome.
func (o *SolveOptions) Run() error {
	t, err := tabsimplex.ProblemInitializer{Problem: o.Problem}.Init()
	if err != nil {
		return err
	}

	s := tabsimplex.Solver{
		Rule:    o.Config.PivotRule(),
		MaxIter: o.Config.MaxIterations,
	}
	if o.Config.Output == "text" {
		s.Observer = &tabsimplex.Printer{W: o.Out, Trace: o.Config.Trace}
	}
	res, err := s.Solve(t)
	if err != nil {
		if _, bland := s.Rule.(tabsimplex.Bland); !bland && errors.Cause(err) == tabsimplex.ErrNoPivot {
			return errors.Wrap(err, "degenerate problem, retry with --rule=bland")
		}
		return err
	}

	if o.Config.Verify {
		if err := o.verify(res); err != nil {
			return err
		}
	}

	if o.Config.Output == "text" {
		return nil
	}
	b, err := tabsimplex.NewReport(res).Marshal(o.Config.Output)
	if err != nil {
		return err
	}
	if len(b) > 0 && b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	_, err = o.Out.Write(b)
	return err
}

func (o *SolveOptions) verify(res *tabsimplex.Result) error {
	if res.State != tabsimplex.Optimal && res.State != tabsimplex.Unbounded {
		klog.V(1).Infof("skipping cross-check of a %s result", res.State)
		return nil
	}
	for i, c := range o.Problem.Constraints {
		if c.Bound < 0 {
			klog.V(1).Infof("skipping cross-check: constraint %d has a negative bound", i+1)
			return nil
		}
	}
	if err := tabsimplex.Verify(o.Problem, res, o.Config.MaxIterations); err != nil {
		return err
	}
	if o.Config.Output == "text" {
		fmt.Fprintln(o.Out, "Cross-check with the revised simplex method passed.")
	}
	return nil
}
