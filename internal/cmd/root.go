// Package cmd holds the command line of tabsimplex.
package cmd

import (
	goflag "flag"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// Version is set at build time.
var Version = "dev"

// NewCommand returns the root command with every subcommand attached.
func NewCommand(name string, in io.Reader, out, errout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: "Tableau simplex solver",
		Long:  "Solve linear programs maximize cx subject to Ax <= b, x >= 0 with the tableau simplex method.",
		Run: func(c *cobra.Command, args []string) {
			c.Help()
		},
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errout)

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(NewCmdSolve(name, in, out, errout))
	root.AddCommand(NewCmdDemo(name, in, out, errout))
	root.AddCommand(NewCmdInteractive(name, in, out, errout))
	root.AddCommand(newCmdVersion(out))
	return root
}

func newCmdVersion(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(out, Version)
		},
	}
}
