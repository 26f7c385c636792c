package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/askiada/tabsimplex/internal/cmd"
)

func main() {
	defer klog.Flush()

	root := cmd.NewCommand("tabsimplex", os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		klog.Flush()
		os.Exit(1)
	}
}
