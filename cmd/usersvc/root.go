package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the usersvc command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "usersvc",
		Short:        "User resource service",
		Long:         "Serves the v1/v2 user API over HTTP and a gRPC health endpoint.",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newHealthCmd(), newRoutesCmd())
	return root
}

// Execute runs the root command. It should be invoked from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
