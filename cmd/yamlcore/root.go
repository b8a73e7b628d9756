package main

import (
	"github.com/spf13/cobra"
)

// Config holds the flag-populated settings shared across subcommands, in the
// flat-struct-plus-flags style cuelang.org/go's cmd/cue uses pflag for.
type Config struct {
	Verbose bool

	Indent          int
	Width           int
	DocumentMarkers bool
}

func newRootCmd() *cobra.Command {
	cfg := &Config{}

	root := &cobra.Command{
		Use:           "yamlcore",
		Short:         "Inspect, validate, and format YAML 1.2.2 documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newEventsCmd(cfg))
	root.AddCommand(newValidateCmd(cfg))
	root.AddCommand(newFormatCmd(cfg))

	return root
}
