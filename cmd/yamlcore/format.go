package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shapestone/yamlcore/pkg/yaml"
)

func newFormatCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Round-trip a YAML document through the parser and serializer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cfg, args[0], cmd.OutOrStdout())
		},
	}
	bindSerializeFlags(cmd.Flags(), cfg)
	return cmd
}

func runFormat(cfg *Config, path string, out io.Writer) error {
	log := invocationLogger(cfg.Verbose)
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("format: read failed", "source", path, "error", err)
		return err
	}

	v, err := yaml.ParseText(string(data))
	if err == nil {
		opts := yaml.SerializeOptions{
			LeadingStartIndicator: cfg.DocumentMarkers,
			IndentCount:           cfg.Indent,
			MaxWidth:              cfg.Width,
		}
		var formatted string
		formatted, err = yaml.EmitText(v, opts)
		if err == nil {
			fmt.Fprintln(out, formatted)
		}
	}

	log.Info("format",
		"source", path,
		"bytes", len(data),
		"duration", time.Since(start),
		"error", err != nil,
	)
	return err
}
