package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shapestone/yamlcore/pkg/yaml"
)

func newEventsCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "events <file>",
		Short: "Print the SAX-style event stream for a YAML document, one event per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cfg, args[0], cmd.OutOrStdout())
		},
	}
}

func runEvents(cfg *Config, path string, out io.Writer) error {
	log := invocationLogger(cfg.Verbose)
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("events: read failed", "source", path, "error", err)
		return err
	}

	events, err := yaml.Events(string(data))
	log.Info("events",
		"source", path,
		"bytes", len(data),
		"duration", time.Since(start),
		"error", err != nil,
	)
	if err != nil {
		return err
	}

	for _, e := range events {
		fmt.Fprintln(out, e.Text())
	}
	return nil
}
