package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shapestone/yamlcore/pkg/yaml"
)

func newValidateCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a file is syntactically valid YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cfg, args[0], cmd.OutOrStdout())
		},
	}
}

func runValidate(cfg *Config, path string, out io.Writer) error {
	log := invocationLogger(cfg.Verbose)
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("validate: read failed", "source", path, "error", err)
		return err
	}

	err = yaml.Validate(string(data))
	log.Info("validate",
		"source", path,
		"bytes", len(data),
		"duration", time.Since(start),
		"error", err != nil,
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	fmt.Fprintf(out, "%s: valid\n", path)
	return nil
}
