package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/cribdrag/internal/config"
	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/report"
)

// addFixtureFlags registers the flags that select the messages and the key.
func addFixtureFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .cribdrag in current or home directory)")
	cmd.Flags().String("plaintext1", "", "First message (overrides the configured fixture)")
	cmd.Flags().String("plaintext2", "", "Second message (overrides the configured fixture)")
	cmd.Flags().String("key", "", "Shared key (overrides the configured fixture)")
	cmd.Flags().Bool("strict", false, "Reject a key shorter than either message")
}

// addReportFlags registers the transcript output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Write the transcript as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write the transcript as Markdown (mutually exclusive with --json)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the config file, the environment and the
// flags that were set on cmd.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cmd.Flags().Lookup("config") != nil {
		cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
		if err != nil {
			return nil, err
		}
	}

	// An explicit config path must exist. Without one, a missing file
	// just means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.ApplyEnv(env)

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	return cfg, nil
}

// applyFlags overlays only the flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"plaintext1", &cfg.Fixture.Plaintext1},
		{"plaintext2", &cfg.Fixture.Plaintext2},
		{"key", &cfg.Fixture.Key},
		{"dictionary", &cfg.DictionaryPath},
		{"output", &cfg.ReportFile},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	boolFlags := []struct {
		name string
		dst  *bool
	}{
		{"strict", &cfg.Strict},
		{"history", &cfg.History},
		{"json", &cfg.JSONReport},
		{"markdown", &cfg.MarkdownReport},
		{"printable", &cfg.PrintableOnly},
	}
	for _, f := range boolFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetBool(f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if flags.Changed("concurrency") {
		v, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Concurrency = v
	}

	return nil
}

// errNoTranscript is returned when a transcript is requested but there is none.
var errNoTranscript = errors.New("no transcript to write")

// writeTranscript writes t in the configured format to cfg.ReportFile, or to
// stdout when no file is set.
func writeTranscript(cfg *config.Config, t *model.Transcript, stdout io.Writer) error {
	if t == nil {
		return errNoTranscript
	}

	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Transcripts contain recovered plaintext, so keep them private.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(t)
	return err
}
