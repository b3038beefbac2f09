package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/cribdrag/internal/config"
	"github.com/nao1215/cribdrag/internal/log"
	"github.com/nao1215/cribdrag/internal/mixer"
	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/pipeline"
)

// NewDragCmd creates the drag command.
func NewDragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drag <crib>",
		Short: "Slide a crib across every offset of the combined ciphertext",
		Long: `Drag places the crib at every byte offset of the combined ciphertext and
shows the fragment of the other message each placement reveals.

A readable fragment suggests the crib really occurs at that offset in one
of the messages. Use --printable to hide fragments containing control bytes.

Examples:
  # Where could " the " appear?
  cribdrag drag " the "

  # Only readable fragments, as JSON
  cribdrag drag --printable --json secret`,
		Args: cobra.ExactArgs(1),
		RunE: runDragCmd,
	}

	addFixtureFlags(cmd)

	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of offsets evaluated at once")
	cmd.Flags().BoolP("printable", "p", false,
		"Only show fragments made of printable ASCII")
	cmd.Flags().BoolP("json", "j", false,
		"Output results in JSON format")

	return cmd
}

// runDragCmd executes the drag command.
func runDragCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runDrag(ctx, cfg, args[0], cmd.OutOrStdout(), logger)
}

// runDrag sweeps crib across the configured fixture and prints the results.
func runDrag(ctx context.Context, cfg *config.Config, crib string, out io.Writer, logger *slog.Logger) error {
	combined := mixer.Combine(mixer.Encrypt(cfg.Fixture))

	dragger := pipeline.NewDragger(
		pipeline.WithDragLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithPrintableOnly(cfg.PrintableOnly),
	)

	results, err := dragger.Drag(ctx, combined, crib)
	if err != nil {
		return fmt.Errorf("drag failed: %w", err)
	}

	if cfg.JSONReport {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if results == nil {
			results = []model.DragResult{}
		}
		return encoder.Encode(results)
	}

	return printDragResults(out, crib, combined.ByteLen(), results)
}

// printDragResults writes one line per offset.
func printDragResults(out io.Writer, crib string, total int, results []model.DragResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintf(out, "No placements of %q to show.\n", crib)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dragging %q across %d bytes (%d placements):\n\n", crib, total, len(results))
	fmt.Fprintf(&sb, "  %-6s  %s\n", "Offset", "Fragment")
	sb.WriteString("  " + strings.Repeat("-", 40) + "\n")

	for _, r := range results {
		marker := " "
		if r.Printable {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %-6d  %s\n", marker, r.Offset, strconv.Quote(r.Fragment))
	}

	sb.WriteString("\n* fragment is printable ASCII\n")

	_, err := io.WriteString(out, sb.String())
	return err
}
