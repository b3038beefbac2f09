package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/cribdrag/internal/config"
	"github.com/nao1215/cribdrag/internal/database"
	"github.com/nao1215/cribdrag/internal/mixer"
	"github.com/nao1215/cribdrag/internal/model"
)

// historyOptions selects what the history command shows.
type historyOptions struct {
	id          string
	fingerprint string
	current     bool
	cribs       bool
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show sessions saved with --history",
		Long: `History lists sessions stored by 'cribdrag session --history'.

Sessions are grouped by a fingerprint of the two ciphertexts, so every
session against the same messages and key shares one fingerprint. The
messages and key themselves are never stored.

Examples:
  # List every stored session
  cribdrag history

  # List sessions against the configured messages
  cribdrag history --current

  # List every crib tried against a ciphertext pair
  cribdrag history --cribs --fingerprint 3a7bd3e2...

  # Show one session as Markdown
  cribdrag history --id 0b9f3c2e-6a51-4d8e-9b1c-2f4a7d5e8c10 -m`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	addFixtureFlags(cmd)
	cmd.Flags().StringP("id", "i", "",
		"Show the full transcript of one session")
	cmd.Flags().StringP("fingerprint", "f", "",
		"Only show sessions against this ciphertext pair")
	cmd.Flags().Bool("current", false,
		"Only show sessions against the configured messages and key")
	cmd.Flags().Bool("cribs", false,
		"List every crib tried instead of sessions (requires --fingerprint or --current)")
	addReportFlags(cmd)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return config.ErrConflictingReportFormats
	}

	var opts historyOptions
	if opts.id, err = cmd.Flags().GetString("id"); err != nil {
		return err
	}
	if opts.fingerprint, err = cmd.Flags().GetString("fingerprint"); err != nil {
		return err
	}
	if opts.current, err = cmd.Flags().GetBool("current"); err != nil {
		return err
	}
	if opts.cribs, err = cmd.Flags().GetBool("cribs"); err != nil {
		return err
	}

	// Validate before opening the database so a bad invocation leaves no file behind.
	if opts.current {
		if opts.fingerprint != "" {
			return errors.New("--current and --fingerprint cannot be used together")
		}
		opts.fingerprint = model.Fingerprint(mixer.Encrypt(cfg.Fixture))
	}
	if opts.cribs && opts.fingerprint == "" {
		return errors.New("--cribs requires --fingerprint or --current")
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return runHistory(cmd.Context(), cfg, db, opts, cmd.OutOrStdout())
}

// runHistory prints the part of the history selected by opts.
func runHistory(ctx context.Context, cfg *config.Config, db *database.HistoryDB, opts historyOptions, out io.Writer) error {
	switch {
	case opts.id != "":
		return showSession(ctx, cfg, db, opts.id, out)
	case opts.cribs:
		return listCribs(ctx, db, opts.fingerprint, out)
	default:
		return listSessions(ctx, db, opts.fingerprint, out)
	}
}

// showSession writes one stored transcript in the configured format.
func showSession(ctx context.Context, cfg *config.Config, db *database.HistoryDB, id string, out io.Writer) error {
	t, err := db.GetTranscript(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("session not found: %s", id)
	}

	// A stored transcript is always shown, never written to a file.
	view := *cfg
	view.ReportFile = ""
	return writeTranscript(&view, t, out)
}

// listSessions prints a table of stored sessions.
func listSessions(ctx context.Context, db *database.HistoryDB, fingerprint string, out io.Writer) error {
	sessions, err := db.ListSessions(ctx, fingerprint)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions found in the history.")
		fmt.Fprintln(out, "\nUse 'cribdrag session --history' to record sessions.")
		return nil
	}

	fmt.Fprintf(out, "Stored sessions (%d):\n\n", len(sessions))
	fmt.Fprintf(out, "  %-36s  %-19s  %-12s  %-8s  %s\n", "ID", "Started", "Ciphertexts", "Attempts", "Status")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 94))

	for _, s := range sessions {
		status := "unsolved"
		if s.Solved {
			status = "solved"
		}
		fmt.Fprintf(out, "  %-36s  %-19s  %-12s  %-8d  %s\n",
			s.ID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			shortFingerprint(s.Fingerprint),
			s.Attempts,
			status,
		)
	}

	fmt.Fprintln(out, "\nUse 'cribdrag history --id <id>' to show a session.")
	return nil
}

// listCribs prints every crib tried against one ciphertext pair.
func listCribs(ctx context.Context, db *database.HistoryDB, fingerprint string, out io.Writer) error {
	cribs, err := db.ListCribs(ctx, fingerprint)
	if err != nil {
		return err
	}

	if len(cribs) == 0 {
		fmt.Fprintf(out, "No cribs recorded for %s\n", shortFingerprint(fingerprint))
		return nil
	}

	fmt.Fprintf(out, "Cribs tried against %s (%d):\n\n", shortFingerprint(fingerprint), len(cribs))
	for _, c := range cribs {
		line := fmt.Sprintf("  %q -> %q", c.Crib, c.Rendered)
		switch {
		case c.Solved:
			line += " [solved]"
		case c.Accepted:
			line += fmt.Sprintf(" [accepted %q]", c.Match)
		}
		fmt.Fprintln(out, line)
	}

	return nil
}

// shortFingerprint abbreviates a fingerprint for tables.
func shortFingerprint(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}
