package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/cribdrag/internal/config"
	"github.com/nao1215/cribdrag/internal/console"
	"github.com/nao1215/cribdrag/internal/database"
	"github.com/nao1215/cribdrag/internal/dictionary"
	"github.com/nao1215/cribdrag/internal/log"
	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/session"
)

// NewSessionCmd creates the session command.
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive crib dragging session",
		Long: `Session encrypts two messages with the same key and lets you recover them.

Each round you enter a crib, a guess at part of one message. cribdrag XORs it
against both ciphertexts combined and shows what that reveals of the other
message, padding the bytes your crib did not cover with '?'. When the revealed
text ends in a partial word, cribdrag looks it up in the word list and offers
to extend your next crib with the match. Recovering either message in full
ends the session.

Examples:
  # Attack the built-in pair of messages
  cribdrag session

  # Use your own messages and key
  cribdrag session --plaintext1 "attack at dawn" --plaintext2 "defend at dusk" --key "0123456789abcd"

  # Suggest words from a system dictionary
  cribdrag session -d /usr/share/dict/words

  # Keep the session in history and save a Markdown transcript
  cribdrag session --history -m -o transcript.md`,
		Args: cobra.NoArgs,
		RunE: runSessionCmd,
	}

	addFixtureFlags(cmd)
	addReportFlags(cmd)

	cmd.Flags().StringP("dictionary", "d", "",
		"Word list file, one word per line (default: built-in list)")
	cmd.Flags().Bool("history", false,
		"Save the finished session in the history database")
	cmd.Flags().StringP("output", "o", "",
		"Write the transcript to the specified file path (creates directories if needed)")

	return cmd
}

// runSessionCmd executes the session command.
func runSessionCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSession(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// runSession runs one interactive session over in and out, then stores and
// writes the transcript as configured. An interrupted session still has its
// partial transcript saved.
func runSession(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer, logger *slog.Logger) error {
	source, err := dictionary.OpenSource(cfg.DictionaryPath)
	if err != nil {
		return err
	}
	matcher := dictionary.NewMatcher(source, dictionary.WithLogger(logger))

	s := session.New(cfg.Fixture, matcher, session.WithLogger(logger))

	var db *database.HistoryDB
	if cfg.History {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)

		showPriorCribs(ctx, db, s.Transcript().Fingerprint, errOut, logger)
	}

	transcript, runErr := s.Run(ctx, console.NewTerminal(in, out))
	if errors.Is(runErr, context.Canceled) {
		logger.Info("session interrupted", "attempts", len(transcript.Attempts))
		runErr = nil
	}

	if err := saveTranscript(ctx, db, transcript, logger); err != nil {
		logger.Error("failed to save transcript", "error", err)
	}

	if cfg.ReportFile != "" || cfg.JSONReport || cfg.MarkdownReport {
		if err := writeTranscript(cfg, transcript, out); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
	}

	return runErr
}

// showPriorCribs tells the analyst how often this ciphertext pair was
// attacked before. Lookup failures are logged and otherwise ignored.
func showPriorCribs(ctx context.Context, db *database.HistoryDB, fingerprint string, w io.Writer, logger *slog.Logger) {
	cribs, err := db.ListCribs(ctx, fingerprint)
	if err != nil {
		logger.Warn("failed to read history", "error", err)
		return
	}
	if len(cribs) == 0 {
		return
	}

	sessions := make(map[string]struct{})
	for _, c := range cribs {
		sessions[c.SessionID] = struct{}{}
	}
	fmt.Fprintf(w, "%d crib(s) were tried against these ciphertexts in %d earlier session(s).\n",
		len(cribs), len(sessions))
	fmt.Fprintf(w, "Use 'cribdrag history --cribs --fingerprint %s' to list them.\n\n", fingerprint)
}

// saveTranscript stores the transcript if a database is open.
// If db is nil, this function is a no-op. The context may already be
// cancelled when a session is interrupted, so the save does not inherit it.
func saveTranscript(ctx context.Context, db *database.HistoryDB, t *model.Transcript, logger *slog.Logger) error {
	if db == nil || t == nil {
		return nil
	}

	if err := db.SaveTranscript(context.WithoutCancel(ctx), t); err != nil {
		return err
	}

	logger.Info("transcript saved to database", "transcript_id", t.ID)
	return nil
}
