package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cribdrag.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cribdrag",
		Short: "Interactive crib dragging against a reused stream key",
		Long: `cribdrag demonstrates why a stream key must never be reused.

Two known messages are encrypted with the same key. XORing the two
ciphertexts cancels the key, so a guessed fragment (a crib) of one message
reveals the matching fragment of the other. The session command walks you
through recovering a message one crib at a time, suggesting the next word
from a word list.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewSessionCmd())
	cmd.AddCommand(NewDragCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
