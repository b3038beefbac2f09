// Package console implements the interactive text protocol of a session
// over a line-oriented reader and a writer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/cribdrag/internal/codec"
)

// Protocol lines written to the analyst.
const (
	separator     = "---------------"
	cribPrompt    = "Enter cribword:"
	matchQuestion = "Would you like to use it in your next guess? (y/n)"
	noMatches     = "NO MATCHES FOUND"
	solvedMessage = "CONGRATULATIONS, you deciphered the secret message!"
)

// line is one result of a background read.
type line struct {
	text string
	err  error
}

// Terminal reads analyst input line by line and writes the session protocol.
// It satisfies session.Interactor.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal creates a Terminal over in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// ReadCrib prompts for and reads the next crib.
func (t *Terminal) ReadCrib(ctx context.Context) (string, error) {
	fmt.Fprintln(t.out, separator)
	fmt.Fprintln(t.out, cribPrompt)
	return t.readLine(ctx)
}

// ShowCrib echoes the crib under test.
func (t *Terminal) ShowCrib(crib string) {
	fmt.Fprintf(t.out, "Cribword is: %s\n\n", crib)
}

// ShowResult prints the rendered guess, one character per byte.
func (t *Terminal) ShowResult(rendered string) {
	fmt.Fprintf(t.out, "Result is: %s\n\n", codec.Display(rendered))
}

// ShowNoMatch reports an empty dictionary lookup.
func (t *Terminal) ShowNoMatch() {
	fmt.Fprintln(t.out, noMatches)
}

// ConfirmMatch offers word and reads the reply verbatim.
func (t *Terminal) ConfirmMatch(ctx context.Context, word string) (string, error) {
	fmt.Fprintf(t.out, "Partial match: \"%s\"\n", word)
	fmt.Fprintln(t.out, matchQuestion)
	return t.readLine(ctx)
}

// ShowSolved reports success.
func (t *Terminal) ShowSolved() {
	fmt.Fprintln(t.out, solvedMessage)
}

// readLine reads one line without its terminator. It returns io.EOF when
// the input is exhausted and ctx.Err() if ctx ends first. A read abandoned
// on cancellation finishes in the background, so the Terminal must not be
// read again after a cancelled read.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	ch := make(chan line, 1)
	go func() {
		if t.in.Scan() {
			ch <- line{text: strings.TrimSuffix(t.in.Text(), "\r")}
			return
		}
		err := t.in.Err()
		if err == nil {
			err = io.EOF
		}
		ch <- line{err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-ch:
		return l.text, l.err
	}
}
