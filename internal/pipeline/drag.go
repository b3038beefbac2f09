package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/cribdrag/internal/codec"
	"github.com/nao1215/cribdrag/internal/mixer"
	"github.com/nao1215/cribdrag/internal/model"
)

// DefaultDragConcurrency is the number of offsets evaluated at once.
const DefaultDragConcurrency = 4

// Dragger slides a crib across the combined ciphertext.
type Dragger struct {
	// concurrency is the maximum number of offsets evaluated at once.
	concurrency int

	// printableOnly drops fragments containing non-printable bytes.
	printableOnly bool

	// logger is used for sweep-level logging.
	logger *slog.Logger
}

// DragOption configures a Dragger.
type DragOption func(*Dragger)

// WithDragLogger sets a custom logger for the sweep.
func WithDragLogger(logger *slog.Logger) DragOption {
	return func(d *Dragger) {
		d.logger = logger
	}
}

// WithConcurrency sets the maximum number of offsets evaluated at once.
// Values below 1 are ignored.
func WithConcurrency(n int) DragOption {
	return func(d *Dragger) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithPrintableOnly keeps only fragments made of printable ASCII.
func WithPrintableOnly(printable bool) DragOption {
	return func(d *Dragger) {
		d.printableOnly = printable
	}
}

// NewDragger creates a Dragger.
func NewDragger(opts ...DragOption) *Dragger {
	d := &Dragger{
		concurrency: DefaultDragConcurrency,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d
}

// Drag places crib at every byte offset o in [0, n-len(crib)] of the
// combined ciphertext (n bytes long) and decodes what it reveals there.
// Results are ordered by offset. An empty crib, or one longer than the
// combined ciphertext, yields no results.
func (d *Dragger) Drag(ctx context.Context, combined model.BitVector, crib string) ([]model.DragResult, error) {
	width := len(crib)
	positions := combined.ByteLen() - width + 1
	if width == 0 || positions <= 0 {
		return nil, nil
	}

	d.logger.Info("starting crib sweep",
		"crib_length", width,
		"positions", positions,
		"concurrency", d.concurrency,
	)
	startTime := time.Now()

	cribBits := codec.Encode(crib)
	slots := make([]model.DragResult, positions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for offset := range positions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fragment := codec.Decode(mixer.XOR(cribBits, combined.Slice(offset, offset+width)), width)
			slots[offset] = model.DragResult{
				Offset:    offset,
				Fragment:  fragment,
				Printable: model.IsPrintable(fragment),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]model.DragResult, 0, positions)
	for _, r := range slots {
		if d.printableOnly && !r.Printable {
			continue
		}
		results = append(results, r)
	}

	d.logger.Info("crib sweep complete",
		"positions", positions,
		"kept", len(results),
		"elapsed", time.Since(startTime),
	)

	return results, nil
}
