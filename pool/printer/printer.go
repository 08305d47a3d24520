// Package printer renders pool diagnostics: the block dump, compaction
// statistics and metrics snapshots, as text or JSON.
package printer

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/objpool/pkg/types"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// ParseFormat maps a flag value to a Format. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("printer: unknown format %q", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Language enables locale-aware digit grouping of byte counts in text
	// output (language.English prints 524288 as "524,288").
	// Default: language.Und (no grouping)
	Language language.Tag

	// Title is the heading of a text dump.
	// Default: "Current Pool"
	Title string
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format: FormatText,
		Title:  "Current Pool",
	}
}

// Printer handles formatted output of pool diagnostics.
type Printer struct {
	opts   Options
	writer io.Writer
	msg    *message.Printer // nil when no locale is configured
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintBlocks(pool.Blocks())
func New(w io.Writer, opts Options) *Printer {
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}
	p := &Printer{opts: opts, writer: w}
	if opts.Language != language.Und {
		p.msg = message.NewPrinter(opts.Language)
	}
	return p
}

// PrintBlocks prints every registered block in registry order.
func (p *Printer) PrintBlocks(blocks []types.BlockInfo) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printBlocksJSON(blocks)
	default:
		return p.printBlocksText(blocks)
	}
}

// PrintCompaction prints the statistics of one compaction sweep.
func (p *Printer) PrintCompaction(st types.CompactStats) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.writeJSON(jsonCompaction{Compaction: st})
	default:
		return p.printCompactionText(st)
	}
}

// PrintMetrics prints a metrics snapshot.
func (p *Printer) PrintMetrics(m types.Metrics) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.writeJSON(m)
	default:
		return p.printMetricsText(m)
	}
}

// printf formats through the locale printer when one is configured.
func (p *Printer) printf(format string, args ...any) error {
	var err error
	if p.msg != nil {
		_, err = p.msg.Fprintf(p.writer, format, args...)
	} else {
		_, err = fmt.Fprintf(p.writer, format, args...)
	}
	return err
}
