// Package rewriter runs a command list over every line of a source and writes
// the lines that changed.
package rewriter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"filemanip/sources"
	"filemanip/transformations"
)

// LineSource yields input lines one at a time
type LineSource interface {
	Scan(fn func(line string) error) error
}

// Stats counts lines for a single run
type Stats struct {
	Read    int
	Written int
}

// Rewriter applies a fixed, read-only command list. It holds no per-run
// state and may be shared between goroutines.
type Rewriter struct {
	commands []transformations.Transformation
	logger   *slog.Logger
}

// New returns a Rewriter for commands; a nil logger means slog.Default()
func New(commands []transformations.Transformation, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{commands: commands, logger: logger}
}

// Rewrite reads src and writes every changed line to w, fields joined by tabs.
// An unreadable source produces no output and no error.
func (r *Rewriter) Rewrite(src LineSource, w io.Writer) (Stats, error) {
	var stats Stats
	out := bufio.NewWriter(w)

	err := src.Scan(func(line string) error {
		stats.Read++
		changed, fields := transformations.ProcessLine(line, r.commands)
		if !changed {
			return nil
		}
		if _, err := out.WriteString(strings.Join(fields, "\t")); err != nil {
			return fmt.Errorf("failed to write line %d: %w", stats.Read, err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write line %d: %w", stats.Read, err)
		}
		stats.Written++
		return nil
	})
	if errors.Is(err, sources.ErrUnreadable) {
		r.logger.Debug("Input not readable, nothing to rewrite.", "error", err, "lines_read", stats.Read)
		err = nil
	}
	if err != nil {
		return stats, err
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}

	r.logger.Debug("Rewrite finished.", "lines_read", stats.Read, "lines_written", stats.Written)
	return stats, nil
}
