// Package logging configures the kernel's structured logger. Records go to
// stderr (stdout carries the command protocol and must stay clean) and,
// when a Seq endpoint is configured, to Seq as well.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// Options configures Setup.
type Options struct {
	// Level is the minimum level emitted.
	Level slog.Level

	// SeqURL is the Seq ingestion endpoint. Empty disables the Seq sink.
	SeqURL string

	// Out overrides the local sink, for tests. Defaults to os.Stderr.
	Out io.Writer
}

// ParseLevel maps a config level name onto its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Setup builds the logger and returns it with a cleanup function that
// flushes the Seq sink. The cleanup is never nil.
func Setup(opts Options) (*slog.Logger, func()) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	local := slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.Level})

	if opts.SeqURL == "" {
		return slog.New(local), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(10),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(&slog.HandlerOptions{Level: opts.Level}),
	)
	if seqHandler == nil {
		return slog.New(local), func() {}
	}

	multi := &multiHandler{handlers: []slog.Handler{local, seqHandler}}
	return slog.New(multi), func() { seqHandler.Close() }
}

// multiHandler forwards log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
