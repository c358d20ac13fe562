package kernel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/halfmoss/quern/internal/dataset"
	"github.com/halfmoss/quern/internal/script"
	"github.com/halfmoss/quern/internal/tabular"
)

// Sentinel is the control line emitted on the output stream after every
// command, no matter how it fared. Hosts read until they see it.
const Sentinel = "<END_OF_OUTPUT>"

// diagPrefix tags every diagnostic line on the error stream.
const diagPrefix = "KERNEL_ERROR:"

// maxLineBytes bounds one input line; commands carry whole scripts, so
// the limit is generous. Longer lines are drained and rejected with a
// diagnostic rather than buffered.
const maxLineBytes = 16 * 1024 * 1024

// Options holds configuration for creating a Loop instance. Zero fields
// get defaults: process stdio for the streams, a fresh store, the stock
// engine registry, and a discarding logger.
type Options struct {
	In            io.Reader
	Out           io.Writer
	ErrOut        io.Writer
	Store         *dataset.Store
	Engines       *script.Registry
	DefaultEngine string
	Logger        *slog.Logger
}

// Loop reads commands one line at a time and dispatches them against the
// dataset store. It owns nothing it writes to; both sinks are flushed
// after every command.
type Loop struct {
	in            io.Reader
	out           *bufio.Writer
	errOut        *bufio.Writer
	store         *dataset.Store
	engines       *script.Registry
	defaultEngine string
	logger        *slog.Logger
}

// NewLoop creates a new Loop with the given options.
func NewLoop(opts Options) *Loop {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Store == nil {
		opts.Store = dataset.NewStore()
	}
	if opts.Engines == nil {
		opts.Engines = script.DefaultRegistry()
	}
	if opts.DefaultEngine == "" {
		opts.DefaultEngine = script.DefaultEngineName
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		in:            opts.In,
		out:           bufio.NewWriter(opts.Out),
		errOut:        bufio.NewWriter(opts.ErrOut),
		store:         opts.Store,
		engines:       opts.Engines,
		defaultEngine: opts.DefaultEngine,
		logger:        opts.Logger,
	}
}

// Store returns the loop's dataset store.
func (l *Loop) Store() *dataset.Store { return l.store }

// Run processes commands until the input reaches EOF. Cancellation is
// only observed between commands; a command in flight always completes
// and gets its sentinel.
func (l *Loop) Run(ctx context.Context) error {
	in := bufio.NewReaderSize(l.in, 64*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, tooLong, err := readLine(in)
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading commands: %w", err)
		}
		atEOF := err == io.EOF

		switch {
		case tooLong:
			l.diag("input line exceeds %d bytes; command dropped", maxLineBytes)
			l.endCommand()
		case len(line) > 0 || !atEOF:
			l.handleLine(ctx, line)
			l.endCommand()
		}

		if atEOF {
			l.logger.Info("input closed, shutting down", "datasets", l.store.Len())
			return nil
		}
	}
}

// readLine reads one newline-terminated line, stripping the terminator.
// A line longer than maxLineBytes comes back empty with tooLong set: the
// excess is drained so the loop can answer with a diagnostic and move on
// instead of dying mid-stream.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		frag, ferr := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, frag...)
		}
		if ferr == bufio.ErrBufferFull {
			if len(line) > maxLineBytes {
				line = nil
				tooLong = true
			}
			continue
		}
		if !tooLong {
			if n := len(line); n > 0 && line[n-1] == '\n' {
				line = line[:n-1]
			}
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			if len(line) > maxLineBytes {
				line = nil
				tooLong = true
			}
		}
		return line, tooLong, ferr
	}
}

// handleLine decodes and dispatches one input line. Every failure is
// reported on the error stream and swallowed; the loop never dies on a
// bad line.
func (l *Loop) handleLine(ctx context.Context, line []byte) {
	id := uuid.NewString()

	cmd, err := ParseCommand(line)
	if err != nil {
		l.logger.Warn("rejected input line", "command_id", id, "error", err)
		l.diag("%v", err)
		return
	}

	l.logger.Debug("command received", "command_id", id, "kind", cmd.Kind.String(), "type", cmd.RawType)

	switch cmd.Kind {
	case KindLoad:
		l.handleLoad(id, cmd)
	case KindExecute:
		l.handleExecute(ctx, id, cmd)
	case KindGetInfo:
		l.handleGetInfo(id, cmd)
	default:
		// Unrecognized types are ignored; the sentinel still follows.
		l.logger.Debug("ignoring unrecognized command type", "command_id", id, "type", cmd.RawType)
	}
}

func (l *Loop) handleLoad(id string, cmd Command) {
	if cmd.Path == "" || cmd.VarName == "" {
		l.diag("load command requires both path and varName")
		return
	}

	frame, err := tabular.Load(cmd.Path)
	if err != nil {
		l.logger.Warn("load failed", "command_id", id, "path", cmd.Path, "error", err)
		l.diag("failed to load data from %s: %v", cmd.Path, err)
		return
	}

	replaced := l.store.Put(cmd.VarName, frame)
	l.logger.Info("dataset loaded",
		"command_id", id,
		"path", cmd.Path,
		"dataset", cmd.VarName,
		"rows", frame.NumRows(),
		"columns", frame.NumCols(),
		"replaced", replaced,
	)
	l.println(fmt.Sprintf("Successfully loaded '%s' into dataset '%s'.", cmd.Path, cmd.VarName))
}

func (l *Loop) handleExecute(ctx context.Context, id string, cmd Command) {
	name := cmd.Engine
	if name == "" {
		name = l.defaultEngine
	}
	eng, err := l.engines.Get(name)
	if err != nil {
		l.diag("%v", err)
		return
	}

	// Engines get a snapshot: frames are shared but the name table is
	// copied, so nothing a script binds survives it.
	res, err := eng.Execute(ctx, script.Params{
		Code:     cmd.Code,
		Datasets: l.store.Snapshot(),
		Stdout:   l.out,
	})
	if err != nil {
		l.logger.Warn("execution failed", "command_id", id, "engine", name, "error", err)
		l.diag("%v", err)
		return
	}
	if res.HasValue {
		l.println(res.Value)
	}
	l.logger.Debug("execution finished", "command_id", id, "engine", name)
}

func (l *Loop) handleGetInfo(id string, cmd Command) {
	frame, ok := l.store.Get(cmd.VarName)
	if !ok {
		l.logger.Warn("dataset not found", "command_id", id, "dataset", cmd.VarName)
		l.diag("dataset '%s' not found.", cmd.VarName)
		return
	}
	l.println(tabular.MetadataReport(cmd.VarName, frame))
}

// println writes one result onto the output stream.
func (l *Loop) println(msg string) {
	fmt.Fprintln(l.out, msg)
}

// diag writes a single tagged diagnostic line onto the error stream.
// Embedded newlines are collapsed so one failure is always one line.
func (l *Loop) diag(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.ReplaceAll(msg, "\n", " ")
	fmt.Fprintf(l.errOut, "%s %s\n", diagPrefix, msg)
}

// endCommand seals one command: diagnostics first, then the sentinel,
// both flushed before the next line is read.
func (l *Loop) endCommand() {
	l.errOut.Flush()
	fmt.Fprintln(l.out, Sentinel)
	l.out.Flush()
}
