package script

import (
	"context"
	"io"

	"github.com/halfmoss/quern/internal/tabular"
)

// DefaultEngineName is the engine used when a command names none.
const DefaultEngineName = "starlark"

// Params carries one execution request into an engine.
//
// Datasets is a snapshot owned by the caller: engines read frames through
// it but must not retain references past the call, and nothing an engine
// binds propagates back.
type Params struct {
	// Code is the source text to run.
	Code string
	// Datasets maps dataset names to their frames at dispatch time.
	Datasets map[string]*tabular.Frame
	// Stdout receives everything the code prints.
	Stdout io.Writer
}

// Result reports what an execution produced beyond its printed output.
type Result struct {
	// Value is the rendering of the code's result value, for engines
	// that evaluate to one.
	Value string
	// HasValue reports whether Value should be emitted.
	HasValue bool
}

// Engine runs user code against a dataset snapshot.
//
// Contract:
//   - Implementations must be safe for concurrent use.
//   - Execution is not interruptible: ctx applies only before work starts.
//   - Errors must render as a single diagnostic line via Error().
type Engine interface {
	// Name returns the identifier commands select the engine by.
	Name() string

	// Execute runs code with every dataset bound by name and printed
	// output going to params.Stdout.
	Execute(ctx context.Context, params Params) (Result, error)
}
