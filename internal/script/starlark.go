package script

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// StarlarkEngine runs full Starlark scripts. Datasets are predeclared by
// name alongside the tab module; a dataset whose name collides with tab
// wins, mirroring how the environment is merged.
type StarlarkEngine struct {
	options *syntax.FileOptions
}

// NewStarlarkEngine creates the engine with the extended language options
// enabled (set literals, while loops, top-level control flow, global
// reassignment, recursion), so scripts read like ordinary procedural code.
func NewStarlarkEngine() *StarlarkEngine {
	return &StarlarkEngine{
		options: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
	}
}

// Name implements Engine.
func (e *StarlarkEngine) Name() string { return "starlark" }

// Execute implements Engine. The script's print output goes to
// params.Stdout; the module's globals are discarded when it returns.
func (e *StarlarkEngine) Execute(ctx context.Context, params Params) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	predeclared := starlark.StringDict{"tab": tabModule()}
	for name, f := range params.Datasets {
		predeclared[name] = newDatasetValue(name, f)
	}

	thread := &starlark.Thread{
		Name: "exec",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(params.Stdout, msg)
		},
	}

	if _, err := starlark.ExecFileOptions(e.options, thread, "<code>", params.Code, predeclared); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}
