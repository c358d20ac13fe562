package script

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// maxCachedPrograms caps the compiled-program cache; once full it resets,
// so hosts streaming distinct expressions cannot grow it without bound.
const maxCachedPrograms = 256

// CELEngine evaluates a single CEL expression per command. Each dataset is
// declared as list(map(string, dyn)) and materialized as records, and the
// expression's value is returned for the kernel to print.
type CELEngine struct {
	mu   sync.Mutex
	prgs map[string]cel.Program
}

// NewCELEngine creates the engine with an empty program cache.
func NewCELEngine() *CELEngine {
	return &CELEngine{prgs: make(map[string]cel.Program)}
}

// Name implements Engine.
func (e *CELEngine) Name() string { return "cel" }

// Execute implements Engine. Compiled programs are cached keyed on the
// expression and the set of dataset names it was compiled against.
func (e *CELEngine) Execute(ctx context.Context, params Params) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	names := make([]string, 0, len(params.Datasets))
	for name := range params.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	key := strings.Join(names, ",") + "\x00" + params.Code
	prg, err := e.program(key, names, params.Code)
	if err != nil {
		return Result{}, err
	}

	activation := make(map[string]any, len(params.Datasets))
	for name, f := range params.Datasets {
		activation[name] = f.Records()
	}
	out, _, err := prg.Eval(activation)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: formatCELValue(out.Value()), HasValue: true}, nil
}

func (e *CELEngine) program(key string, names []string, code string) (cel.Program, error) {
	e.mu.Lock()
	cached, ok := e.prgs[key]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	opts := make([]cel.EnvOption, 0, len(names))
	for _, name := range names {
		opts = append(opts, cel.Declarations(
			decls.NewVar(name, decls.NewListType(decls.NewMapType(decls.String, decls.Dyn)))))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating cel environment: %w", err)
	}
	ast, iss := env.Compile(code)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("building cel program: %w", err)
	}

	e.mu.Lock()
	if len(e.prgs) >= maxCachedPrograms {
		e.prgs = make(map[string]cel.Program)
	}
	e.prgs[key] = prg
	e.mu.Unlock()
	return prg, nil
}

// formatCELValue renders an evaluation result for the output stream.
// Strings print raw; everything else through the default formatting.
func formatCELValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
