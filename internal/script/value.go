package script

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/halfmoss/quern/internal/tabular"
)

// datasetValue exposes a frame to Starlark code as a first-class value.
type datasetValue struct {
	name  string
	frame *tabular.Frame
}

var (
	_ starlark.Value    = (*datasetValue)(nil)
	_ starlark.HasAttrs = (*datasetValue)(nil)
)

func newDatasetValue(name string, f *tabular.Frame) *datasetValue {
	return &datasetValue{name: name, frame: f}
}

// String renders the first rows plus the shape, which is what print(ds)
// shows.
func (d *datasetValue) String() string {
	return tabular.HeadString(d.frame, 10) + "\n" + d.frame.String()
}

// Type implements starlark.Value.
func (d *datasetValue) Type() string { return "dataset" }

// Freeze implements starlark.Value; frames are immutable already.
func (d *datasetValue) Freeze() {}

// Truth reports whether the dataset has any rows.
func (d *datasetValue) Truth() starlark.Bool { return d.frame.NumRows() > 0 }

// Hash implements starlark.Value; datasets are unhashable.
func (d *datasetValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: dataset")
}

// Attr returns a field or bound method of the dataset.
func (d *datasetValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(d.name), nil
	case "columns":
		names := d.frame.Names()
		elems := make([]starlark.Value, len(names))
		for i, n := range names {
			elems[i] = starlark.String(n)
		}
		return starlark.NewList(elems), nil
	case "shape":
		return starlark.Tuple{
			starlark.MakeInt(d.frame.NumRows()),
			starlark.MakeInt(d.frame.NumCols()),
		}, nil
	}
	if m := datasetMethods[name]; m != nil {
		return m.BindReceiver(d), nil
	}
	return nil, nil // no such attr
}

// AttrNames lists the dataset's fields and methods.
func (d *datasetValue) AttrNames() []string {
	names := []string{"columns", "name", "shape"}
	for name := range datasetMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var datasetMethods = map[string]*starlark.Builtin{
	"column":   starlark.NewBuiltin("column", dsColumn),
	"describe": starlark.NewBuiltin("describe", dsDescribe),
	"head":     starlark.NewBuiltin("head", dsHead),
	"info":     starlark.NewBuiltin("info", dsInfo),
	"row":      starlark.NewBuiltin("row", dsRow),
}

func dsHead(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 5
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}
	d := b.Receiver().(*datasetValue)
	return newDatasetValue(d.name, d.frame.Head(n)), nil
}

func dsInfo(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	d := b.Receiver().(*datasetValue)
	return starlark.String(tabular.Info(d.frame)), nil
}

func dsDescribe(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	d := b.Receiver().(*datasetValue)
	return starlark.String(tabular.Describe(d.frame)), nil
}

func dsColumn(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var colName string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &colName); err != nil {
		return nil, err
	}
	d := b.Receiver().(*datasetValue)
	col, ok := d.frame.Column(colName)
	if !ok {
		return nil, fmt.Errorf("%s: no column %q", b.Name(), colName)
	}
	elems := make([]starlark.Value, col.Len())
	for i := range elems {
		elems[i] = toStarlark(col.Value(i))
	}
	return starlark.NewList(elems), nil
}

func dsRow(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var i int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &i); err != nil {
		return nil, err
	}
	d := b.Receiver().(*datasetValue)
	if i < 0 || i >= d.frame.NumRows() {
		return nil, fmt.Errorf("%s: index %d out of range [0, %d)", b.Name(), i, d.frame.NumRows())
	}
	dict := starlark.NewDict(d.frame.NumCols())
	for _, c := range d.frame.Columns() {
		if err := dict.SetKey(starlark.String(c.Name()), toStarlark(c.Value(i))); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// toStarlark converts a frame cell to its Starlark counterpart. Nulls
// become None.
func toStarlark(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case int64:
		return starlark.MakeInt64(v)
	case float64:
		return starlark.Float(v)
	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	default:
		return starlark.String(fmt.Sprint(v))
	}
}

// tabModule builds the tab handle predeclared for every script: the file
// readers, so code can pull in data beyond what the host loaded.
func tabModule() *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "tab",
		Members: starlark.StringDict{
			"load":         starlark.NewBuiltin("tab.load", readBuiltin(tabular.Load)),
			"read_csv":     starlark.NewBuiltin("tab.read_csv", readBuiltin(tabular.ReadCSVFile)),
			"read_excel":   starlark.NewBuiltin("tab.read_excel", readBuiltin(tabular.ReadXLSX)),
			"read_json":    starlark.NewBuiltin("tab.read_json", readBuiltin(tabular.ReadJSONFile)),
			"read_parquet": starlark.NewBuiltin("tab.read_parquet", readBuiltin(tabular.ReadParquet)),
		},
	}
}

func readBuiltin(read func(string) (*tabular.Frame, error)) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var path string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &path); err != nil {
			return nil, err
		}
		f, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", b.Name(), err)
		}
		base := filepath.Base(path)
		return newDatasetValue(strings.TrimSuffix(base, filepath.Ext(base)), f), nil
	}
}
