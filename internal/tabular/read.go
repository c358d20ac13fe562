package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile marks a path whose extension no reader handles.
var ErrUnsupportedFile = errors.New("unsupported file type")

// readers maps a lowercased file extension to its reader.
var readers = map[string]func(string) (*Frame, error){
	".csv":     ReadCSVFile,
	".xlsx":    ReadXLSX,
	".json":    ReadJSONFile,
	".parquet": ReadParquet,
}

// Load reads the file at path into a frame, choosing the reader by file
// extension. The extension check is case-insensitive.
func Load(path string) (*Frame, error) {
	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w for: %s", ErrUnsupportedFile, path)
	}
	return read(path)
}

// SupportedExtensions returns the extensions Load accepts, for help text.
func SupportedExtensions() []string {
	return []string{".csv", ".json", ".parquet", ".xlsx"}
}
