// Package tabular implements the columnar dataset type the kernel serves:
// named, immutable frames backed by Apache Arrow arrays, plus the file
// readers and summary reports built on top of them.
//
//   - Frames: ordered named columns of int64, float64, string, or bool,
//     with missing values stored as real Arrow nulls
//   - Readers: CSV, Excel (.xlsx), JSON (records or columns orient), and
//     Parquet, dispatched by file extension via Load
//   - Reports: a structural summary, include-all descriptive statistics,
//     and a first-rows preview, combined by MetadataReport
//
// Frames follow the Arrow retain/release convention but allocation goes
// through the Go allocator, so an unreleased frame is reclaimed by the
// garbage collector rather than leaked.
package tabular
