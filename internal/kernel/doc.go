// Package kernel implements the command loop an editor host drives over
// the process's standard streams:
//
//   - stdin: one JSON command per line (load, execute, get-info)
//   - stdout: results, then the sentinel line after every command
//   - stderr: one tagged diagnostic line per failure, plus logs
//
// The loop is strictly sequential. Every error is handled in place, the
// sentinel is emitted no matter how a line fares, and the loop only stops
// when stdin reaches EOF. Dataset state lives in an injected
// dataset.Store, so independent loops never share anything.
package kernel
