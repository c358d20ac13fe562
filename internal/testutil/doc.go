// Package testutil provides shared fixtures for kernel tests: a canned
// sample table and writers that render it to each supported file format
// under a test's temp directory.
package testutil
