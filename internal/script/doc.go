// Package script provides the pluggable engines that run user code against
// the kernel's datasets.
//
// An Engine receives a snapshot of the dataset table and an output sink;
// what it binds the datasets to is its own affair. Two engines ship by
// default:
//
//   - starlark: full procedural scripts with datasets as first-class
//     values and a tab module for loading more data
//   - cel: single expressions over datasets materialized as lists of
//     records, whose result value is printed by the kernel
//
// Engines never write back into the dataset table: names rebound inside a
// script are gone when it finishes.
package script
