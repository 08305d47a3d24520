// Package types defines the value types shared by the objpool packages.
//
// Handles, block descriptions, compaction statistics and pool metrics live
// here so that the pool, its verifier, its printer and its metrics exporter
// can exchange them without importing each other.
//
// This package has no dependencies beyond the standard library.
package types
