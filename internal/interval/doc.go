// Package interval provides the half-open time interval value type and the
// set algebra (merge, subtract, buffer expansion) the availability pipeline
// is built on. All operations treat their inputs as immutable and return
// fresh slices.
package interval
