// Package cli provides shared helpers for the balticwatch command line:
// error types and signal handling.
package cli
