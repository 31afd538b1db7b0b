// Package logging provides slog setup and shared attribute helpers so log
// lines use consistent keys across the codebase.
package logging
