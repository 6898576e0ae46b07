// Package logging constructs slog loggers for podscribe and provides shared
// attribute helpers so components log with consistent field names.
package logging
