// Package logging is the structured logger shared by the credential table and
// the users service. The table logs growth at Debug and a full table at
// Error; the service logs account events at Info and Warn and storage
// failures at Error. SlogLogger is the only implementation; NewNop is what a
// table gets without WithLogger.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Debug(ctx, "table grown", "old_buckets", 8, "new_buckets", 16)
type Logger interface {
	// Debug logs diagnostic detail such as table growth.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
