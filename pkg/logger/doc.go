// Package logger constructs the application's slog.Logger: text output
// in development, JSON in production.
package logger
