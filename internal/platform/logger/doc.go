// Package logger provides structured logging functionality for the application.
//
// It builds on the standard library log/slog package: Setup installs a JSON
// handler as the process default, and the context helpers carry a
// request-scoped logger (already enriched with a trace ID) through handlers,
// services and stores.
package logger
