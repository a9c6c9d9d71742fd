// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Every record passes through a RedactingHandler so that
// credentials echoed by upstream errors never reach the log output.
package logger
