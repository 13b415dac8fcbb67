// Package logger builds the zerolog loggers used across setupassist. Console
// output (the conversation itself) never goes through it; it carries
// diagnostics only and writes to stderr by default.
package logger
