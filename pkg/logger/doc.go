// Package logger builds the slog logger used by the runner binary: text
// output by default, JSON when asked for, with level names parsed
// case-insensitively.
package logger
