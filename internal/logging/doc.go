// Package logging constructs the application's slog logger and provides the
// small attribute vocabulary the rest of the code uses. Console output is a
// compact single-line format; JSON output is available for log shipping.
package logging
