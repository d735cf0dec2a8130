// Package status prints leveled, colored messages to the terminal. It is a
// formatting concern only: no filtering, no structured fields, no buffering.
package status

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	out   io.Writer = color.Output
	stdin           = bufio.NewReader(os.Stdin)

	red     = color.New(color.FgRed)
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	magenta = color.New(color.FgMagenta)
)

// Error prints an error message in red.
func Error(format string, a ...interface{}) {
	red.Fprintf(out, "❌ "+format+"\n", a...)
}

// Success prints a success message in green.
func Success(format string, a ...interface{}) {
	green.Fprintf(out, "✅ "+format+"\n", a...)
}

// Info prints an informational message in magenta.
func Info(format string, a ...interface{}) {
	magenta.Fprintf(out, "ℹ️  "+format+"\n", a...)
}

// Warn prints a warning message in yellow.
func Warn(format string, a ...interface{}) {
	yellow.Fprintf(out, "⚠️  "+format+"\n", a...)
}

// Question prints a prompt in magenta and returns one trimmed line of input.
func Question(format string, a ...interface{}) string {
	magenta.Fprintf(out, "❓ "+format, a...)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}
