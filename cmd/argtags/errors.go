package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/aledsdavies/argtags/pkgs/errors"
)

var (
	errorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	detailStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// FormatError writes err for a person to read. Directive errors show the
// offending line below the message.
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", colorize(errorLabelStyle, "Error:", useColor), err.Error())

	if errors.IsErrorType(err, errors.ErrDirectiveBody) {
		if scriptErr, ok := errors.AsScriptError(err); ok {
			if text, ok := scriptErr.GetContext("text"); ok {
				detail := fmt.Sprintf("  %d | %v", scriptErr.Line, text)
				_, _ = fmt.Fprintln(w, colorize(detailStyle, detail, useColor))
			}
		}
	}

	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", colorize(hintLabelStyle, "Hint:", useColor), hint)
	}
}

func hintFor(err error) string {
	switch {
	case errors.IsErrorType(err, errors.ErrFileNotFound):
		return "point --file at the script, or pipe it on stdin"
	case errors.IsErrorType(err, errors.ErrStructural):
		return "the script must be UTF-8 text"
	}
	return ""
}

func colorize(style lipgloss.Style, text string, useColor bool) string {
	if !useColor {
		return text
	}
	return style.Render(text)
}

// ShouldUseColor determines if color output should be used
// Respects --no-color flag and NO_COLOR environment variable
func ShouldUseColor(noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
