// Package tokenizer turns the tagged comments of a shell script into an
// ordered stream of events.
//
// A script annotates itself with directives:
//
//	# @describe A demo cli
//	# @cmd Build the project
//	# @alias b
//	# @option -t --target[=debug|release] <TARGET> Build profile
//	# @flag -v --verbose*  Repeat for more output
//	# @arg paths* <PATH>   Files to build
//	build() { :; }
//
// Each directive, and each function header, becomes one Event positioned at
// its first line. Plain comment lines directly under a directive with free
// text are folded into that text. Tags the grammar does not know become
// Unknown events rather than errors.
package tokenizer

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aledsdavies/argtags/pkgs/errors"
	"github.com/aledsdavies/argtags/pkgs/invariant"
)

// Tokenize parses source into events. It fails on the first line that is
// malformed and returns no partial result.
func Tokenize(source string, opts ...Option) ([]Event, error) {
	cfg := newConfig(opts)
	start := time.Now()

	lines := splitLines(source)
	events := make([]Event, 0, len(lines)/4+1)
	var continued, ignored int

	idx, prev := 0, -1
	for idx < len(lines) {
		invariant.Invariant(idx > prev, "line index must advance")
		prev = idx

		line := lines[idx]
		position := idx + 1
		if !utf8.ValidString(line) {
			return nil, errors.NewStructuralError(position, "line is not valid UTF-8")
		}

		data, keyword, outcome := parseLine(line)
		switch outcome {
		case lineMalformed:
			return nil, errors.NewDirectiveError(position, keyword, strings.TrimSpace(line))
		case lineIgnored:
			ignored++
		case lineEvent:
			var consumed int
			data, consumed = takeContinuations(data, lines, idx+1)
			if consumed > 0 {
				cfg.debug("folded continuation lines", "line", position, "count", consumed)
			}
			continued += consumed
			idx += consumed
			events = append(events, Event{Data: data, Position: position})
			cfg.debug("event", "line", position, "kind", data.Kind())
		}
		idx++
	}
	invariant.Postcondition(len(events)+continued+ignored == len(lines), "every line must be accounted for")

	if cfg.telemetry != nil {
		*cfg.telemetry = Telemetry{
			Lines:             len(lines),
			Events:            len(events),
			ContinuationLines: continued,
			IgnoredLines:      ignored,
			Duration:          time.Since(start),
		}
	}
	return events, nil
}

// splitLines splits on '\n', drops one trailing '\r' per line, and yields
// no final empty line for a source ending in a newline.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// takeContinuations extends the free-text field of data with the plain
// comment lines starting at lines[from]. It returns the new data and the
// number of lines consumed.
func takeContinuations(data EventData, lines []string, from int) (EventData, int) {
	var n int
	switch d := data.(type) {
	case Describe:
		d.Text, n = takeCommentLines(lines, from, d.Text)
		return d, n
	case Cmd:
		d.Text, n = takeCommentLines(lines, from, d.Text)
		return d, n
	case FlagOption:
		d.Param.Describe, n = takeCommentLines(lines, from, d.Param.Describe)
		return d, n
	case Positional:
		d.Param.Describe, n = takeCommentLines(lines, from, d.Param.Describe)
		return d, n
	}
	return data, 0
}

// takeCommentLines stops before an invalid UTF-8 line so that the caller
// reports it.
func takeCommentLines(lines []string, from int, text string) (string, int) {
	var b strings.Builder
	b.WriteString(text)
	count := 0
	for _, line := range lines[from:] {
		if !utf8.ValidString(line) {
			break
		}
		comment, ok := parsePlainComment(line)
		if !ok {
			break
		}
		b.WriteByte('\n')
		b.WriteString(comment)
		count++
	}
	return strings.TrimSpace(b.String()), count
}

// parsePlainComment matches a comment line that does not start a directive
// and returns its text with the marker and one separator removed.
func parsePlainComment(line string) (string, bool) {
	rest, ok := many1Hash(line)
	if !ok {
		return "", false
	}
	if space0(rest) == "" {
		return "", true
	}
	if rest[0] == ' ' || rest[0] == '\t' {
		rest = rest[1:]
	}
	if strings.HasPrefix(space0(rest), "@") {
		return "", false
	}
	return rest, true
}
