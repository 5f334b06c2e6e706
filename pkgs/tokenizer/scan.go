package tokenizer

import (
	"strings"
	"unicode"

	"github.com/aledsdavies/argtags/pkgs/invariant"
)

// ASCII character lookup tables for fast classification
var (
	isHSpace     [128]bool // space and tab only
	isNameChar   [128]bool // [A-Za-z0-9_.-]
	isFnReserved [128]bool // characters a function name cannot contain
	isAlnum      [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isHSpace[i] = ch == ' ' || ch == '\t'
		isAlnum[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
		isNameChar[i] = isAlnum[i] || ch == '_' || ch == '-' || ch == '.'
	}
	for _, ch := range []byte(" \t\"'`()[]{}<>$&\\;|") {
		isFnReserved[ch] = true
	}
}

func isNameRune(r rune) bool {
	return r < 128 && isNameChar[r]
}

func isFnNameRune(r rune) bool {
	return r >= 128 || !isFnReserved[r]
}

// isShortByte reports whether ch can follow a single dash as a short flag.
func isShortByte(ch byte) bool {
	return ch < 128 && !isFnReserved[ch] && ch != '-'
}

func isDefaultValueTerminate(r rune) bool {
	return unicode.IsSpace(r) || r == '#'
}

func isChoiceValueTerminate(r rune) bool {
	return r == '|' || r == ']'
}

// Every scanner below takes the remaining input and returns what it matched,
// the residual input, and whether it matched. On a miss the residual is the
// untouched input.

func takeWhile1(s string, pred func(rune) bool) (string, string, bool) {
	end := len(s)
	for i, r := range s {
		if !pred(r) {
			end = i
			break
		}
	}
	if end == 0 {
		return "", s, false
	}
	return s[:end], s[end:], true
}

// takeTill never fails; it may match the empty string.
func takeTill(s string, stop func(rune) bool) (string, string) {
	for i, r := range s {
		if stop(r) {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func scanName(s string) (string, string, bool) {
	return takeWhile1(s, isNameRune)
}

func scanFnName(s string) (string, string, bool) {
	return takeWhile1(s, isFnNameRune)
}

func space0(s string) string {
	i := 0
	for i < len(s) && s[i] < 128 && isHSpace[s[i]] {
		i++
	}
	return s[i:]
}

func space1(s string) (string, bool) {
	rest := space0(s)
	return rest, len(rest) < len(s)
}

func char(s string, ch byte) (string, bool) {
	if len(s) > 0 && s[0] == ch {
		return s[1:], true
	}
	return s, false
}

func tag(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func many1Hash(s string) (string, bool) {
	rest := strings.TrimLeft(s, "#")
	return rest, len(rest) < len(s)
}

// scanQuoted reads '...' or "...". Inside, a backslash may only escape the
// matching quote; the returned value has those escapes removed.
func scanQuoted(s string) (string, string, bool) {
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return "", s, false
	}
	quote := s[0]

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch ch := s[i]; ch {
		case quote:
			return b.String(), s[i+1:], true
		case '\\':
			if i+1 < len(s) && s[i+1] == quote {
				b.WriteByte(quote)
				i++
				continue
			}
			return "", s, false
		default:
			b.WriteByte(ch)
		}
	}
	return "", s, false
}

// quoteValue is the inverse of scanQuoted.
func quoteValue(value string, quote byte) string {
	invariant.Precondition(quote == '"' || quote == '\'', "quote must be ' or \", got %q", quote)
	q := string(quote)
	return q + strings.ReplaceAll(value, q, `\`+q) + q
}

func scanDefaultValue(s string) (string, string) {
	if value, rest, ok := scanQuoted(s); ok {
		return value, rest
	}
	return takeTill(s, isDefaultValueTerminate)
}

// scanChoiceValue refuses a leading '=' or '`' so that the defaulted-list
// and generator forms are tried by their own rules.
func scanChoiceValue(s string) (string, string, bool) {
	if strings.HasPrefix(s, "=") || strings.HasPrefix(s, "`") {
		return "", s, false
	}
	if value, rest, ok := scanQuoted(s); ok {
		return value, rest, true
	}
	value, rest := takeTill(s, isChoiceValueTerminate)
	return value, rest, true
}

// scanValueFn reads `name`.
func scanValueFn(s string) (string, string, bool) {
	rest, ok := char(s, '`')
	if !ok {
		return "", s, false
	}
	name, rest, ok := scanFnName(rest)
	if !ok {
		return "", s, false
	}
	if rest, ok = char(rest, '`'); !ok {
		return "", s, false
	}
	return name, rest, true
}

// scanNotation reads an optionally space-prefixed <...> whose interior may
// nest further angle brackets. The interior is returned verbatim.
func scanNotation(s string) (string, string, bool) {
	rest, ok := char(space0(s), '<')
	if !ok {
		return "", s, false
	}

	depth := 1
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return rest[:i], rest[i+1:], true
			}
		}
	}
	return "", s, false
}

// parseTail reads the free text ending a directive.
func parseTail(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	rest, ok := space1(s)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
