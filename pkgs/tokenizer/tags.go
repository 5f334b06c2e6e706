package tokenizer

import "strings"

// lineOutcome classifies one physical line
type lineOutcome int

const (
	lineIgnored   lineOutcome = iota // blank, code, shebang, plain comment
	lineMalformed                    // a parameter tag whose body failed
	lineEvent                        // a fully parsed EventData
)

var (
	textTags  = []string{"describe", "version", "author", "cmd"}
	paramTags = []string{"flag", "option", "arg"}
)

// KnownTags lists every tag keyword the grammar understands.
func KnownTags() []string {
	tags := make([]string, 0, len(textTags)+len(paramTags)+1)
	tags = append(tags, textTags...)
	tags = append(tags, paramTags...)
	return append(tags, "alias")
}

// parseLine classifies a line. For lineMalformed the returned string is the
// tag keyword whose body failed.
func parseLine(line string) (EventData, string, lineOutcome) {
	if rest, ok := parseDirectiveIntroducer(line); ok {
		if data, keyword, outcome := parseTag(rest); outcome != lineIgnored {
			return data, keyword, outcome
		}
	}
	if name, ok := parseFn(line); ok {
		return Func{Name: name}, "", lineEvent
	}
	return nil, "", lineIgnored
}

// parseDirectiveIntroducer matches `#...#`, optional spaces, then `@`.
func parseDirectiveIntroducer(line string) (string, bool) {
	rest, ok := many1Hash(line)
	if !ok {
		return line, false
	}
	return char(space0(rest), '@')
}

// parseTag dispatches on the word following `@`. lineIgnored means the tag
// grammar did not match at all.
func parseTag(s string) (EventData, string, lineOutcome) {
	if data, ok := parseTextTag(s); ok {
		return data, "", lineEvent
	}
	if keyword, ok := matchParamTag(s); ok {
		if data, ok := parseParamTag(keyword, s[len(keyword):]); ok {
			return data, "", lineEvent
		}
		return nil, keyword, lineMalformed
	}
	if data, ok := parseAliasTag(s); ok {
		return data, "", lineEvent
	}
	if name, _, ok := scanName(s); ok {
		return Unknown{Name: name}, "", lineEvent
	}
	return nil, "", lineIgnored
}

func parseTextTag(s string) (EventData, bool) {
	for _, keyword := range textTags {
		rest, ok := tag(s, keyword)
		if !ok {
			continue
		}
		text, ok := parseTail(rest)
		if !ok {
			return nil, false
		}
		switch keyword {
		case "describe":
			return Describe{Text: text}, true
		case "version":
			return Version{Text: text}, true
		case "author":
			return Author{Text: text}, true
		default:
			return Cmd{Text: text}, true
		}
	}
	return nil, false
}

// matchParamTag only looks at the keyword prefix: `@options` commits to the
// option grammar and then fails, it is never an unknown tag.
func matchParamTag(s string) (string, bool) {
	for _, keyword := range paramTags {
		if strings.HasPrefix(s, keyword) {
			return keyword, true
		}
	}
	return "", false
}

func parseParamTag(keyword, s string) (EventData, bool) {
	rest, ok := space1(s)
	if !ok {
		return nil, false
	}
	switch keyword {
	case "flag":
		if p, ok := parseFlagParam(rest); ok {
			return FlagOption{Param: p}, true
		}
	case "option":
		if p, ok := parseOptionParam(rest); ok {
			return FlagOption{Param: p}, true
		}
	case "arg":
		if p, ok := parsePositionalParam(rest); ok {
			return Positional{Param: p}, true
		}
	}
	return nil, false
}

// parseAliasTag parses `alias a, b,c`. Input after the last name is ignored.
func parseAliasTag(s string) (EventData, bool) {
	rest, ok := tag(s, "alias")
	if !ok {
		return nil, false
	}
	if rest, ok = space1(rest); !ok {
		return nil, false
	}

	name, rest, ok := scanName(space0(rest))
	if !ok {
		return nil, false
	}
	names := []string{name}
	rest = space0(rest)
	for {
		next, ok := char(rest, ',')
		if !ok {
			break
		}
		name, next, ok := scanName(space0(next))
		if !ok {
			break
		}
		names = append(names, name)
		rest = space0(next)
	}
	return Aliases{Names: names}, true
}

// parseFn recognizes `function NAME` and `NAME ()` headers.
func parseFn(line string) (string, bool) {
	s := space0(line)
	if rest, ok := tag(s, "function"); ok {
		if rest, ok = space1(rest); ok {
			if name, _, ok := scanFnName(rest); ok {
				return name, true
			}
		}
	}

	name, rest, ok := scanFnName(s)
	if !ok {
		return "", false
	}
	if rest, ok = char(space0(rest), '('); !ok {
		return "", false
	}
	if _, ok = char(space0(rest), ')'); !ok {
		return "", false
	}
	return name, true
}
