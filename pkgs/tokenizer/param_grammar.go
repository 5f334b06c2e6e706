package tokenizer

import "strings"

// Parameter grammar. Each rule returns on the first alternative that
// matches and is never revisited if a later step of the caller fails; the
// order of alternatives in parseParamClause decides which rule owns an
// ambiguous prefix such as `=a`, so it must not be reordered.

// parseParamClause parses a name plus its modifier/choice/default clause.
func parseParamClause(s string) (ParamData, string, bool) {
	if p, rest, ok := parseModifierChoicesDefault(s); ok {
		return p, rest, true
	}
	if p, rest, ok := parseModifierChoicesFn(s); ok {
		return p, rest, true
	}
	if p, rest, ok := parseModifierChoices(s); ok {
		return p, rest, true
	}
	if p, rest, ok := parseAssignFn(s); ok {
		return p, rest, true
	}
	if p, rest, ok := parseAssign(s); ok {
		return p, rest, true
	}
	return parseModifier(s)
}

// parseModifier parses `name`, `name!`, `name*` or `name+`.
func parseModifier(s string) (ParamData, string, bool) {
	name, rest, ok := scanName(s)
	if !ok {
		return ParamData{}, s, false
	}
	p := newParamData(name)
	if rest == "" {
		return p, rest, true
	}
	switch rest[0] {
	case '!':
		p.Required = true
	case '*':
		p.Multiple = true
	case '+':
		p.Required = true
		p.Multiple = true
	default:
		return p, rest, true
	}
	return p, rest[1:], true
}

// parseAssign parses `name=value` where value is quoted or a bare run.
func parseAssign(s string) (ParamData, string, bool) {
	name, rest, ok := scanName(s)
	if !ok {
		return ParamData{}, s, false
	}
	if rest, ok = char(rest, '='); !ok {
		return ParamData{}, s, false
	}
	value, rest := scanDefaultValue(rest)
	p := newParamData(name)
	p.Default = &value
	return p, rest, true
}

// parseAssignFn parses name=`fn`.
func parseAssignFn(s string) (ParamData, string, bool) {
	name, rest, ok := scanName(s)
	if !ok {
		return ParamData{}, s, false
	}
	if rest, ok = char(rest, '='); !ok {
		return ParamData{}, s, false
	}
	fn, rest, ok := scanValueFn(rest)
	if !ok {
		return ParamData{}, s, false
	}
	p := newParamData(name)
	p.DefaultFn = fn
	return p, rest, true
}

// parseModifierChoicesDefault parses `name[=a|b|...]`. The first choice
// becomes the default and the parameter is never required.
func parseModifierChoicesDefault(s string) (ParamData, string, bool) {
	p, rest, ok := parseModifier(s)
	if !ok {
		return ParamData{}, s, false
	}
	if rest, ok = tag(rest, "[="); !ok {
		return ParamData{}, s, false
	}

	head, rest, ok := scanChoiceValue(rest)
	if !ok {
		return ParamData{}, s, false
	}
	choices := []string{head}
	choices, rest = appendPipedChoices(choices, rest)
	if len(choices) < 2 {
		return ParamData{}, s, false
	}

	if rest, ok = char(rest, ']'); !ok {
		return ParamData{}, s, false
	}
	p.Choices = choices
	p.Required = false
	p.Default = &head
	return p, rest, true
}

// parseModifierChoicesFn parses name[`fn`] and name[?`fn`].
func parseModifierChoicesFn(s string) (ParamData, string, bool) {
	p, rest, ok := parseModifier(s)
	if !ok {
		return ParamData{}, s, false
	}
	if rest, ok = char(rest, '['); !ok {
		return ParamData{}, s, false
	}
	rest, suggestOnly := char(rest, '?')
	fn, rest, ok := scanValueFn(rest)
	if !ok {
		return ParamData{}, s, false
	}
	if rest, ok = char(rest, ']'); !ok {
		return ParamData{}, s, false
	}
	p.ChoicesFn = &ChoicesFn{Name: fn, Validate: !suggestOnly}
	return p, rest, true
}

// parseModifierChoices parses `name[a|b|...]`. An empty list `[]` is
// rejected; `[""]` is a list holding one empty choice.
func parseModifierChoices(s string) (ParamData, string, bool) {
	p, rest, ok := parseModifier(s)
	if !ok {
		return ParamData{}, s, false
	}
	if rest, ok = char(rest, '['); !ok || strings.HasPrefix(rest, "]") {
		return ParamData{}, s, false
	}

	head, rest, ok := scanChoiceValue(rest)
	if !ok {
		return ParamData{}, s, false
	}
	choices, rest := appendPipedChoices([]string{head}, rest)

	if rest, ok = char(rest, ']'); !ok {
		return ParamData{}, s, false
	}
	p.Choices = choices
	return p, rest, true
}

// appendPipedChoices consumes `|value` pairs while both parts match. A `|`
// whose value fails is left in the input.
func appendPipedChoices(choices []string, s string) ([]string, string) {
	for {
		next, ok := char(s, '|')
		if !ok {
			return choices, s
		}
		value, next, ok := scanChoiceValue(next)
		if !ok {
			return choices, s
		}
		choices = append(choices, value)
		s = next
	}
}

// parseValueNotations reads zero or more <NOTATION> placeholders.
func parseValueNotations(s string) ([]string, string) {
	var names []string
	for {
		name, rest, ok := scanNotation(s)
		if !ok {
			return names, s
		}
		names = append(names, name)
		s = rest
	}
}

// parseShort reads `-X` when X is a short-flag character followed by
// whitespace. The whitespace is left in the input.
func parseShort(s string) (string, string) {
	if len(s) >= 3 && s[0] == '-' && isShortByte(s[1]) && s[2] < 128 && isHSpace[s[2]] {
		return s[1:2], s[2:]
	}
	return "", s
}

func parseDashes(s string) (string, string, bool) {
	if rest, ok := tag(s, "--"); ok {
		return "--", rest, true
	}
	if rest, ok := tag(s, "-"); ok {
		return "-", rest, true
	}
	return "", s, false
}

// hasSingleAlnumLead rejects `-fo...`: a short-only option may not start
// with more than one alphanumeric character.
func hasSingleAlnumLead(s string) bool {
	n := 0
	for n < len(s) && s[n] < 128 && isAlnum[s[n]] {
		n++
	}
	return n <= 1
}

// parseOptionParam parses the body of an `@option` directive.
func parseOptionParam(s string) (FlagOptionParam, bool) {
	if p, ok := parseLongOptionParam(s); ok {
		return p, true
	}
	return parseShortOptionParam(s)
}

// parseLongOptionParam parses `[-s ]--name...` and `[-s ]-name...`.
func parseLongOptionParam(s string) (FlagOptionParam, bool) {
	short, rest := parseShort(s)
	dashes, rest, ok := parseDashes(space0(rest))
	if !ok {
		return FlagOptionParam{}, false
	}
	data, rest, ok := parseParamClause(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	names, rest := parseValueNotations(rest)
	describe, ok := parseTail(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	return FlagOptionParam{
		ParamData:  data,
		Describe:   describe,
		Short:      short,
		Dashes:     dashes,
		ValueNames: names,
	}, true
}

// parseShortOptionParam parses `-s...` with no long name. The single
// character is both the name and the short designator.
func parseShortOptionParam(s string) (FlagOptionParam, bool) {
	rest, ok := char(space0(s), '-')
	if !ok || !hasSingleAlnumLead(rest) {
		return FlagOptionParam{}, false
	}
	data, rest, ok := parseParamClause(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	names, rest := parseValueNotations(rest)
	describe, ok := parseTail(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	return FlagOptionParam{
		ParamData:  data,
		Describe:   describe,
		Short:      data.Name[:1],
		ValueNames: names,
	}, true
}

// parseFlagParam parses the body of an `@flag` directive. Flags only accept
// the `*` modifier and never carry notations or value clauses.
func parseFlagParam(s string) (FlagOptionParam, bool) {
	if p, ok := parseLongFlagParam(s); ok {
		return p, true
	}
	return parseShortFlagParam(s)
}

func parseLongFlagParam(s string) (FlagOptionParam, bool) {
	short, rest := parseShort(s)
	dashes, rest, ok := parseDashes(space0(rest))
	if !ok {
		return FlagOptionParam{}, false
	}
	name, rest, ok := scanName(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	data := newParamData(name)
	rest, data.Multiple = char(rest, '*')
	describe, ok := parseTail(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	return FlagOptionParam{
		ParamData: data,
		Describe:  describe,
		Short:     short,
		IsFlag:    true,
		Dashes:    dashes,
	}, true
}

// parseShortFlagParam parses `-s`, `-s*`; s may be punctuation such as `#`.
func parseShortFlagParam(s string) (FlagOptionParam, bool) {
	rest, ok := char(space0(s), '-')
	if !ok || rest == "" || !isShortByte(rest[0]) {
		return FlagOptionParam{}, false
	}
	data := newParamData(rest[:1])
	rest, data.Multiple = char(rest[1:], '*')
	describe, ok := parseTail(rest)
	if !ok {
		return FlagOptionParam{}, false
	}
	return FlagOptionParam{
		ParamData: data,
		Describe:  describe,
		Short:     data.Name,
		IsFlag:    true,
	}, true
}

// parsePositionalParam parses the body of an `@arg` directive.
func parsePositionalParam(s string) (PositionalParam, bool) {
	data, rest, ok := parseParamClause(s)
	if !ok {
		return PositionalParam{}, false
	}
	var valueName *string
	if name, next, ok := scanNotation(rest); ok {
		valueName = &name
		rest = next
	}
	describe, ok := parseTail(rest)
	if !ok {
		return PositionalParam{}, false
	}
	return PositionalParam{
		ParamData: data,
		Describe:  describe,
		ValueName: valueName,
	}, true
}
