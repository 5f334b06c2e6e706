package tokenizer

import "strings"

// ChoicesFn names a function that produces choices at runtime.
type ChoicesFn struct {
	Name     string
	Validate bool // false for the `[?`fn`]` form: values are suggestions only
}

// ParamData is the part shared by every parameter record.
//
// Default and DefaultFn are mutually exclusive, as are Choices and ChoicesFn.
type ParamData struct {
	Name      string
	Required  bool
	Multiple  bool
	Default   *string
	DefaultFn string
	Choices   []string
	ChoicesFn *ChoicesFn
}

// FlagOptionParam is an `@flag` or `@option` record.
type FlagOptionParam struct {
	ParamData
	Describe   string
	Short      string // "" or a single ASCII character other than '-'
	IsFlag     bool
	Dashes     string // "--", "-", or "" when only a short form was written
	ValueNames []string
}

// PositionalParam is an `@arg` record.
type PositionalParam struct {
	ParamData
	Describe  string
	ValueName *string
}

func newParamData(name string) ParamData {
	return ParamData{Name: name}
}

// modifier returns the suffix that reproduces Required/Multiple.
func (p ParamData) modifier() string {
	switch {
	case p.Required && p.Multiple:
		return "+"
	case p.Required:
		return "!"
	case p.Multiple:
		return "*"
	}
	return ""
}

// Render returns the canonical text of the name and its modifier clause.
func (p ParamData) Render() string {
	var b strings.Builder
	b.WriteString(p.Name)

	switch {
	case p.Choices != nil:
		b.WriteString(p.modifier())
		b.WriteByte('[')
		if p.Default != nil {
			b.WriteByte('=')
		}
		for i, choice := range p.Choices {
			if i > 0 {
				b.WriteByte('|')
			}
			b.WriteString(renderValue(choice, isChoiceValueTerminate, true))
		}
		b.WriteByte(']')
	case p.ChoicesFn != nil:
		b.WriteString(p.modifier())
		b.WriteByte('[')
		if !p.ChoicesFn.Validate {
			b.WriteByte('?')
		}
		b.WriteString("`" + p.ChoicesFn.Name + "`")
		b.WriteByte(']')
	case p.DefaultFn != "":
		b.WriteString("=`" + p.DefaultFn + "`")
	case p.Default != nil:
		b.WriteByte('=')
		b.WriteString(renderValue(*p.Default, isDefaultValueTerminate, false))
	default:
		b.WriteString(p.modifier())
	}

	return b.String()
}

// Render returns the canonical directive body, e.g. `-f --foo=a <FOO> A foo option`.
func (p FlagOptionParam) Render() string {
	var b strings.Builder
	if p.Dashes == "" {
		b.WriteByte('-')
	} else {
		if p.Short != "" {
			b.WriteString("-" + p.Short + " ")
		}
		b.WriteString(p.Dashes)
	}
	b.WriteString(p.ParamData.Render())
	for _, name := range p.ValueNames {
		b.WriteString(" <" + name + ">")
	}
	if p.Describe != "" {
		b.WriteString(" " + p.Describe)
	}
	return b.String()
}

// Render returns the canonical directive body, e.g. `foo <FOO> A foo arg`.
func (p PositionalParam) Render() string {
	var b strings.Builder
	b.WriteString(p.ParamData.Render())
	if p.ValueName != nil {
		b.WriteString(" <" + *p.ValueName + ">")
	}
	if p.Describe != "" {
		b.WriteString(" " + p.Describe)
	}
	return b.String()
}

// renderValue writes a default or choice value so that it scans back to
// itself. Values scanned from a bare run never hold a terminator, and values
// scanned from quotes never hold a backslash, so a backslash means bare.
func renderValue(value string, terminate func(rune) bool, choice bool) string {
	if value == "" && choice {
		return `""`
	}
	if value == "" || strings.ContainsRune(value, '\\') {
		return value
	}

	needsQuote := strings.ContainsFunc(value, terminate)
	switch value[0] {
	case '\'', '"', '`':
		needsQuote = true
	case '=':
		needsQuote = needsQuote || choice
	}
	if !needsQuote {
		return value
	}

	if strings.ContainsRune(value, '"') && !strings.ContainsRune(value, '\'') {
		return quoteValue(value, '\'')
	}
	return quoteValue(value, '"')
}
