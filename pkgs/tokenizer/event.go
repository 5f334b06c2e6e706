package tokenizer

import "fmt"

// Event is one logical directive (or function header) found in a script.
type Event struct {
	Data     EventData
	Position int // 1-based line of the directive's first physical line
}

// EventKind identifies the variant held by an EventData
type EventKind int

const (
	KindDescribe EventKind = iota
	KindVersion
	KindAuthor
	KindCmd
	KindAliases
	KindFlagOption
	KindPositional
	KindFunc
	KindUnknown
)

var kindNames = [...]string{
	KindDescribe:   "describe",
	KindVersion:    "version",
	KindAuthor:     "author",
	KindCmd:        "cmd",
	KindAliases:    "aliases",
	KindFlagOption: "flag_option",
	KindPositional: "positional",
	KindFunc:       "func",
	KindUnknown:    "unknown",
}

func (k EventKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// EventData is the closed set of payloads an Event can carry.
// The unexported method keeps the set sealed to this package.
type EventData interface {
	Kind() EventKind
	eventData()
}

// Describe is the description of the script or of the enclosing command.
type Describe struct{ Text string }

// Version is the `@version` text.
type Version struct{ Text string }

// Author is the `@author` text.
type Author struct{ Text string }

// Cmd opens a subcommand block; Text is its description.
type Cmd struct{ Text string }

// Aliases lists alternate names for the nearest preceding Cmd.
type Aliases struct{ Names []string }

// FlagOption is an `@flag` or `@option` parameter.
type FlagOption struct{ Param FlagOptionParam }

// Positional is an `@arg` parameter.
type Positional struct{ Param PositionalParam }

// Func is a shell function header. It implicitly closes a Cmd's parameter list.
type Func struct{ Name string }

// Unknown is an `@word` tag whose word is not recognized.
type Unknown struct{ Name string }

func (Describe) Kind() EventKind   { return KindDescribe }
func (Version) Kind() EventKind    { return KindVersion }
func (Author) Kind() EventKind     { return KindAuthor }
func (Cmd) Kind() EventKind        { return KindCmd }
func (Aliases) Kind() EventKind    { return KindAliases }
func (FlagOption) Kind() EventKind { return KindFlagOption }
func (Positional) Kind() EventKind { return KindPositional }
func (Func) Kind() EventKind       { return KindFunc }
func (Unknown) Kind() EventKind    { return KindUnknown }

func (Describe) eventData()   {}
func (Version) eventData()    {}
func (Author) eventData()     {}
func (Cmd) eventData()        {}
func (Aliases) eventData()    {}
func (FlagOption) eventData() {}
func (Positional) eventData() {}
func (Func) eventData()       {}
func (Unknown) eventData()    {}
