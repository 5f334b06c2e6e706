// Package lint reports suspicious directives in a tokenized script.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/mod/semver"

	"github.com/aledsdavies/argtags/pkgs/tokenizer"
)

// Severity ranks a diagnostic
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// Diagnostic is one finding tied to the line of the event that caused it.
type Diagnostic struct {
	Severity   Severity
	Line       int
	Message    string
	Suggestion string // empty when there is nothing to propose
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%d: %s: %s", d.Line, d.Severity, d.Message)
	if d.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean @%s?)", d.Suggestion)
	}
	return msg
}

// maxEditDistance bounds suggestions that are not fuzzy subsequence matches.
const maxEditDistance = 2

// Check returns the diagnostics for events in line order.
func Check(events []tokenizer.Event) []Diagnostic {
	var diags []Diagnostic
	known := tokenizer.KnownTags()

	for _, ev := range events {
		switch d := ev.Data.(type) {
		case tokenizer.Unknown:
			diags = append(diags, Diagnostic{
				Severity:   SeverityWarning,
				Line:       ev.Position,
				Message:    fmt.Sprintf("unknown tag @%s", d.Name),
				Suggestion: closestTag(d.Name, known),
			})
		case tokenizer.Version:
			if !isSemver(d.Text) {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Line:     ev.Position,
					Message:  fmt.Sprintf("version %q is not a semantic version", d.Text),
				})
			}
		case tokenizer.Describe:
			if d.Text == "" {
				diags = append(diags, emptyText(ev.Position, "describe"))
			}
		case tokenizer.Cmd:
			if d.Text == "" {
				diags = append(diags, emptyText(ev.Position, "cmd"))
			}
		}
	}
	return diags
}

func emptyText(line int, tag string) Diagnostic {
	return Diagnostic{
		Severity: SeverityInfo,
		Line:     line,
		Message:  fmt.Sprintf("@%s has no description", tag),
	}
}

// isSemver accepts versions with or without the leading "v".
func isSemver(s string) bool {
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}

// closestTag finds the known tag nearest to name. Prefix-like typos such as
// "desc" rank through fuzzy matching; transpositions such as "optoin" fall
// back to edit distance.
func closestTag(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxEditDistance+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if dist := fuzzy.LevenshteinDistance(lower, c); dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}
