// Package committype holds the conventional commit types the prompt may offer.
package committype

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// descriptions maps every known commit type to the hint shown to the model.
var descriptions = map[string]string{
	"feat":     "new feature",
	"fix":      "bug fix",
	"docs":     "documentation changes",
	"style":    "formatting, missing semicolons, etc",
	"refactor": "code restructuring",
	"perf":     "performance improvements",
	"test":     "adding tests",
	"chore":    "maintenance tasks",
	"revert":   "revert a previous commit",
	"build":    "build system or external dependencies",
	"ci":       "continuous integration configuration",
}

// defaults is the ordered list offered when no types are configured.
var defaults = []string{"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore", "revert"}

var subjectTypeRegex = regexp.MustCompile(`^([a-zA-Z]+)(?:\([^)]+\))?!?:`)

// Defaults returns the default commit types in prompt order.
func Defaults() []string {
	return append([]string(nil), defaults...)
}

// Known returns every registered commit type in alphabetical order.
func Known() []string {
	types := make([]string, 0, len(descriptions))
	for t := range descriptions {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Description returns the hint for commitType, or an empty string if it is unknown.
func Description(commitType string) string {
	return descriptions[strings.ToLower(commitType)]
}

// Validate reports the first type in types that is not registered.
func Validate(types []string) error {
	if len(types) == 0 {
		return fmt.Errorf("at least one commit type is required")
	}
	for _, t := range types {
		if Description(t) == "" {
			return fmt.Errorf("unknown commit type %q (known: %s)", t, strings.Join(Known(), ", "))
		}
	}
	return nil
}

// Describe formats types as "- type: description" lines.
func Describe(types []string) string {
	lines := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.ToLower(t)
		if d := descriptions[t]; d != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", t, d))
		} else {
			lines = append(lines, "- "+t)
		}
	}
	return strings.Join(lines, "\n")
}

// FromSubject extracts the commit type of a "type(scope): description" subject.
// It returns an empty string when the subject does not follow that shape.
func FromSubject(subject string) string {
	matches := subjectTypeRegex.FindStringSubmatch(strings.TrimSpace(subject))
	if len(matches) >= 2 {
		return strings.ToLower(matches[1])
	}
	return ""
}
