// Package slugs matches project names the way users type them.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// ProjectSlug converts a project name to its lowercase dashed form, so
// "Side Quests!" and "side-quests" compare equal.
func ProjectSlug(name string) string {
	name = strings.TrimSpace(name)
	slugged := goslug.Make(name)
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	}
	return slugged
}

// MatchProject finds name among projects by exact name first, then by slug.
// With several slug matches the first in file order wins.
func MatchProject(name string, projects []string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, p := range projects {
		if p == name {
			return p, true
		}
	}
	want := ProjectSlug(name)
	for _, p := range projects {
		if ProjectSlug(p) == want {
			return p, true
		}
	}
	return "", false
}

// Resolve returns the matching project name, or name trimmed when nothing
// matches so the caller's not-found error names what was asked for.
func Resolve(name string, projects []string) string {
	if match, ok := MatchProject(name, projects); ok {
		return match
	}
	return strings.TrimSpace(name)
}
