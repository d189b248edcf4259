// Package docs holds the built-in help topics shown by 'appgen docs'.
package docs

import (
	"fmt"
	"strings"
)

// Topic is one help article. Content is plain text without ANSI codes.
type Topic struct {
	Name    string
	Title   string
	Summary string
	Content string
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Names lists the topic slugs in display order.
func Names() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Get returns the topic whose name equals or uniquely starts with name,
// ignoring case.
func Get(name string) (Topic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var matches []Topic
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
		if name != "" && strings.HasPrefix(t.Name, name) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Topic{}, fmt.Errorf("unknown topic %q: run 'appgen docs' to list available topics", name)
	default:
		names := make([]string, len(matches))
		for i, t := range matches {
			names[i] = t.Name
		}
		return Topic{}, fmt.Errorf("topic %q is ambiguous: %s", name, strings.Join(names, ", "))
	}
}
