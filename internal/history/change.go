// Package history models the changes recorded in origin and destination
// repositories and the readers that produce them.
//
// Readers expose history as lazy, newest-first sequences. Consumers stop a
// walk early by breaking out of the range loop; nothing is read past that point.
package history

import (
	"fmt"
	"strings"
	"time"
)

// Author identifies the author of a change
type Author struct {
	Name  string
	Email string
}

// String renders the author as "Name <email>"
func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// ParseAuthor parses "Name <email>". A bare email is accepted with an empty name.
func ParseAuthor(s string) (Author, error) {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "<")
	if open < 0 {
		if strings.Contains(s, "@") && !strings.ContainsAny(s, " >") {
			return Author{Email: s}, nil
		}
		return Author{}, fmt.Errorf("invalid author '%s': expected 'Name <email>'", s)
	}
	if !strings.HasSuffix(s, ">") {
		return Author{}, fmt.Errorf("invalid author '%s': expected 'Name <email>'", s)
	}
	return Author{
		Name:  strings.TrimSpace(s[:open]),
		Email: strings.TrimSpace(s[open+1 : len(s)-1]),
	}, nil
}

// Label is a name/value annotation recorded on a change
type Label struct {
	Name  string
	Value string
}

// Change is an immutable record of one commit in a repository's history
type Change struct {
	Ref     string
	Author  Author
	Message string
	Date    time.Time
	// Labels keeps declaration order; older changes may repeat a name.
	Labels []Label
}

// LabelValues returns every value recorded under name, in order
func (c Change) LabelValues(name string) []string {
	var values []string
	for _, l := range c.Labels {
		if l.Name == name {
			values = append(values, l.Value)
		}
	}
	return values
}

// HasLabel reports whether value is recorded under any of names
func (c Change) HasLabel(names []string, value string) (string, bool) {
	for _, l := range c.Labels {
		if l.Value != value {
			continue
		}
		for _, n := range names {
			if l.Name == n {
				return n, true
			}
		}
	}
	return "", false
}
