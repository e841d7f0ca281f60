package transform

import (
	"fmt"
	"maps"
	"slices"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
	"github.com/MedMaalej/copybara/internal/history"
)

type authorMapping struct {
	// from is either "Name <email>" or a bare email
	from       string
	fromAuthor history.Author
	to         history.Author
}

// MapAuthor replaces the author of a change using a fixed mapping. Keys match
// either the full "Name <email>" form or only the email.
type MapAuthor struct {
	mappings []authorMapping
	location Location
}

// NewMapAuthor parses mapping, whose values must be "Name <email>"
func NewMapAuthor(mapping map[string]string, loc Location) (*MapAuthor, error) {
	m := &MapAuthor{location: loc}
	for _, from := range slices.Sorted(maps.Keys(mapping)) {
		fromAuthor, err := history.ParseAuthor(from)
		if err != nil {
			return nil, cberrors.NewConfigValidationError(loc.String(), "%v", err)
		}
		to, err := history.ParseAuthor(mapping[from])
		if err != nil {
			return nil, cberrors.NewConfigValidationError(loc.String(), "%v", err)
		}
		if to.Name == "" {
			return nil, cberrors.NewConfigValidationError(loc.String(), "author '%s' must have a name", mapping[from])
		}
		if fromAuthor.Name != "" {
			from = fromAuthor.String()
		}
		m.mappings = append(m.mappings, authorMapping{from: from, fromAuthor: fromAuthor, to: to})
	}
	return m, nil
}

func (m *MapAuthor) lookup(author history.Author) (history.Author, bool) {
	full := author.String()
	for _, mapping := range m.mappings {
		if mapping.from == full {
			return mapping.to, true
		}
	}
	for _, mapping := range m.mappings {
		if mapping.fromAuthor.Name == "" && mapping.from == author.Email {
			return mapping.to, true
		}
	}
	return history.Author{}, false
}

// Transform replaces the author when it is mapped
func (m *MapAuthor) Transform(work *WorkContext) error {
	if to, ok := m.lookup(work.Author()); ok {
		work.Splog().Debug("Mapping author %s to %s", work.Author(), to)
		work.SetAuthor(to)
	}
	return nil
}

// Reverse inverts the mapping. It requires every key to be a full author and
// no two keys to map to the same author.
func (m *MapAuthor) Reverse() (Step, error) {
	reversed := &MapAuthor{location: m.location}
	seen := make(map[string]bool, len(m.mappings))
	for _, mapping := range m.mappings {
		if mapping.fromAuthor.Name == "" {
			return nil, cberrors.NewNonReversibleError(m.Describe(), m.location.String(),
				fmt.Sprintf("'%s' has no name", mapping.from))
		}
		to := mapping.to.String()
		if seen[to] {
			return nil, cberrors.NewNonReversibleError(m.Describe(), m.location.String(),
				fmt.Sprintf("'%s' is mapped from more than one author", to))
		}
		seen[to] = true
		reversed.mappings = append(reversed.mappings, authorMapping{
			from:       to,
			fromAuthor: mapping.to,
			to:         mapping.fromAuthor,
		})
	}
	return reversed, nil
}

// Describe summarizes the mapping
func (m *MapAuthor) Describe() string {
	return fmt.Sprintf("Map %d author(s)", len(m.mappings))
}

func (m *MapAuthor) isStep() {}
