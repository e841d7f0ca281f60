package transform

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
	"github.com/MedMaalej/copybara/internal/history"
)

// ReferenceMigrator rewrites references embedded in a commit message from
// their origin form into their destination form.
//
// Every occurrence of the origin template is converted; text that does not
// match is left alone. A converted reference that does not satisfy the
// destination regex fails the whole change.
type ReferenceMigrator struct {
	template     *ReferenceTemplate
	conversion   Conversion
	legacyLabels []string
	location     Location
}

// NewReferenceMigrator creates a migrator from validated inputs. afterRef may be
// nil, in which case destination references are validated with beforeRef.
// legacyLabels names labels, recorded on historical changes, under which
// references may also be found.
func NewReferenceMigrator(before, after string, beforeRef, afterRef *regexp.Regexp, legacyLabels []string, loc Location) (*ReferenceMigrator, error) {
	template, err := newReferenceTemplate(before, after, beforeRef, afterRef, loc)
	if err != nil {
		return nil, err
	}
	return NewReferenceMigratorFromTemplate(template, legacyLabels, loc), nil
}

// NewReferenceMigratorFromTemplate creates a migrator for an already validated template
func NewReferenceMigratorFromTemplate(template *ReferenceTemplate, legacyLabels []string, loc Location) *ReferenceMigrator {
	return &ReferenceMigrator{
		template:     template,
		conversion:   DecimalToHex,
		legacyLabels: slices.Clone(legacyLabels),
		location:     loc,
	}
}

// Template returns the reference template
func (m *ReferenceMigrator) Template() *ReferenceTemplate {
	return m.template
}

// Conversion returns the numeric conversion applied to references
func (m *ReferenceMigrator) Conversion() Conversion {
	return m.conversion
}

// LegacyLabels returns the labels consulted in the change histories
func (m *ReferenceMigrator) LegacyLabels() []string {
	return slices.Clone(m.legacyLabels)
}

// Transform migrates every reference in the message. The message is only
// updated when all references convert.
func (m *ReferenceMigrator) Transform(work *WorkContext) error {
	message := work.Message()
	found := m.template.find(message)
	if len(found) == 0 {
		return nil
	}

	resolved := make(map[string]string, len(found))
	if len(m.legacyLabels) > 0 {
		if err := m.resolveLegacy(work, found, resolved); err != nil {
			return err
		}
	}

	var b strings.Builder
	last := 0
	for _, f := range found {
		converted, ok := resolved[f.value]
		if !ok {
			var err error
			if converted, err = m.convert(f.value); err != nil {
				return err
			}
			resolved[f.value] = converted
		}
		b.WriteString(message[last:f.start])
		b.WriteString(m.template.after.render(converted))
		last = f.end
	}
	b.WriteString(message[last:])

	work.SetMessage(b.String())
	work.Splog().Debug("Migrated %d reference(s) with '%s'", len(found), m.template.Before())
	return nil
}

func (m *ReferenceMigrator) convert(value string) (string, error) {
	converted, err := m.conversion.Apply(value)
	if err != nil {
		return "", cberrors.NewMalformedCaptureError(value, err)
	}
	if err := m.template.validate(converted); err != nil {
		return "", err
	}
	return converted, nil
}

// resolveLegacy looks up the references found in the message among the values
// recorded under the legacy labels of the current, then migrated, changes. The
// walk stops as soon as every reference has been seen. Resolved references are
// converted exactly like literal ones, so the resulting message is the same with
// or without legacy labels; the walk only validates early and logs where each
// reference was recorded. References that appear only in labels are not added.
func (m *ReferenceMigrator) resolveLegacy(work *WorkContext, found []refMatch, resolved map[string]string) error {
	pending := make(map[string]bool, len(found))
	for _, f := range found {
		pending[f.value] = true
	}

	for _, changes := range []iter.Seq[history.Change]{work.CurrentChanges(), work.MigratedChanges()} {
		for change := range changes {
			for value := range pending {
				label, ok := change.HasLabel(m.legacyLabels, value)
				if !ok {
					continue
				}
				converted, err := m.convert(value)
				if err != nil {
					return err
				}
				resolved[value] = converted
				delete(pending, value)
				work.Splog().Debug("Resolved reference %s to %s through label %s of change %s", value, converted, label, change.Ref)
			}
			if len(pending) == 0 {
				return nil
			}
		}
	}
	return nil
}

// Reverse returns a migrator for the opposite direction. Legacy labels are
// dropped: references found through them are only migrated forward.
func (m *ReferenceMigrator) Reverse() (Step, error) {
	template, err := m.template.swapped(m.location)
	if err != nil {
		reason := err.Error()
		var cfgErr *cberrors.ConfigValidationError
		if errors.As(err, &cfgErr) {
			reason = cfgErr.Message
		}
		return nil, cberrors.NewNonReversibleError(m.Describe(), m.location.String(), reason)
	}
	return &ReferenceMigrator{
		template:   template,
		conversion: m.conversion.Reverse(),
		location:   m.location,
	}, nil
}

// Describe summarizes the migration
func (m *ReferenceMigrator) Describe() string {
	return fmt.Sprintf("Map references '%s' to '%s'", m.template.Before(), m.template.After())
}

func (m *ReferenceMigrator) isStep() {}
