package transform

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
)

const (
	// ReferencePlaceholder is the only interpolation a reference template may use
	ReferencePlaceholder = "reference"
	// BeforeRefGroup names the regex that matches origin references
	BeforeRefGroup = "before_ref"
	// AfterRefGroup names the regex that validates destination references
	AfterRefGroup = "after_ref"

	reservedToken = "$1"
)

var interpolation = regexp.MustCompile(`\$\{([^}]*)\}`)

// refTemplate is a template split around its ${reference} interpolations
type refTemplate struct {
	raw      string
	literals []string
}

func parseRefTemplate(raw string, loc Location) (refTemplate, error) {
	t := refTemplate{raw: raw}
	last := 0
	for _, m := range interpolation.FindAllStringSubmatchIndex(raw, -1) {
		if name := raw[m[2]:m[3]]; name != ReferencePlaceholder {
			return refTemplate{}, cberrors.NewConfigValidationError(loc.String(),
				"Interpolation is used but not defined: %s", name)
		}
		t.literals = append(t.literals, raw[last:m[0]])
		last = m[1]
	}
	t.literals = append(t.literals, raw[last:])
	if t.uses() == 0 {
		return refTemplate{}, cberrors.NewConfigValidationError(loc.String(),
			"Interpolation is defined but not used: %s", ReferencePlaceholder)
	}
	return t, nil
}

func (t refTemplate) uses() int {
	return len(t.literals) - 1
}

func groupName(i int) string {
	return fmt.Sprintf("%s%d", ReferencePlaceholder, i)
}

// search builds the non-anchored pattern matching the template, with one named
// group per interpolation
func (t refTemplate) search(ref *regexp.Regexp) (*regexp.Regexp, error) {
	var b strings.Builder
	for i, literal := range t.literals {
		b.WriteString(regexp.QuoteMeta(literal))
		if i < t.uses() {
			fmt.Fprintf(&b, "(?P<%s>%s)", groupName(i), ref.String())
		}
	}
	return regexp.Compile(b.String())
}

func (t refTemplate) render(value string) string {
	return strings.Join(t.literals, value)
}

// ReferenceTemplate pairs an origin template with a destination template, each
// interpolating ${reference}, and the regexes that bind the interpolation on
// either side.
type ReferenceTemplate struct {
	before    refTemplate
	after     refTemplate
	beforeRef *regexp.Regexp
	afterRef  *regexp.Regexp

	search    *regexp.Regexp
	groups    []int
	afterFull *regexp.Regexp
}

// ParseRegexGroups validates and compiles the regex groups of a reference
// template. The keys must be before_ref and, optionally, after_ref. The
// returned after regex is nil when after_ref is absent.
func ParseRegexGroups(groups map[string]string, loc Location) (before, after *regexp.Regexp, err error) {
	_, hasBefore := groups[BeforeRefGroup]
	_, hasAfter := groups[AfterRefGroup]
	if !hasBefore || len(groups) > 2 || (len(groups) == 2 && !hasAfter) {
		return nil, nil, cberrors.NewConfigValidationError(loc.String(),
			"Invalid 'regex_groups' - Should only contain '%s' and optionally '%s'. Was: [%s].",
			BeforeRefGroup, AfterRefGroup, strings.Join(slices.Sorted(maps.Keys(groups)), ", "))
	}

	before, err = compileGroup(groups, BeforeRefGroup, loc)
	if err != nil {
		return nil, nil, err
	}
	if hasAfter {
		after, err = compileGroup(groups, AfterRefGroup, loc)
		if err != nil {
			return nil, nil, err
		}
	}
	return before, after, nil
}

func compileGroup(groups map[string]string, name string, loc Location) (*regexp.Regexp, error) {
	re, err := regexp.Compile(groups[name])
	if err != nil {
		return nil, cberrors.NewConfigValidationError(loc.String(), "Invalid regex for '%s': %v", name, err)
	}
	return re, nil
}

// NewReferenceTemplate validates the templates against the regex groups
func NewReferenceTemplate(before, after string, groups map[string]string, loc Location) (*ReferenceTemplate, error) {
	beforeRef, afterRef, err := ParseRegexGroups(groups, loc)
	if err != nil {
		return nil, err
	}
	return newReferenceTemplate(before, after, beforeRef, afterRef, loc)
}

func newReferenceTemplate(before, after string, beforeRef, afterRef *regexp.Regexp, loc Location) (*ReferenceTemplate, error) {
	if beforeRef == nil {
		return nil, cberrors.NewConfigValidationError(loc.String(), "Regex '%s' is required", BeforeRefGroup)
	}
	if afterRef == nil {
		afterRef = beforeRef
	}

	beforeTokens, err := parseRefTemplate(before, loc)
	if err != nil {
		return nil, err
	}
	afterTokens, err := parseRefTemplate(after, loc)
	if err != nil {
		return nil, err
	}
	if strings.Contains(after, reservedToken) {
		return nil, cberrors.NewConfigValidationError(loc.String(),
			"Destination format '%s' uses the reserved token '%s'.", after, reservedToken)
	}

	search, err := beforeTokens.search(beforeRef)
	if err != nil {
		return nil, cberrors.NewConfigValidationError(loc.String(), "Cannot build pattern for '%s': %v", before, err)
	}
	afterFull, err := regexp.Compile(`^(?:` + afterRef.String() + `)$`)
	if err != nil {
		return nil, cberrors.NewConfigValidationError(loc.String(), "Invalid regex for '%s': %v", AfterRefGroup, err)
	}

	groups := make([]int, beforeTokens.uses())
	for i := range groups {
		groups[i] = search.SubexpIndex(groupName(i))
	}

	return &ReferenceTemplate{
		before:    beforeTokens,
		after:     afterTokens,
		beforeRef: beforeRef,
		afterRef:  afterRef,
		search:    search,
		groups:    groups,
		afterFull: afterFull,
	}, nil
}

// Before returns the origin template
func (t *ReferenceTemplate) Before() string {
	return t.before.raw
}

// After returns the destination template
func (t *ReferenceTemplate) After() string {
	return t.after.raw
}

// BeforeRef returns the regex matching origin references
func (t *ReferenceTemplate) BeforeRef() *regexp.Regexp {
	return t.beforeRef
}

// AfterRef returns the regex validating destination references
func (t *ReferenceTemplate) AfterRef() *regexp.Regexp {
	return t.afterRef
}

// swapped returns the template for the opposite direction
func (t *ReferenceTemplate) swapped(loc Location) (*ReferenceTemplate, error) {
	return newReferenceTemplate(t.after.raw, t.before.raw, t.afterRef, t.beforeRef, loc)
}

// refMatch is one occurrence of the origin template in a message
type refMatch struct {
	start int
	end   int
	value string
}

// find returns the non-overlapping occurrences of the origin template in text.
// When the template interpolates more than once, every interpolation must
// capture the same value; occurrences that do not are skipped, and so are
// occurrences that capture nothing.
func (t *ReferenceTemplate) find(text string) []refMatch {
	var found []refMatch
	for _, idx := range t.search.FindAllStringSubmatchIndex(text, -1) {
		value, ok := "", true
		for i, g := range t.groups {
			start, end := idx[2*g], idx[2*g+1]
			if start < 0 {
				ok = false
				break
			}
			if i == 0 {
				value = text[start:end]
			} else if text[start:end] != value {
				ok = false
				break
			}
		}
		if ok && value != "" {
			found = append(found, refMatch{start: idx[0], end: idx[1], value: value})
		}
	}
	return found
}

// validate checks a converted reference against the destination regex
func (t *ReferenceTemplate) validate(reference string) error {
	if !t.afterFull.MatchString(reference) {
		return cberrors.NewReferenceValidationError(reference, t.afterRef.String())
	}
	return nil
}
