package transform

import (
	"fmt"
	"regexp"
	"strings"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
)

// ReplaceMessage replaces literal text in the commit message
type ReplaceMessage struct {
	before   string
	after    string
	location Location
}

// NewReplaceMessage creates a ReplaceMessage. before must not be empty.
func NewReplaceMessage(before, after string, loc Location) (*ReplaceMessage, error) {
	if before == "" {
		return nil, cberrors.NewConfigValidationError(loc.String(), "'before' cannot be empty")
	}
	return &ReplaceMessage{before: before, after: after, location: loc}, nil
}

// Transform replaces every occurrence
func (r *ReplaceMessage) Transform(work *WorkContext) error {
	work.SetMessage(strings.ReplaceAll(work.Message(), r.before, r.after))
	return nil
}

// Reverse swaps before and after. A deletion cannot be undone.
func (r *ReplaceMessage) Reverse() (Step, error) {
	if r.after == "" {
		return nil, cberrors.NewNonReversibleError(r.Describe(), r.location.String(), "the replacement is empty")
	}
	return &ReplaceMessage{before: r.after, after: r.before, location: r.location}, nil
}

// Describe summarizes the replacement
func (r *ReplaceMessage) Describe() string {
	return fmt.Sprintf("Replace '%s' with '%s'", r.before, r.after)
}

func (r *ReplaceMessage) isStep() {}

// ScrubMessage removes or rewrites the parts of a message matching a regex.
// It is lossy and therefore never reversible.
type ScrubMessage struct {
	regex       *regexp.Regexp
	replacement string
	location    Location
}

// NewScrubMessage compiles pattern. replacement may use $1-style expansions.
func NewScrubMessage(pattern, replacement string, loc Location) (*ScrubMessage, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, cberrors.NewConfigValidationError(loc.String(), "Invalid regex '%s': %v", pattern, err)
	}
	return &ScrubMessage{regex: re, replacement: replacement, location: loc}, nil
}

// Transform rewrites every match
func (s *ScrubMessage) Transform(work *WorkContext) error {
	work.SetMessage(s.regex.ReplaceAllString(work.Message(), s.replacement))
	return nil
}

// Reverse always fails
func (s *ScrubMessage) Reverse() (Step, error) {
	return nil, cberrors.NewNonReversibleError(s.Describe(), s.location.String(), "")
}

// Describe summarizes the scrubber
func (s *ScrubMessage) Describe() string {
	return fmt.Sprintf("Scrub '%s'", s.regex.String())
}

func (s *ScrubMessage) isStep() {}
