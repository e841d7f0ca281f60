package transform

import "fmt"

// Step is a single transformation of a change.
//
// The set of steps is closed: *Chain, *ReferenceMigrator, *ReplaceMessage,
// *ScrubMessage and *MapAuthor.
type Step interface {
	// Transform mutates work in place. A failed step may leave work partially
	// modified; Chain restores it.
	Transform(work *WorkContext) error
	// Reverse returns a step that undoes this one, or a NonReversibleError.
	Reverse() (Step, error)
	// Describe returns a short human readable summary.
	Describe() string

	isStep()
}

// Location points at the configuration that produced a step
type Location struct {
	File string
	Path string
}

// String renders the location as "file:path", omitting empty parts
func (l Location) String() string {
	switch {
	case l.File != "" && l.Path != "":
		return fmt.Sprintf("%s:%s", l.File, l.Path)
	case l.File != "":
		return l.File
	default:
		return l.Path
	}
}

// Child returns the location of a nested element
func (l Location) Child(format string, args ...any) Location {
	return Location{File: l.File, Path: l.Path + fmt.Sprintf(format, args...)}
}
