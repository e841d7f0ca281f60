package config

import (
	"github.com/MedMaalej/copybara/internal/transform"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
)

const transformationsField = "transformations"

// kinds lists the keys of a transformation entry
const kinds = "map_references, replace_message, scrub_message, map_author, reverse"

// BuildChain builds the configured transformations into a single chain.
// Nothing is built unless every entry is valid.
func (c *Config) BuildChain() (*transform.Chain, error) {
	loc := transform.Location{File: c.path}
	return buildChain(c.Transformations, transformationsField, loc)
}

func buildChain(entries []TransformationConfig, field string, loc transform.Location) (*transform.Chain, error) {
	elements := make([]any, 0, len(entries))
	for i, entry := range entries {
		step, err := entry.build(entryLocation(loc, field, i))
		if err != nil {
			return nil, err
		}
		elements = append(elements, step)
	}
	return transform.NewChain(field, elements...)
}

func entryLocation(parent transform.Location, field string, i int) transform.Location {
	if parent.Path == "" {
		return parent.Child("%s[%d]", field, i)
	}
	return parent.Child(".%s[%d]", field, i)
}

func (e TransformationConfig) kindCount() int {
	n := 0
	for _, set := range []bool{
		e.MapReferences != nil,
		e.ReplaceMessage != nil,
		e.ScrubMessage != nil,
		e.MapAuthor != nil,
		len(e.Reverse) > 0,
	} {
		if set {
			n++
		}
	}
	return n
}

func (e TransformationConfig) build(loc transform.Location) (transform.Step, error) {
	if n := e.kindCount(); n != 1 {
		return nil, cberrors.NewConfigValidationError(loc.String(),
			"expected exactly one of %s but found %d", kinds, n)
	}

	switch {
	case e.MapReferences != nil:
		cfg := e.MapReferences
		template, err := transform.NewReferenceTemplate(cfg.Before, cfg.After, cfg.RegexGroups, loc)
		if err != nil {
			return nil, err
		}
		return transform.NewReferenceMigratorFromTemplate(template, cfg.AdditionalImportLabels, loc), nil
	case e.ReplaceMessage != nil:
		return transform.NewReplaceMessage(e.ReplaceMessage.Before, e.ReplaceMessage.After, loc)
	case e.ScrubMessage != nil:
		return transform.NewScrubMessage(e.ScrubMessage.Regex, e.ScrubMessage.Replacement, loc)
	case e.MapAuthor != nil:
		return transform.NewMapAuthor(e.MapAuthor.Authors, loc)
	default:
		nested, err := buildChain(e.Reverse, "reverse", loc)
		if err != nil {
			return nil, err
		}
		reversed, err := nested.ReverseChain()
		if err != nil {
			return nil, err
		}
		return reversed, nil
	}
}
