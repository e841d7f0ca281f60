package transform

import (
	"slices"
	"strings"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
)

// Chain is an ordered sequence of steps applied one after the other
type Chain struct {
	steps []Step
}

// NewChain builds a chain from loosely typed elements, as handed over by a
// configuration loader. Every element must be a Step; field names the
// configuration field in the error otherwise.
func NewChain(field string, elements ...any) (*Chain, error) {
	steps := make([]Step, 0, len(elements))
	for i, element := range elements {
		step, ok := element.(Step)
		if !ok {
			return nil, cberrors.NewConfigValidationError("",
				"expected type transformation for '%s' element but got type %T instead (at index %d)", field, element, i)
		}
		steps = append(steps, step)
	}
	return &Chain{steps: steps}, nil
}

// Sequence builds a chain from steps
func Sequence(steps ...Step) *Chain {
	return &Chain{steps: slices.Clone(steps)}
}

// Steps returns a copy of the steps in order
func (c *Chain) Steps() []Step {
	return slices.Clone(c.steps)
}

// Len returns the number of steps
func (c *Chain) Len() int {
	return len(c.steps)
}

// Transform runs every step in order. If one fails, the message and author are
// restored to their values before the chain started and the error is returned.
func (c *Chain) Transform(work *WorkContext) error {
	saved := work.snapshot()
	for _, step := range c.steps {
		if err := step.Transform(work); err != nil {
			work.Splog().Debug("Transformation '%s' failed: %v", step.Describe(), err)
			work.restore(saved)
			return err
		}
	}
	return nil
}

// Reverse returns the reversed chain as a Step
func (c *Chain) Reverse() (Step, error) {
	reversed, err := c.ReverseChain()
	if err != nil {
		return nil, err
	}
	return reversed, nil
}

// ReverseChain returns a new chain with the order inverted and every step
// replaced by its reverse. It fails with the error of the first step that
// cannot be reversed.
func (c *Chain) ReverseChain() (*Chain, error) {
	steps := make([]Step, len(c.steps))
	for i, step := range c.steps {
		reversed, err := step.Reverse()
		if err != nil {
			return nil, err
		}
		steps[len(c.steps)-1-i] = reversed
	}
	return &Chain{steps: steps}, nil
}

// Describe lists the descriptions of the steps
func (c *Chain) Describe() string {
	descriptions := make([]string, len(c.steps))
	for i, step := range c.steps {
		descriptions[i] = step.Describe()
	}
	return "Sequence[" + strings.Join(descriptions, ", ") + "]"
}

func (c *Chain) isStep() {}
