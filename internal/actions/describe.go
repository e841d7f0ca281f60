package actions

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MedMaalej/copybara/internal/output"
	"github.com/MedMaalej/copybara/internal/runtime"
)

// DescribeOptions contains options for the describe command
type DescribeOptions struct {
	Reverse bool
}

// DescribeAction prints the configured steps and whether each can be reversed
func DescribeAction(rt *runtime.Context, opts DescribeOptions) error {
	chain, err := rt.Chain(opts.Reverse)
	if err != nil {
		return err
	}

	title := "Transformations"
	if opts.Reverse {
		title = "Reversed transformations"
	}
	rt.Splog.Page(output.Header(fmt.Sprintf("%s (%s)", title, rt.Config.Path())))
	rt.Splog.Newline()

	if chain.Len() == 0 {
		rt.Splog.Page(output.Muted("(no transformations)"))
		rt.Splog.Newline()
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(rt.Splog.Writer())
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Transformation", "Reversible"})

	for i, step := range chain.Steps() {
		reversible := "yes"
		if _, err := step.Reverse(); err != nil {
			reversible = "no"
		}
		t.AppendRow(table.Row{i, step.Describe(), reversible})
	}

	t.Render()
	return nil
}
