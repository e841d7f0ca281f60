package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MedMaalej/copybara/internal/git"
	"github.com/MedMaalej/copybara/internal/history"
	"github.com/MedMaalej/copybara/internal/output"
)

// HistoryOptions contains options for the history command
type HistoryOptions struct {
	RepoPath string
	Rev      string
	Labels   []string
	// Value, when set, looks up the newest change recording it under Labels
	Value string
	Limit int
	Splog *output.Splog
}

// HistoryAction lists the changes reachable from Rev that carry one of Labels
func HistoryAction(ctx context.Context, opts HistoryOptions) error {
	if len(opts.Labels) == 0 {
		return fmt.Errorf("at least one label is required")
	}

	repo, err := git.OpenRepository(opts.RepoPath)
	if err != nil {
		return err
	}

	changes, err := history.Collect(repo.Changes(ctx, opts.Rev), opts.Limit)
	if err != nil {
		return err
	}

	if opts.Value != "" {
		change, ok := history.FindByLabel(history.Values(changes), opts.Labels, opts.Value)
		if !ok {
			return fmt.Errorf("no change records %s under %s", opts.Value, strings.Join(opts.Labels, ", "))
		}
		opts.Splog.Page(change.Ref)
		opts.Splog.Newline()
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(opts.Splog.Writer())
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Change", "Author", "Labels"})

	count := 0
	for change := range history.WithLabel(history.Values(changes), opts.Labels...) {
		var labels []string
		for _, name := range opts.Labels {
			for _, value := range change.LabelValues(name) {
				labels = append(labels, name+"="+value)
			}
		}
		t.AppendRow(table.Row{shortRef(change.Ref), change.Author.String(), strings.Join(labels, " ")})
		count++
	}

	if count == 0 {
		opts.Splog.Page(output.Muted("(no labelled changes)"))
		opts.Splog.Newline()
		return nil
	}
	t.Render()
	return nil
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}
