package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MedMaalej/copybara/internal/git"
	"github.com/MedMaalej/copybara/internal/history"
	"github.com/MedMaalej/copybara/internal/runtime"
	"github.com/MedMaalej/copybara/internal/transform"
)

// ErrNoMessage is returned when there is no message to migrate
var ErrNoMessage = errors.New("no message to migrate: pass --message, --rev or pipe a message on stdin")

// MigrateOptions contains options for the migrate command
type MigrateOptions struct {
	// Message is the message to migrate. When empty the message of Rev is used,
	// and when there is no Rev, ReadStdin is called.
	Message   string
	ReadStdin func() (string, error)

	RepoPath string
	Rev      string
	Reverse  bool

	// Origin and Destination are the refs whose histories are consulted for
	// labels. Empty refs mean no history.
	Origin       string
	Destination  string
	HistoryLimit int
}

// MigrateAction runs the configured transformations on a single change and
// prints the resulting message
func MigrateAction(ctx context.Context, rt *runtime.Context, opts MigrateOptions) error {
	if opts.Rev != "" && opts.RepoPath == "" {
		return fmt.Errorf("a revision requires a repository")
	}

	chain, err := rt.Chain(opts.Reverse)
	if err != nil {
		return err
	}

	var repo *git.Repository
	if opts.RepoPath != "" {
		repo, err = git.OpenRepository(opts.RepoPath)
		if err != nil {
			return err
		}
	}

	work := transform.WorkOptions{Message: opts.Message, Splog: rt.Splog}
	if repo != nil {
		work.CheckoutDir = repo.GetRepoRoot()
	}

	if work.Message == "" {
		if err := loadMessage(rt, repo, opts, &work); err != nil {
			return err
		}
	}

	if repo != nil {
		current, migrated, err := loadHistories(ctx, repo, opts)
		if err != nil {
			return err
		}
		work.Current = history.Values(current)
		work.Migrated = history.Values(migrated)
	}

	wc := transform.NewWorkContext(work)
	rt.Splog.Debug("Running %s", chain.Describe())
	if err := chain.Transform(wc); err != nil {
		return err
	}

	if wc.Author() != work.Author {
		rt.Splog.Debug("Author: %s -> %s", work.Author, wc.Author())
	}
	rt.Splog.Page(wc.Message())
	if !strings.HasSuffix(wc.Message(), "\n") {
		rt.Splog.Newline()
	}
	return nil
}

func loadMessage(rt *runtime.Context, repo *git.Repository, opts MigrateOptions, work *transform.WorkOptions) error {
	if repo != nil && opts.Rev != "" {
		change, err := repo.Change(opts.Rev)
		if err != nil {
			return err
		}
		rt.Splog.Debug("Migrating change %s", change.Ref)
		work.Message = change.Message
		work.Author = change.Author
		return nil
	}

	if opts.ReadStdin != nil {
		message, err := opts.ReadStdin()
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		work.Message = message
	}
	if work.Message == "" {
		return ErrNoMessage
	}
	return nil
}

// loadHistories reads the origin and destination histories concurrently
func loadHistories(ctx context.Context, repo *git.Repository, opts MigrateOptions) (current, migrated []history.Change, err error) {
	g, gctx := errgroup.WithContext(ctx)

	if opts.Origin != "" {
		g.Go(func() error {
			changes, err := history.Collect(repo.Changes(gctx, opts.Origin), opts.HistoryLimit)
			if err != nil {
				return fmt.Errorf("failed to read origin history: %w", err)
			}
			current = changes
			return nil
		})
	}
	if opts.Destination != "" {
		g.Go(func() error {
			changes, err := history.Collect(repo.Changes(gctx, opts.Destination), opts.HistoryLimit)
			if err != nil {
				return fmt.Errorf("failed to read destination history: %w", err)
			}
			migrated = changes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, migrated, nil
}
