package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/MedMaalej/copybara/internal/history"
)

// Changes walks the commit log from start, newest first. The walk is lazy:
// commits are only read while the consumer keeps ranging.
func (r *Repository) Changes(ctx context.Context, start string) iter.Seq2[history.Change, error] {
	return func(yield func(history.Change, error) bool) {
		hash, err := r.resolveRefHash(start)
		if err != nil {
			yield(history.Change{}, err)
			return
		}

		goGitMu.Lock()
		commits, err := r.Log(&gogit.LogOptions{From: hash})
		goGitMu.Unlock()
		if err != nil {
			yield(history.Change{}, fmt.Errorf("failed to read log from %s: %w", start, err))
			return
		}
		defer commits.Close()

		for {
			if err := ctx.Err(); err != nil {
				yield(history.Change{}, err)
				return
			}

			// The lock is not held while yielding so consumers may read other histories.
			goGitMu.Lock()
			commit, err := commits.Next()
			goGitMu.Unlock()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(history.Change{}, fmt.Errorf("failed to read commit: %w", err))
				return
			}

			if !yield(changeFromCommit(commit), nil) {
				return
			}
		}
	}
}

// Change returns the change at rev
func (r *Repository) Change(rev string) (history.Change, error) {
	hash, err := r.resolveRefHash(rev)
	if err != nil {
		return history.Change{}, err
	}

	goGitMu.Lock()
	defer goGitMu.Unlock()

	commit, err := r.CommitObject(hash)
	if err != nil {
		return history.Change{}, fmt.Errorf("failed to get commit: %w", err)
	}
	return changeFromCommit(commit), nil
}

func changeFromCommit(commit *object.Commit) history.Change {
	return history.Change{
		Ref: commit.Hash.String(),
		Author: history.Author{
			Name:  commit.Author.Name,
			Email: commit.Author.Email,
		},
		Message: commit.Message,
		Date:    commit.Author.When,
		Labels:  history.ParseLabels(commit.Message),
	}
}

var _ history.Reader = (*Repository)(nil)
