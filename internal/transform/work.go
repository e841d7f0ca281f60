package transform

import (
	"iter"

	"github.com/MedMaalej/copybara/internal/history"
	"github.com/MedMaalej/copybara/internal/output"
)

// WorkOptions contains the values a WorkContext is created from
type WorkOptions struct {
	CheckoutDir string
	Message     string
	Author      history.Author
	// Current and Migrated are the change histories on either side, newest first.
	// Nil means empty.
	Current  iter.Seq[history.Change]
	Migrated iter.Seq[history.Change]
	Splog    *output.Splog
}

// WorkContext is the mutable state of one change while a chain runs on it
type WorkContext struct {
	checkoutDir string
	message     string
	author      history.Author
	current     iter.Seq[history.Change]
	migrated    iter.Seq[history.Change]
	splog       *output.Splog
}

// NewWorkContext creates a WorkContext for a single change
func NewWorkContext(opts WorkOptions) *WorkContext {
	w := &WorkContext{
		checkoutDir: opts.CheckoutDir,
		message:     opts.Message,
		author:      opts.Author,
		current:     opts.Current,
		migrated:    opts.Migrated,
		splog:       opts.Splog,
	}
	if w.current == nil {
		w.current = history.Empty()
	}
	if w.migrated == nil {
		w.migrated = history.Empty()
	}
	if w.splog == nil {
		w.splog = output.Discard()
	}
	return w
}

// Message returns the current commit message
func (w *WorkContext) Message() string {
	return w.message
}

// SetMessage replaces the commit message
func (w *WorkContext) SetMessage(message string) {
	w.message = message
}

// Author returns the current author
func (w *WorkContext) Author() history.Author {
	return w.author
}

// SetAuthor replaces the author
func (w *WorkContext) SetAuthor(author history.Author) {
	w.author = author
}

// CheckoutDir returns the checkout directory of the change. Transformations in
// this package never touch it.
func (w *WorkContext) CheckoutDir() string {
	return w.checkoutDir
}

// CurrentChanges returns the changes being migrated, newest first
func (w *WorkContext) CurrentChanges() iter.Seq[history.Change] {
	return w.current
}

// MigratedChanges returns the changes already present in the destination, newest first
func (w *WorkContext) MigratedChanges() iter.Seq[history.Change] {
	return w.migrated
}

// Splog returns the logger for this change
func (w *WorkContext) Splog() *output.Splog {
	return w.splog
}

type workSnapshot struct {
	message string
	author  history.Author
}

func (w *WorkContext) snapshot() workSnapshot {
	return workSnapshot{message: w.message, author: w.author}
}

func (w *WorkContext) restore(s workSnapshot) {
	w.message = s.message
	w.author = s.author
}
