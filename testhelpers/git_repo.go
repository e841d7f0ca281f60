// Package testhelpers provides Git repository fixtures for tests.
package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const textFileName = "test.txt"

// GitRepo is an on-disk Git repository created with go-git, so tests do not
// need a git binary.
type GitRepo struct {
	Dir    string
	Repo   *gogit.Repository
	author object.Signature
	count  int
}

// NewGitRepo initializes a repository on branch main in a temporary directory
// that is removed when the test ends.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	return &GitRepo{
		Dir:  dir,
		Repo: repo,
		author: object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

// SetAuthor changes the author of subsequent commits
func (r *GitRepo) SetAuthor(name, email string) {
	r.author.Name = name
	r.author.Email = email
}

// CreateChangeAndCommit writes a change to the test file and commits it with
// message. It returns the commit SHA.
func (r *GitRepo) CreateChangeAndCommit(message string) (string, error) {
	r.count++
	path := filepath.Join(r.Dir, textFileName)
	if err := os.WriteFile(path, []byte(fmt.Sprintf("change %d\n", r.count)), 0600); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	worktree, err := r.Repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := worktree.Add(textFileName); err != nil {
		return "", fmt.Errorf("failed to add file: %w", err)
	}

	author := r.author
	author.When = author.When.Add(time.Duration(r.count) * time.Minute)
	hash, err := worktree.Commit(message, &gogit.CommitOptions{Author: &author})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// MustCommit is CreateChangeAndCommit failing the test on error
func (r *GitRepo) MustCommit(t *testing.T, message string) string {
	t.Helper()
	sha, err := r.CreateChangeAndCommit(message)
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return sha
}

// CreateBranch points a new branch at HEAD
func (r *GitRepo) CreateBranch(name string) error {
	head, err := r.Repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	return r.Repo.Storer.SetReference(ref)
}
