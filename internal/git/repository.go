package git

import (
	"fmt"
	"path/filepath"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// goGitMu serializes go-git object access to prevent concurrent packfile reads
var goGitMu sync.Mutex

// Repository wraps a go-git repository
type Repository struct {
	*gogit.Repository
	path string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		path:       root,
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// resolveRefHash resolves a ref (branch name, SHA, or ref path) to a hash.
// An empty ref resolves HEAD.
func (r *Repository) resolveRefHash(ref string) (plumbing.Hash, error) {
	if ref == "" {
		ref = "HEAD"
	}

	goGitMu.Lock()
	defer goGitMu.Unlock()

	// 1. Try as a full reference name
	if rf, err := r.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return rf.Hash(), nil
	}

	// 2. Try as a local branch
	if rf, err := r.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
		return rf.Hash(), nil
	}

	// 3. Try as a remote branch
	if rf, err := r.Reference(plumbing.NewRemoteReferenceName("origin", ref), true); err == nil {
		return rf.Hash(), nil
	}

	// 4. Try as a tag
	if rf, err := r.Reference(plumbing.NewTagReferenceName(ref), true); err == nil {
		return rf.Hash(), nil
	}

	// 5. Try ResolveRevision (handles SHAs, short SHAs, and expressions like HEAD~1)
	hash, err := r.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}
