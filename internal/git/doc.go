// Package git provides read access to Git repositories through go-git.
//
// It exposes:
//   - Repository, a thin wrapper that resolves branches, tags and revisions
//   - Lazy change histories walked from any revision, with trailer labels parsed
//   - Single change lookup for a revision
//
// Outside of test fixtures, this package should be the only place where go-git
// is used directly.
package git
