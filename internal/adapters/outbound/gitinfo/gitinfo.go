// Package gitinfo reads repository metadata for report enrichment.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Adapter implements domain.GitInfo using go-git.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) IsGitRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// CommitHash returns the HEAD commit of the repository containing path.
func (a *Adapter) CommitHash(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// DiffAgainst returns the unified diff of HEAD against the base branch,
// from their merge base, so commits already on base are not re-audited.
func (a *Adapter) DiffAgainst(path, base string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", base, err)
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", err
	}

	from := baseCommit
	if bases, err := baseCommit.MergeBase(headCommit); err == nil && len(bases) > 0 {
		from = bases[0]
	}

	patch, err := from.Patch(headCommit)
	if err != nil {
		return "", fmt.Errorf("diffing %s...HEAD: %w", base, err)
	}
	return patch.String(), nil
}
