// Package gitinfo answers the repository questions the documentation build
// needs: which branch is checked out, who the configured committer is, and
// which merge commits landed on the stable branch.
package gitinfo

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Repo wraps a local git repository
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path, searching parent directories
// for the .git directory the way the git CLI does.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}
	return &Repo{repo: repo}, nil
}

// IsBranch reports whether HEAD currently points at the named branch
func (r *Repo) IsBranch(name string) (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Name().IsBranch() && head.Name().Short() == name, nil
}

// UserName returns the configured user.name, merging system, global and
// local scopes
func (r *Repo) UserName() (string, error) {
	cfg, err := r.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}
	return cfg.User.Name, nil
}

// HeadSHA returns the commit hash HEAD points at
func (r *Repo) HeadSHA() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// MergeSHAs walks the named branch from its tip and returns the hashes of
// merge commits authored by author, newest first, up to limit (0 means no
// limit). These are the commits CIVET attaches result events to.
func (r *Repo) MergeSHAs(branch, author string, limit int) ([]string, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to walk branch %s: %w", branch, err)
	}
	defer iter.Close()

	var shas []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() > 1 && c.Author.Name == author {
			shas = append(shas, c.Hash.String())
			if limit > 0 && len(shas) >= limit {
				return storer.ErrStop
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to walk branch %s: %w", branch, err)
	}
	return shas, nil
}
