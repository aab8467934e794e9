package install

import (
	"context"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Cloner fetches a source tree at a pinned reference
type Cloner interface {
	Clone(ctx context.Context, repoURL, path, reference string, depth int) error
}

// GitCloner clones via go-git
type GitCloner struct{}

// Clone implements Cloner. The reference is tried as a tag first, then as a
// branch, matching what `git clone --branch` accepts.
func (GitCloner) Clone(ctx context.Context, repoURL, path, reference string, depth int) error {
	err := clone(ctx, repoURL, path, plumbing.NewTagReferenceName(reference), depth)
	if err == nil {
		return nil
	}

	// Tag lookup failed, retry as a branch from a clean directory.
	if rmErr := os.RemoveAll(path); rmErr != nil {
		return rmErr
	}
	if branchErr := clone(ctx, repoURL, path, plumbing.NewBranchReferenceName(reference), depth); branchErr != nil {
		return err
	}
	return nil
}

func clone(ctx context.Context, repoURL, path string, ref plumbing.ReferenceName, depth int) error {
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:           repoURL,
		ReferenceName: ref,
		SingleBranch:  true,
		Depth:         depth,
	})
	return err
}
