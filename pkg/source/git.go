package source

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// OpenGitFiles returns a source over the given repository-relative paths as
// they exist at revision (any revision go-git can resolve: HEAD, a branch,
// a tag, a hash). The repository, revision and every path are resolved
// before anything is read; failures wrap ErrInputUnavailable.
func OpenGitFiles(repoPath, revision string, paths []string) (*MultiSource, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open git repository %s: %v", ErrInputUnavailable, repoPath, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve ref %s: %v", ErrInputUnavailable, revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get commit %s: %v", ErrInputUnavailable, hash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get tree of %s: %v", ErrInputUnavailable, hash, err)
	}

	inputs := make([]input, 0, len(paths))
	for _, p := range paths {
		blobPath := path.Clean(filepath.ToSlash(p))
		f, err := tree.File(blobPath)
		if err != nil {
			return nil, fmt.Errorf("%w: no such file %s at %s", ErrInputUnavailable, blobPath, revision)
		}
		inputs = append(inputs, input{
			name: revision + ":" + blobPath,
			open: f.Reader,
		})
	}

	return &MultiSource{pending: inputs}, nil
}
