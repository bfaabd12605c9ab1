// Package gitrepo reads and initializes bare repositories in process with
// go-git. It never runs the git binary.
package gitrepo

import (
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/m-mizutani/goerr/v2"
)

const readmeName = "README.md"

// InitBare creates an empty bare repository at dir whose HEAD points at main.
func InitBare(dir string) error {
	_, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
		Bare:        true,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to init bare repository", goerr.V("path", dir))
	}
	return nil
}

// HasRefs reports whether the repository at dir holds at least one branch or
// tag. A repository without refs cannot be bundled.
func HasRefs(dir string) (bool, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return false, goerr.Wrap(err, "failed to open repository", goerr.V("path", dir))
	}

	refs, err := repo.References()
	if err != nil {
		return false, goerr.Wrap(err, "failed to list references", goerr.V("path", dir))
	}
	defer refs.Close()

	found := false
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() || ref.Name().IsTag() {
			found = true
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to iterate references", goerr.V("path", dir))
	}
	return found, nil
}

// Repository is a read-only view of a bare repository.
type Repository struct {
	path string
	repo *git.Repository
}

func Open(dir string) (*Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, goerr.Wrap(types.ErrRepoNotFound, "no repository at path", goerr.V("path", dir))
		}
		return nil, goerr.Wrap(err, "failed to open repository", goerr.V("path", dir))
	}
	return &Repository{path: dir, repo: repo}, nil
}

// Branches returns the short names of all local branches, sorted.
func (x *Repository) Branches() ([]string, error) {
	iter, err := x.repo.Branches()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list branches", goerr.V("path", x.path))
	}
	defer iter.Close()

	var branches []string
	if err := iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate branches", goerr.V("path", x.path))
	}
	sort.Strings(branches)
	return branches, nil
}

func (x *Repository) headCommit(branch types.BranchName) (*object.Commit, error) {
	ref, err := x.repo.Reference(plumbing.NewBranchReferenceName(string(branch)), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, goerr.Wrap(types.ErrRefNotFound, "branch not found", goerr.V("branch", branch))
		}
		return nil, goerr.Wrap(err, "failed to resolve branch", goerr.V("branch", branch))
	}

	commit, err := x.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read commit", goerr.V("hash", ref.Hash().String()))
	}
	return commit, nil
}

// lastCommit returns the newest commit reachable from head that touched p.
// An empty p matches every commit.
func (x *Repository) lastCommit(head *object.Commit, p string) (*object.Commit, error) {
	if p == "" {
		return head, nil
	}

	iter, err := x.repo.Log(&git.LogOptions{
		From: head.Hash,
		PathFilter: func(name string) bool {
			return name == p || strings.HasPrefix(name, p+"/")
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk history", goerr.V("path", p))
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to walk history", goerr.V("path", p))
	}
	return commit, nil
}

// Tree lists the directory dir of branch. Each entry carries the last commit
// that touched it.
func (x *Repository) Tree(branch types.BranchName, dir string) (*model.TreeListing, error) {
	dir = cleanPath(dir)

	head, err := x.headCommit(branch)
	if err != nil {
		return nil, err
	}

	tree, err := head.Tree()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read root tree", goerr.V("branch", branch))
	}
	if dir != "" {
		tree, err = tree.Tree(dir)
		if err != nil {
			if errors.Is(err, object.ErrDirectoryNotFound) {
				return nil, goerr.Wrap(types.ErrRefNotFound, "directory not found", goerr.V("branch", branch), goerr.V("dir", dir))
			}
			return nil, goerr.Wrap(err, "failed to read tree", goerr.V("branch", branch), goerr.V("dir", dir))
		}
	}

	listing := &model.TreeListing{
		Files: []*model.TreeEntry{},
	}

	for _, entry := range tree.Entries {
		commit, err := x.lastCommit(head, path.Join(dir, entry.Name))
		if err != nil {
			return nil, err
		}

		item := &model.TreeEntry{
			FileName: entry.Name,
			FileType: entryType(entry.Mode),
			Commit:   toCommitInfo(commit),
		}
		if commit != nil {
			item.Date = commit.Author.When
		}
		listing.Files = append(listing.Files, item)

		if entry.Name == readmeName {
			listing.HasReadMe = true
		}
	}

	last, err := x.lastCommit(head, dir)
	if err != nil {
		return nil, err
	}
	listing.LastCommit = toCommitInfo(last)

	if listing.Branches, err = x.Branches(); err != nil {
		return nil, err
	}

	return listing, nil
}

// Blob returns the content of file at the head of branch together with the
// last commit that touched it.
func (x *Repository) Blob(branch types.BranchName, file string) (*model.Blob, error) {
	file = cleanPath(file)
	if file == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "file path is empty")
	}

	head, err := x.headCommit(branch)
	if err != nil {
		return nil, err
	}

	tree, err := head.Tree()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read root tree", goerr.V("branch", branch))
	}

	f, err := tree.File(file)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, goerr.Wrap(types.ErrRefNotFound, "file not found", goerr.V("branch", branch), goerr.V("file", file))
		}
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("branch", branch), goerr.V("file", file))
	}

	body, err := f.Contents()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file contents", goerr.V("file", file))
	}

	commit, err := x.lastCommit(head, file)
	if err != nil {
		return nil, err
	}

	return &model.Blob{
		Body:   body,
		Commit: toCommitInfo(commit),
	}, nil
}

func entryType(mode filemode.FileMode) string {
	switch mode {
	case filemode.Dir:
		return "tree"
	case filemode.Submodule:
		return "commit"
	default:
		return "blob"
	}
}

func cleanPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

func toCommitInfo(c *object.Commit) *model.CommitInfo {
	if c == nil {
		return nil
	}
	return &model.CommitInfo{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		Message: strings.TrimSpace(c.Message),
		Date:    c.Author.When,
	}
}
