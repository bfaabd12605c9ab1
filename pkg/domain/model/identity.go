package model

import (
	"regexp"
	"strings"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var (
	// Owner IDs are public identity strings (e.g. base58 public keys).
	ptnValidOwnerID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
	// Repository names may contain dots but never start with one.
	ptnValidRepoName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]{0,99}$`)
	ptnValidBranch   = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._/-]{0,254}$`)
)

// RepositoryIdentity is the join key between local storage and the replicated index.
type RepositoryIdentity struct {
	OwnerID  types.OwnerID
	RepoName types.RepoName
}

func NewRepositoryIdentity(owner types.OwnerID, segment string) RepositoryIdentity {
	return RepositoryIdentity{
		OwnerID:  owner,
		RepoName: types.TrimRepoName(segment),
	}
}

// Validate must succeed before the identity is turned into a filesystem path
// or an index key.
func (x RepositoryIdentity) Validate() error {
	if x.OwnerID == "" {
		return goerr.Wrap(types.ErrInvalidIdentity, "owner ID is empty")
	}
	if !ptnValidOwnerID.MatchString(string(x.OwnerID)) {
		return goerr.Wrap(types.ErrInvalidIdentity, "invalid owner ID", goerr.V("owner", x.OwnerID))
	}
	if x.RepoName == "" {
		return goerr.Wrap(types.ErrInvalidIdentity, "repository name is empty")
	}
	if !ptnValidRepoName.MatchString(string(x.RepoName)) || strings.Contains(string(x.RepoName), "..") {
		return goerr.Wrap(types.ErrInvalidIdentity, "invalid repository name", goerr.V("repo", x.RepoName))
	}
	return nil
}

// LockKey identifies the repository for per-identity mutual exclusion.
func (x RepositoryIdentity) LockKey() string {
	return string(x.OwnerID) + "/" + string(x.RepoName)
}

func (x RepositoryIdentity) String() string {
	return x.LockKey()
}

// ValidateBranch rejects branch names that git would refuse as refs.
func ValidateBranch(branch types.BranchName) error {
	s := string(branch)
	if !ptnValidBranch.MatchString(s) ||
		strings.Contains(s, "..") ||
		strings.Contains(s, "//") ||
		strings.HasSuffix(s, "/") ||
		strings.HasSuffix(s, ".lock") {
		return goerr.Wrap(types.ErrValidationFailed, "invalid branch name", goerr.V("branch", branch))
	}
	return nil
}

// LocalRepo is a handle on a bare repository on the local filesystem.
type LocalRepo struct {
	Identity RepositoryIdentity
	Path     string
	Exists   bool
}
