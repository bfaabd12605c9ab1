package model

import (
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Profile values live in the default owner's index namespace next to the
// repository records. Repository keys always end with ".git", so these keys
// never collide with them.
const (
	ProfileKeyDisplayName = "displayName"
	ProfileKeyRepos       = "repos"
)

type DisplayName struct {
	DisplayName string `firestore:"displayName" json:"displayName"`
}

func (x *DisplayName) Validate() error {
	if x.DisplayName == "" {
		return goerr.Wrap(types.ErrValidationFailed, "Display name is required")
	}
	return nil
}

type RepoSummary struct {
	Name        string `firestore:"name" json:"name"`
	Description string `firestore:"description" json:"description"`
}

func (x *RepoSummary) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "Repo name is required")
	}
	return nil
}

type RepoList struct {
	Repos []RepoSummary `firestore:"repos" json:"repos"`
}
