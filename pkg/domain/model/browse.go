package model

import (
	"time"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
)

type BrowseInput struct {
	Identity  RepositoryIdentity
	Namespace types.Namespace
	Branch    types.BranchName
	Path      string
}

func (x *BrowseInput) Validate() error {
	if err := x.Identity.Validate(); err != nil {
		return err
	}
	return ValidateBranch(x.Branch)
}

type CommitInfo struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

type TreeEntry struct {
	FileName string      `json:"fileName"`
	FileType string      `json:"fileType"`
	Date     time.Time   `json:"date"`
	Commit   *CommitInfo `json:"commit,omitempty"`
}

type TreeListing struct {
	Files      []*TreeEntry `json:"files"`
	HasReadMe  bool         `json:"hasReadMe"`
	Branches   []string     `json:"branches"`
	LastCommit *CommitInfo  `json:"lastCommit,omitempty"`
}

type Blob struct {
	Body   string      `json:"body"`
	Commit *CommitInfo `json:"commit,omitempty"`
}
