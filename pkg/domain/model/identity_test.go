package model_test

import (
	"errors"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRepositoryIdentityValidate(t *testing.T) {
	t.Run("valid identity passes validation", func(t *testing.T) {
		id := model.NewRepositoryIdentity("7dVMFPaY1f6RWeanTtXwCWQTTeTVE2FEhmEnC9djZho4", "alice-repo.git")
		gt.NoError(t, id.Validate())
		gt.V(t, id.RepoName).Equal(types.RepoName("alice-repo"))
		gt.V(t, id.LockKey()).Equal("7dVMFPaY1f6RWeanTtXwCWQTTeTVE2FEhmEnC9djZho4/alice-repo")
	})

	testCases := []struct {
		name  string
		owner types.OwnerID
		repo  string
	}{
		{name: "empty owner", owner: "", repo: "repo"},
		{name: "owner with slash", owner: "alice/bob", repo: "repo"},
		{name: "owner traversal", owner: "..", repo: "repo"},
		{name: "empty repo", owner: "alice", repo: ""},
		{name: "repo traversal", owner: "alice", repo: "../etc"},
		{name: "repo double dot", owner: "alice", repo: "a..b"},
		{name: "repo starting with dot", owner: "alice", repo: ".hidden"},
		{name: "repo with shell metacharacters", owner: "alice", repo: "repo;rm -rf"},
		{name: "repo with space", owner: "alice", repo: "my repo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := model.NewRepositoryIdentity(tc.owner, tc.repo).Validate()
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrInvalidIdentity))
		})
	}
}

func TestValidateBranch(t *testing.T) {
	for _, b := range []types.BranchName{"main", "master", "feature/foo", "v1.0"} {
		t.Run("valid "+string(b), func(t *testing.T) {
			gt.NoError(t, model.ValidateBranch(b))
		})
	}

	for _, b := range []types.BranchName{"", "-x", "a..b", "feature/", "main.lock", "$(id)", "a b"} {
		t.Run("invalid "+string(b), func(t *testing.T) {
			gt.Error(t, model.ValidateBranch(b))
		})
	}
}

func TestRepoSummaryValidate(t *testing.T) {
	gt.NoError(t, (&model.RepoSummary{Name: "x"}).Validate())
	gt.Error(t, (&model.RepoSummary{}).Validate())
}
