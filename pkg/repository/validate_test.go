package repository_test

import (
	"errors"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/m-mizutani/gt"
)

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"project.git", "displayName", "a-b_c"} {
		gt.NoError(t, repository.ValidateKey(key))
	}

	for _, key := range []string{"", ".", "..", "a/b", "__name__"} {
		err := repository.ValidateKey(key)
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
	}
}

func TestValidateNamespace(t *testing.T) {
	gt.NoError(t, repository.ValidateNamespace("alice"))
	gt.True(t, errors.Is(repository.ValidateNamespace("a/b"), repository.ErrInvalidInput))
}

func TestResetValue(t *testing.T) {
	v := struct {
		Name  string
		Items []string
	}{Name: "x", Items: []string{"a"}}

	repository.ResetValue(&v)
	gt.V(t, v.Name).Equal("")
	gt.A(t, v.Items).Length(0)
}
