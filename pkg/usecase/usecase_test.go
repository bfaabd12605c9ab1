package usecase_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/infra"
	"github.com/degit-io/degit-riptide/pkg/infra/cas"
	"github.com/degit-io/degit-riptide/pkg/infra/gitcmd"
	"github.com/degit-io/degit-riptide/pkg/infra/localrepo"
	"github.com/degit-io/degit-riptide/pkg/repository/memory"
	"github.com/degit-io/degit-riptide/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type testEnv struct {
	root  string
	index *memory.Index
	store interfaces.ContentStore
}

// newTestUseCase wires a use case against a temporary root, an in-memory
// index and a file backed content store. options override the defaults.
func newTestUseCase(t *testing.T, options ...infra.Option) (*usecase.UseCase, *testEnv) {
	t.Helper()

	env := &testEnv{
		root:  filepath.Join(t.TempDir(), "repos"),
		index: memory.New(),
	}
	resolver := gt.R1(localrepo.New(env.root)).NoError(t)
	backend := gt.R1(cas.NewFileBackend(filepath.Join(t.TempDir(), "cas"))).NoError(t)
	env.store = cas.New(backend)

	opts := []infra.Option{
		infra.WithResolver(resolver),
		infra.WithIndex(env.index),
		infra.WithContentStore(env.store),
	}
	if path, err := exec.LookPath("git"); err == nil {
		opts = append(opts, infra.WithGit(gitcmd.New(path)))
	}
	opts = append(opts, options...)

	return usecase.New(infra.New(opts...), usecase.WithDefaultOwner("alice")), env
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not available")
	}
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=tester", "GIT_AUTHOR_EMAIL=tester@example.com",
		"GIT_COMMITTER_NAME=tester", "GIT_COMMITTER_EMAIL=tester@example.com",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// pushCommit pushes a new branch holding one commit with README.md to the
// bare repository at dst.
func pushCommit(t *testing.T, dst, branch, readme string) {
	t.Helper()
	work := t.TempDir()
	gitRun(t, work, "init", "--quiet", "-b", branch, ".")
	gt.NoError(t, os.WriteFile(filepath.Join(work, "README.md"), []byte(readme), 0644))
	gitRun(t, work, "add", "README.md")
	gitRun(t, work, "commit", "--quiet", "-m", "initial")
	gitRun(t, work, "push", "--quiet", dst, branch)
}

type recordWriter struct {
	bytes.Buffer
	started int
}

func (x *recordWriter) Start() error {
	x.started++
	return nil
}

var _ interfaces.ExchangeWriter = (*recordWriter)(nil)
