package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/localrepo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Storage locates the local repositories and the default owner.
type Storage struct {
	root        string
	ownerID     string
	ownerIDFile string
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".degit"
	}
	return filepath.Join(home, ".degit")
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo-root",
			Usage:       "Directory holding <owner>/<repo>.git",
			Category:    "Storage",
			Value:       filepath.Join(defaultHome(), "repos"),
			Sources:     cli.EnvVars("DEGIT_REPO_ROOT"),
			Destination: &x.root,
		},
		&cli.StringFlag{
			Name:        "owner-id",
			Usage:       "Default owner ID used when a request has no publicKey",
			Category:    "Storage",
			Sources:     cli.EnvVars("DEGIT_OWNER_ID"),
			Destination: &x.ownerID,
		},
		&cli.StringFlag{
			Name:        "owner-id-file",
			Usage:       "File to read the default owner ID from when --owner-id is not set",
			Category:    "Storage",
			Value:       filepath.Join(defaultHome(), "publickey"),
			Sources:     cli.EnvVars("DEGIT_OWNER_ID_FILE"),
			Destination: &x.ownerIDFile,
		},
	}
}

func (x *Storage) Root() string {
	return x.root
}

// OwnerID returns the default owner. A missing owner ID file is not an
// error; requests must then carry publicKey.
func (x *Storage) OwnerID() (types.OwnerID, error) {
	if x.ownerID != "" {
		return types.OwnerID(x.ownerID), nil
	}
	if x.ownerIDFile == "" {
		return "", nil
	}

	raw, err := os.ReadFile(filepath.Clean(x.ownerIDFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to read owner ID file", goerr.V("path", x.ownerIDFile))
	}
	return types.OwnerID(strings.TrimSpace(string(raw))), nil
}

func (x *Storage) NewResolver() (*localrepo.Resolver, error) {
	if x.root == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "repo-root is required")
	}
	if err := os.MkdirAll(x.root, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create repo root", goerr.V("path", x.root))
	}
	return localrepo.New(x.root)
}

// LockDir is where cross-process lock files are kept.
func (x *Storage) LockDir() string {
	return filepath.Join(x.root, ".locks")
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("root", x.root),
		slog.String("ownerID", x.ownerID),
		slog.String("ownerIDFile", x.ownerIDFile),
	)
}
