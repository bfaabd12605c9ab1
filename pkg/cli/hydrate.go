package cli

import (
	"context"
	"log/slog"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func hydrateCommand() *cli.Command {
	var (
		owner     string
		repo      string
		namespace string
		st        stack
	)

	return &cli.Command{
		Name:  "hydrate",
		Usage: "Materialize a repository from the index if it is not present locally",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Owner ID of the repository (default owner if not set)",
				Destination: &owner,
			},
			&cli.StringFlag{
				Name:        "repo",
				Aliases:     []string{"r"},
				Usage:       "Repository name",
				Required:    true,
				Destination: &repo,
			},
			&cli.StringFlag{
				Name:        "namespace",
				Usage:       "Index namespace to resolve from (owner's own if not set)",
				Destination: &namespace,
			},
		}, st.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, defaultOwner, cleanup, err := st.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := repoIdentity(owner, repo, defaultOwner)
			if err != nil {
				return err
			}

			local, err := uc.EnsureLocal(ctx, &model.ResolveInput{
				Identity:  id,
				Namespace: types.Namespace(namespace),
			})
			if err != nil {
				return err
			}

			logging.From(ctx).Info("repository is available",
				slog.String("repo", id.String()),
				slog.String("path", local.Path),
			)
			return nil
		},
	}
}
