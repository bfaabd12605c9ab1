package cli

import (
	"context"
	"log/slog"

	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func publishCommand() *cli.Command {
	var (
		owner string
		repo  string
		st    stack
	)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Bundle a local repository and record it in the index",
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

			result, err := uc.Publish(ctx, id)
			if err != nil {
				return err
			}

			if result.Skipped {
				logging.From(ctx).Info("repository has no refs, nothing published", slog.String("repo", id.String()))
				return nil
			}
			logging.From(ctx).Info("published",
				slog.String("repo", id.String()),
				slog.String("ref", result.ContentRef.String()),
				slog.Int64("size", result.Size),
			)
			return nil
		},
	}
}
