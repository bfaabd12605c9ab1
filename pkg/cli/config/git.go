package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/degit-io/degit-riptide/pkg/infra/gitcmd"
	"github.com/degit-io/degit-riptide/pkg/usecase"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type Git struct {
	path           string
	serviceTimeout time.Duration
	publishTimeout time.Duration
	maxProcesses   int64
}

func (x *Git) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "git-path",
			Usage:       "Path to git binary",
			Category:    "Git",
			Value:       "git",
			Sources:     cli.EnvVars("DEGIT_GIT_PATH"),
			Destination: &x.path,
		},
		&cli.DurationFlag{
			Name:        "git-service-timeout",
			Usage:       "Upper bound of one upload-pack or receive-pack run (0 for no limit)",
			Category:    "Git",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("DEGIT_GIT_SERVICE_TIMEOUT"),
			Destination: &x.serviceTimeout,
		},
		&cli.DurationFlag{
			Name:        "publish-timeout",
			Usage:       "Upper bound of one publish run",
			Category:    "Git",
			Value:       usecase.DefaultPublishTimeout,
			Sources:     cli.EnvVars("DEGIT_PUBLISH_TIMEOUT"),
			Destination: &x.publishTimeout,
		},
		&cli.Int64Flag{
			Name:        "git-max-processes",
			Usage:       "Maximum number of concurrent git processes",
			Category:    "Git",
			Value:       gitcmd.DefaultMaxProcesses,
			Sources:     cli.EnvVars("DEGIT_GIT_MAX_PROCESSES"),
			Destination: &x.maxProcesses,
		},
	}
}

// NewClient builds the git process client and checks that the binary runs.
func (x *Git) NewClient(ctx context.Context) (gitcmd.Client, error) {
	if x.maxProcesses < 1 {
		return nil, goerr.New("git-max-processes must be positive", goerr.V("value", x.maxProcesses))
	}

	client := gitcmd.New(x.path,
		gitcmd.WithMaxProcesses(x.maxProcesses),
		gitcmd.WithTimeout(x.serviceTimeout),
	)

	version, err := client.Version(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "git binary is not usable", goerr.V("path", x.path))
	}
	logging.From(ctx).Info("git binary found", slog.String("version", version))

	return client, nil
}

func (x *Git) PublishTimeout() time.Duration {
	return x.publishTimeout
}

func (x *Git) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
		slog.Duration("serviceTimeout", x.serviceTimeout),
		slog.Duration("publishTimeout", x.publishTimeout),
		slog.Int64("maxProcesses", x.maxProcesses),
	)
}
