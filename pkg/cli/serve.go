package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/degit-io/degit-riptide/pkg/cli/config"
	"github.com/degit-io/degit-riptide/pkg/controller/server"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr string

		st     stack
		sentry config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("DEGIT_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve repositories over Git Smart-HTTP",
		Flags: slice.Flatten(
			serveFlags,
			st.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Storage", &st.storage),
				slog.Any("Git", &st.git),
				slog.Any("ContentStore", &st.contentStore),
				slog.Any("Firestore", &st.firestore),
				slog.Any("BigQuery", &st.bigQuery),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			uc, owner, cleanup, err := st.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if owner == "" {
				logging.Default().Warn("no default owner, requests must carry publicKey")
			}
			s := server.New(uc, server.WithDefaultOwner(owner))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				// pack transfers stream for as long as the git process runs,
				// so only the header read is bounded
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}

				logging.Default().Info("waiting for running publishes")
				s.WaitPublishes()
			}

			return nil
		},
	}
}
