package usecase

import (
	"context"
	"log/slog"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/gitcmd"
	"github.com/degit-io/degit-riptide/pkg/infra/pktline"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AdvertiseRefs writes the info/refs response: the service announcement
// followed by the refs advertised by the service process. Nothing is written
// to w before the repository has been resolved.
func (x *UseCase) AdvertiseRefs(ctx context.Context, input *model.ExchangeInput, w interfaces.ExchangeWriter) error {
	if err := input.Validate(); err != nil {
		return err
	}

	local, err := x.resolveForExchange(ctx, input)
	if err != nil {
		return err
	}

	announcement, err := pktline.ServiceAnnouncement(input.Service)
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return goerr.Wrap(err, "failed to start response")
	}
	if _, err := w.Write(announcement); err != nil {
		return goerr.Wrap(err, "failed to write service announcement")
	}

	_, err = x.runService(ctx, &gitcmd.ServiceRequest{
		Service:   input.Service,
		RepoPath:  local.Path,
		Advertise: true,
		Stdout:    w,
	})
	return err
}

// ExecuteService runs one stateless-RPC round of the service with the
// request body as input. A receive-pack holds the repository lock until the
// process has exited; the caller runs Publish afterwards.
func (x *UseCase) ExecuteService(ctx context.Context, input *model.ExchangeInput, w interfaces.ExchangeWriter) error {
	if err := input.Validate(); err != nil {
		return err
	}

	var local *model.LocalRepo
	if input.Service == types.ServiceReceivePack {
		unlock, err := x.lock(ctx, input.Identity)
		if err != nil {
			return err
		}
		defer unlock()

		if local, err = x.ensureLocal(ctx, input.ResolveInput()); err != nil {
			return err
		}
	} else {
		var err error
		if local, err = x.resolveForExchange(ctx, input); err != nil {
			return err
		}
	}

	if err := w.Start(); err != nil {
		return goerr.Wrap(err, "failed to start response")
	}

	_, err := x.runService(ctx, &gitcmd.ServiceRequest{
		Service:  input.Service,
		RepoPath: local.Path,
		Stdin:    input.Body,
		Stdout:   w,
	})
	return err
}

func (x *UseCase) resolveForExchange(ctx context.Context, input *model.ExchangeInput) (*model.LocalRepo, error) {
	unlock, err := x.lock(ctx, input.Identity)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return x.ensureLocal(ctx, input.ResolveInput())
}

func (x *UseCase) runService(ctx context.Context, req *gitcmd.ServiceRequest) (*gitcmd.Result, error) {
	result, err := x.clients.Git().RunService(ctx, req)
	if result != nil {
		logging.From(ctx).Debug("git service finished",
			slog.String("service", string(req.Service)),
			slog.Bool("advertise", req.Advertise),
			slog.String("state", result.State.String()),
			slog.Int("exit_code", result.ExitCode),
			slog.Duration("elapsed", result.Elapsed),
		)
	}
	return result, err
}
