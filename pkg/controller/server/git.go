package server

import (
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/utils/errutil"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type gitHandler struct {
	uc        interfaces.UseCase
	cfg       *config
	publishes *sync.WaitGroup
}

// identityFrom builds the repository identity of a request. The owner is the
// publicKey query parameter, or the configured default owner.
func identityFrom(r *http.Request, cfg *config, param string) model.RepositoryIdentity {
	owner := types.OwnerID(r.URL.Query().Get("publicKey"))
	if owner == "" {
		owner = cfg.defaultOwner
	}
	return model.NewRepositoryIdentity(owner, chi.URLParam(r, param))
}

func (x *gitHandler) infoRefs(w http.ResponseWriter, r *http.Request) {
	svc, err := types.ParseService(r.URL.Query().Get("service"))
	if err != nil {
		safeWrite(w, http.StatusBadRequest, []byte("Invalid service"))
		return
	}

	input := &model.ExchangeInput{
		Identity: identityFrom(r, x.cfg, "repository"),
		Service:  svc,
	}
	ew := newExchangeWriter(w, svc.AdvertisementContentType())
	if err := x.uc.AdvertiseRefs(r.Context(), input, ew); err != nil {
		handleExchangeError(w, r, ew, "fail to advertise refs", err)
	}
}

func (x *gitHandler) service(w http.ResponseWriter, r *http.Request) {
	svc, err := types.ParseService(chi.URLParam(r, "service"))
	if err != nil {
		safeWrite(w, http.StatusBadRequest, []byte("Invalid service requested"))
		return
	}

	body, err := requestBody(r)
	if err != nil {
		logging.From(r.Context()).Info("invalid request body", slog.Any("error", err))
		safeWrite(w, http.StatusBadRequest, []byte("Invalid request body"))
		return
	}
	defer safe.Close(body)

	input := &model.ExchangeInput{
		Identity: identityFrom(r, x.cfg, "repository"),
		Service:  svc,
		Body:     body,
	}
	// registered before the response can complete, so a client that saw
	// its push finish can wait for the publish
	if svc == types.ServiceReceivePack {
		x.publishes.Add(1)
	}

	ew := newExchangeWriter(w, svc.ResultContentType())
	if err := x.uc.ExecuteService(r.Context(), input, ew); err != nil {
		if svc == types.ServiceReceivePack {
			x.publishes.Done()
		}
		handleExchangeError(w, r, ew, "fail to execute service", err)
		return
	}

	if svc == types.ServiceReceivePack {
		bgCtx := DetachContext(r.Context())
		go func() {
			defer x.publishes.Done()
			runPublish(bgCtx, x.uc, input.Identity)
		}()
	}
}

// requestBody returns the request body, decompressed when the client sent
// it gzip encoded.
func requestBody(r *http.Request) (io.ReadCloser, error) {
	if r.Header.Get("Content-Encoding") != "gzip" {
		return r.Body, nil
	}
	zr, err := gzip.NewReader(r.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open gzip body")
	}
	return zr, nil
}

// handleExchangeError answers with a status code when nothing has been
// written yet. Once the stream started, the connection is aborted so that the
// client sees a broken response instead of a truncated but well-formed one.
func handleExchangeError(w http.ResponseWriter, r *http.Request, ew *exchangeWriter, msg string, err error) {
	if ew.Started() {
		errutil.HandleError(r.Context(), msg, err)
		panic(http.ErrAbortHandler)
	}

	code := statusOf(err)
	switch code {
	case http.StatusInternalServerError:
		errutil.HandleError(r.Context(), msg, err)
		safeWrite(w, code, []byte("Internal server error"))
	case http.StatusNotFound:
		logging.From(r.Context()).Info(msg, slog.Any("error", err))
		safeWrite(w, code, []byte("Repository not found"))
	default:
		logging.From(r.Context()).Info(msg, slog.Any("error", err))
		safeWrite(w, code, []byte("Invalid repository"))
	}
}

func runPublish(ctx context.Context, uc interfaces.UseCase, id model.RepositoryIdentity) {
	logger := logging.From(ctx).With(slog.String("repo", id.String()))
	logger.Info("Starting publish")

	result, err := uc.Publish(ctx, id)
	if err != nil {
		errutil.HandleError(ctx, "Background publish failed", err)
		return
	}
	if result.Skipped {
		logger.Info("Publish skipped")
		return
	}
	logger.Info("Publish completed",
		slog.String("ref", result.ContentRef.String()),
		slog.Int64("size", result.Size),
	)
}
