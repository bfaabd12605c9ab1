package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/degit-io/degit-riptide/pkg/utils/errutil"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	mux       *chi.Mux
	publishes *sync.WaitGroup
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to encode response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, raw)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps an error class to the HTTP status reported to the client.
func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidService),
		errors.Is(err, types.ErrInvalidIdentity),
		errors.Is(err, types.ErrValidationFailed),
		errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrRepoNotFound),
		errors.Is(err, types.ErrRefNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONError reports err as {"error": msg}. Client errors carry msg as
// given; server errors are reported to Sentry and answered generically.
func writeJSONError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		errutil.HandleError(r.Context(), msg, err)
		writeJSON(w, code, &errorResponse{Error: "internal error"})
		return
	}

	logging.From(r.Context()).Info(msg, slog.Any("error", err))
	writeJSON(w, code, &errorResponse{Error: clientMessage(err, msg)})
}

func clientMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return "Repo already exists"
	case errors.Is(err, types.ErrRepoNotFound):
		return "repository not found"
	case errors.Is(err, types.ErrRefNotFound):
		return "branch or path not found"
	}
	return fallback
}

type config struct {
	defaultOwner types.OwnerID
}

type Option func(*config)

// WithDefaultOwner sets the owner used when a request carries no publicKey.
func WithDefaultOwner(owner types.OwnerID) Option {
	return func(cfg *config) {
		cfg.defaultOwner = owner
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	srv := &Server{
		publishes: &sync.WaitGroup{},
	}
	git := &gitHandler{uc: uc, cfg: cfg, publishes: srv.publishes}
	meta := &metaHandler{uc: uc, cfg: cfg}
	profile := &profileHandler{uc: uc}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/meta/{repoId}", func(r chi.Router) {
		r.Get("/tree/{branch}", meta.tree)
		r.Get("/tree/{branch}/*", meta.tree)
		r.Get("/blob/{branch}/*", meta.blob)
	})
	r.Route("/db/profile", func(r chi.Router) {
		r.Get("/display_name", profile.getDisplayName)
		r.Post("/display_name", profile.postDisplayName)
		r.Get("/repos", profile.getRepos)
		r.Post("/repos", profile.postRepos)
	})
	r.Get("/{repository}/info/refs", git.infoRefs)
	r.Post("/{repository}/{service}", git.service)

	srv.mux = r
	return srv
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// WaitPublishes blocks until every publish started by a push has finished.
func (x *Server) WaitPublishes() {
	x.publishes.Wait()
}
