package server

import (
	"net/http"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/go-chi/chi/v5"
)

type metaHandler struct {
	uc  interfaces.UseCase
	cfg *config
}

func browseInput(r *http.Request, cfg *config) *model.BrowseInput {
	return &model.BrowseInput{
		Identity:  identityFrom(r, cfg, "repoId"),
		Namespace: types.Namespace(r.URL.Query().Get("orbitId")),
		Branch:    types.BranchName(chi.URLParam(r, "branch")),
		Path:      chi.URLParam(r, "*"),
	}
}

func (x *metaHandler) tree(w http.ResponseWriter, r *http.Request) {
	listing, err := x.uc.BrowseTree(r.Context(), browseInput(r, x.cfg))
	if err != nil {
		writeJSONError(w, r, "fail to list tree", err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (x *metaHandler) blob(w http.ResponseWriter, r *http.Request) {
	blob, err := x.uc.ReadBlob(r.Context(), browseInput(r, x.cfg))
	if err != nil {
		writeJSONError(w, r, "fail to read blob", err)
		return
	}
	writeJSON(w, http.StatusOK, blob)
}
