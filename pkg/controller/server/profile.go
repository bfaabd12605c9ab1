package server

import (
	"encoding/json"
	"net/http"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type profileHandler struct {
	uc interfaces.UseCase
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(types.ErrValidationFailed, "invalid JSON body", goerr.V("error", err.Error()))
	}
	return nil
}

func (x *profileHandler) getDisplayName(w http.ResponseWriter, r *http.Request) {
	name, err := x.uc.GetDisplayName(r.Context())
	if err != nil {
		writeJSONError(w, r, "fail to get display name", err)
		return
	}
	writeJSON(w, http.StatusOK, name)
}

func (x *profileHandler) postDisplayName(w http.ResponseWriter, r *http.Request) {
	var name model.DisplayName
	if err := decodeJSON(r, &name); err != nil {
		writeJSONError(w, r, "Display name is required", err)
		return
	}
	if err := x.uc.SetDisplayName(r.Context(), &name); err != nil {
		writeJSONError(w, r, "Display name is required", err)
		return
	}
	writeJSON(w, http.StatusOK, &name)
}

func (x *profileHandler) getRepos(w http.ResponseWriter, r *http.Request) {
	list, err := x.uc.ListRepos(r.Context())
	if err != nil {
		writeJSONError(w, r, "fail to list repos", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (x *profileHandler) postRepos(w http.ResponseWriter, r *http.Request) {
	var repo model.RepoSummary
	if err := decodeJSON(r, &repo); err != nil {
		writeJSONError(w, r, "Repo name is required", err)
		return
	}
	if err := x.uc.AddRepo(r.Context(), &repo); err != nil {
		writeJSONError(w, r, "Repo name is required", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
