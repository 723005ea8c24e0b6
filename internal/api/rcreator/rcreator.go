//nolint:revive // exported
package rcreator

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tierlab/ranklist/internal/api/middleware/mwauth"
	"github.com/tierlab/ranklist/internal/api/respond"
	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/permcheck"
	"github.com/tierlab/ranklist/pkg/service/scontributor"
	"github.com/tierlab/ranklist/pkg/service/screator"
	"github.com/tierlab/ranklist/pkg/service/sitem"
	"github.com/tierlab/ranklist/pkg/txutil"
)

type Handler struct {
	db           *sql.DB
	items        sitem.ItemService
	contributors scontributor.ContributorService
	creators     screator.CreatorService
	log          *slog.Logger
}

func New(db *sql.DB, items sitem.ItemService, contributors scontributor.ContributorService, creators screator.CreatorService, log *slog.Logger) *Handler {
	return &Handler{db: db, items: items, contributors: contributors, creators: creators, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{itemID}/creators/", h.Create)
	r.Delete("/{itemID}/creators/{contributorID}", h.Delete)
}

type postCreatorBody struct {
	Creator string `json:"creator"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.requireModerator(r); err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	itemID, err := idwrap.NewText(chi.URLParam(r, "itemID"))
	if err != nil {
		respond.Error(w, h.log, r, sitem.ErrNoItemFound)
		return
	}
	var body postCreatorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Creator == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	var contributorID idwrap.IDWrap
	err = txutil.Execute(r.Context(), h.db, h.log, func(tx *sql.Tx) error {
		item, err := h.items.TX(tx).GetByID(r.Context(), itemID)
		if err != nil {
			return err
		}
		contributor, err := h.contributors.TX(tx).GetByNameOrCreate(r.Context(), body.Creator)
		if err != nil {
			return err
		}
		contributorID = contributor.ID
		return h.creators.TX(tx).Create(r.Context(), item.ID, contributor.ID)
	})
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/items/%s/creators/%s", itemID, contributorID))
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requireModerator(r); err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	itemID, err := idwrap.NewText(chi.URLParam(r, "itemID"))
	if err != nil {
		respond.Error(w, h.log, r, sitem.ErrNoItemFound)
		return
	}
	contributorID, err := idwrap.NewText(chi.URLParam(r, "contributorID"))
	if err != nil {
		respond.Error(w, h.log, r, scontributor.ErrNoContributorFound)
		return
	}

	err = txutil.Execute(r.Context(), h.db, h.log, func(tx *sql.Tx) error {
		item, err := h.items.TX(tx).GetByID(r.Context(), itemID)
		if err != nil {
			return err
		}
		contributor, err := h.contributors.TX(tx).GetByID(r.Context(), contributorID)
		if err != nil {
			return err
		}
		return h.creators.TX(tx).Delete(r.Context(), item.ID, contributor.ID)
	})
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requireModerator(r *http.Request) error {
	role, err := mwauth.GetContextRole(r.Context())
	if err != nil {
		return err
	}
	return permcheck.CheckListModerator(role)
}
