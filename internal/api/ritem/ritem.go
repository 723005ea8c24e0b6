//nolint:revive // exported
package ritem

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tierlab/ranklist/internal/api/middleware/mwauth"
	"github.com/tierlab/ranklist/internal/api/respond"
	"github.com/tierlab/ranklist/pkg/etag"
	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/metrics"
	"github.com/tierlab/ranklist/pkg/model/mitem"
	"github.com/tierlab/ranklist/pkg/permcheck"
	"github.com/tierlab/ranklist/pkg/service/sitem"
	"github.com/tierlab/ranklist/pkg/txutil"
)

type Handler struct {
	db      *sql.DB
	items   sitem.ItemService
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(db *sql.DB, items sitem.ItemService, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{db: db, items: items, metrics: m, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/at/{position}", h.GetByPosition)
	r.Get("/{itemID}", h.Get)
	r.Patch("/{itemID}", h.Patch)
	r.Delete("/{itemID}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := sitem.ListParams{}
	q := r.URL.Query()
	params.After, _ = strconv.Atoi(q.Get("after"))
	params.Before, _ = strconv.Atoi(q.Get("before"))
	params.Limit, _ = strconv.Atoi(q.Get("limit"))

	items, err := h.items.List(r.Context(), params)
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idwrap.NewText(chi.URLParam(r, "itemID"))
	if err != nil {
		respond.Error(w, h.log, r, sitem.ErrNoItemFound)
		return
	}
	full, err := h.items.GetFullByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	if err := respond.JSONWithETag(w, http.StatusOK, full); err != nil {
		respond.Error(w, h.log, r, err)
	}
}

func (h *Handler) GetByPosition(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		respond.Error(w, h.log, r, sitem.ErrNoItemFound)
		return
	}
	full, err := h.items.GetFullByPosition(r.Context(), position)
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	if err := respond.JSONWithETag(w, http.StatusOK, full); err != nil {
		respond.Error(w, h.log, r, err)
	}
}

type postItemBody struct {
	Name        string   `json:"name"`
	Position    int      `json:"position"`
	Requirement int      `json:"requirement"`
	Verifier    string   `json:"verifier"`
	Publisher   string   `json:"publisher"`
	MediaLink   *string  `json:"mediaLink"`
	Creators    []string `json:"creators"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.requireModerator(r); err != nil {
		respond.Error(w, h.log, r, err)
		return
	}

	var body postItemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}
	if body.Name == "" || body.Verifier == "" || body.Publisher == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"message": "name, verifier and publisher are required"})
		return
	}

	var created mitem.FullItem
	err := txutil.Execute(r.Context(), h.db, h.log, func(tx *sql.Tx) error {
		var err error
		created, err = h.items.TX(tx).Create(r.Context(), sitem.CreateItemParams{
			Name:        body.Name,
			Position:    body.Position,
			Requirement: body.Requirement,
			Verifier:    body.Verifier,
			Publisher:   body.Publisher,
			MediaLink:   body.MediaLink,
			Creators:    body.Creators,
		})
		return err
	})
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	if err := respond.JSONWithETag(w, http.StatusCreated, created); err != nil {
		respond.Error(w, h.log, r, err)
	}
}

// Patch applies a partial update. The version token comparison happens on
// state read inside the same write transaction that applies the patch, so two
// patches racing on one token serialize: the loser sees the winner's token
// and fails the precondition instead of silently clobbering it.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	if err := h.requireModerator(r); err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	id, err := idwrap.NewText(chi.URLParam(r, "itemID"))
	if err != nil {
		respond.Error(w, h.log, r, sitem.ErrNoItemFound)
		return
	}
	expected, ok := respond.IfMatch(r)
	if !ok {
		respond.JSON(w, http.StatusPreconditionRequired, map[string]string{"message": "If-Match header required"})
		return
	}

	var body mitem.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	var updated mitem.FullItem
	err = txutil.Execute(r.Context(), h.db, h.log, func(tx *sql.Tx) error {
		svc := h.items.TX(tx)
		full, err := svc.GetFullByID(r.Context(), id)
		if err != nil {
			return err
		}
		if err := etag.CheckPrecondition(full, expected); err != nil {
			h.metrics.PreconditionConflicts.Inc()
			return err
		}
		item := full.Item
		if err := svc.ApplyPatch(r.Context(), &item, body); err != nil {
			return err
		}
		updated = mitem.FullItem{Item: item, Creators: full.Creators}
		return nil
	})
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}

	h.metrics.Patches.Inc()
	if body.Position.IsSet() {
		h.metrics.Moves.Inc()
	}
	if err := respond.JSONWithETag(w, http.StatusOK, updated); err != nil {
		respond.Error(w, h.log, r, err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	role, err := mwauth.GetContextRole(r.Context())
	if err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	if err := permcheck.CheckListAdmin(role); err != nil {
		respond.Error(w, h.log, r, err)
		return
	}
	id, err := idwrap.NewText(chi.URLParam(r, "itemID"))
	if err != nil {
		respond.Error(w, h.log, r, sitem.ErrNoItemFound)
		return
	}

	err = txutil.Execute(r.Context(), h.db, h.log, func(tx *sql.Tx) error {
		svc := h.items.TX(tx)
		item, err := svc.GetByID(r.Context(), id)
		if err != nil {
			return err
		}
		return svc.Delete(r.Context(), item)
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
