package apiserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/driftdns/resolver-dns/pkg/backend"
	"github.com/driftdns/resolver-dns/pkg/db"
	"github.com/driftdns/resolver-dns/pkg/model"
	"github.com/driftdns/resolver-dns/pkg/version"
	"github.com/gorilla/mux"
)

type handler struct {
	backend backend.Backend
}

func newHandler(b backend.Backend) *handler {
	return &handler{
		backend: b,
	}
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{OK: true})
}

func (h *handler) listResolvers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := db.ListOptions{
		Provider: q.Get("provider"),
		Hostname: q.Get("hostname"),
	}
	// Unparseable paging and flags fall back to defaults, never 400.
	if v, err := strconv.ParseBool(q.Get("includeDeleted")); err == nil {
		opts.IncludeDeleted = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		opts.Offset = v
	}
	opts.Normalize()

	items, err := h.backend.List(r.Context(), opts)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ListResponse{
		Items:  items,
		Limit:  opts.Limit,
		Offset: opts.Offset,
		Count:  len(items),
	})
}

func (h *handler) createResolver(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	created, err := h.backend.Create(r.Context(), payload)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) getResolver(w http.ResponseWriter, r *http.Request) {
	id, ok := resolverID(w, r)
	if !ok {
		return
	}

	includeDeleted, _ := strconv.ParseBool(r.URL.Query().Get("includeDeleted"))

	rec, err := h.backend.Get(r.Context(), id, includeDeleted)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) updateResolver(w http.ResponseWriter, r *http.Request) {
	id, ok := resolverID(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	updated, err := h.backend.Update(r.Context(), id, payload)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteResolver(w http.ResponseWriter, r *http.Request) {
	id, ok := resolverID(w, r)
	if !ok {
		return
	}

	deleted, err := h.backend.Delete(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleted)
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "route not found", nil)
}

func resolverID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return 0, false
	}
	return uint(id), true
}

func decodePayload(w http.ResponseWriter, r *http.Request) (model.ResolverPayload, bool) {
	var payload model.ResolverPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON", nil)
		return model.ResolverPayload{}, false
	}
	return payload, true
}
