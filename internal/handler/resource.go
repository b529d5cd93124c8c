package handler

import (
	"log/slog"
	"net/http"

	"portfolio/internal/domain"
	"portfolio/internal/httputil"
	"portfolio/internal/service"
)

// ResourceHandler serves one collection's admin CRUD endpoints. The five
// collections share this implementation; only the service instance differs.
type ResourceHandler[T any, PT interface {
	*T
	domain.Entity
}] struct {
	svc    *service.Resource[T, PT]
	logger *slog.Logger
}

func NewResourceHandler[T any, PT interface {
	*T
	domain.Entity
}](svc *service.Resource[T, PT], logger *slog.Logger) *ResourceHandler[T, PT] {
	return &ResourceHandler[T, PT]{svc: svc, logger: logger}
}

// Register wires the collection's routes onto the mux.
func (h *ResourceHandler[T, PT]) Register(mux *http.ServeMux) {
	base := "/api/admin/" + h.svc.Name()
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("PUT "+base, h.Update)
	mux.HandleFunc("DELETE "+base, h.Delete)
	mux.HandleFunc("POST "+base+"/reorder", h.Reorder)
}

// List returns the full collection including hidden entities.
// GET /api/admin/{resource}
func (h *ResourceHandler[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, items)
}

// Create appends a new entity built from the request body.
// POST /api/admin/{resource}
func (h *ResourceHandler[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entity, err := h.svc.Create(r.Context(), body)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, entity)
}

// Update merges the body over the entity whose id the body carries.
// PUT /api/admin/{resource}
func (h *ResourceHandler[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, _ := body["id"].(string)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Entity id is required")
		return
	}

	entity, err := h.svc.Update(r.Context(), id, body)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, entity)
}

// Delete removes the entity named by the id query parameter.
// DELETE /api/admin/{resource}?id=
func (h *ResourceHandler[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Entity id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondMessage(w, http.StatusOK, "Deleted")
}

type reorderRequest struct {
	IDA string `json:"idA"`
	IDB string `json:"idB"`
}

// Reorder swaps the order values of two entities in one write.
// POST /api/admin/{resource}/reorder
func (h *ResourceHandler[T, PT]) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IDA == "" || req.IDB == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Both entity ids are required")
		return
	}

	pair, err := h.svc.Reorder(r.Context(), req.IDA, req.IDB)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, pair)
}
