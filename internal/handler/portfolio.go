package handler

import (
	"log/slog"
	"net/http"

	"portfolio/internal/httputil"
	"portfolio/internal/service"
)

// PortfolioHandler serves the public projection and the personal-info
// singleton.
type PortfolioHandler struct {
	svc    *service.PortfolioService
	logger *slog.Logger
}

func NewPortfolioHandler(svc *service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, logger: logger}
}

// Public returns the visible-only, order-sorted view of the document.
// GET /api/portfolio (no auth)
func (h *PortfolioHandler) Public(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.PublicView(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, doc)
}

// GetPersonalInfo returns the singleton record.
// GET /api/admin/personal-info
func (h *PortfolioHandler) GetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.PersonalInfo(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, info)
}

// UpdatePersonalInfo merges the body over the singleton record.
// PUT /api/admin/personal-info
func (h *PortfolioHandler) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.svc.UpdatePersonalInfo(r.Context(), body)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondData(w, http.StatusOK, info)
}

// HealthCheck is a plain liveness probe.
// GET /health
func (h *PortfolioHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
