package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/domain"
	"portfolio/internal/httputil"
	"portfolio/internal/service"
)

// ContactHandler accepts contact-form submissions and relays them by mail.
type ContactHandler struct {
	svc    *service.ContactService
	logger *slog.Logger
}

func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, logger: logger}
}

// Send validates and relays one submission.
// POST /api/contact (no auth)
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.Send(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			handleError(w, err)
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError,
			"Something went wrong. Please try again later.")
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Your message has been sent!")
}
