package handler

import (
	"log/slog"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/httputil"
)

// LoginHandler exchanges the admin credential pair for a bearer token.
type LoginHandler struct {
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewLoginHandler(tokens *auth.TokenService, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{tokens: tokens, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the single admin identity.
// POST /api/admin/login (the one unauthenticated admin route)
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.tokens.Login(req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Token:   token,
		Message: "Login successful",
	})
}
