package http

import (
	"log/slog"
	"net/http"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.authn.Authenticate(req.Email, req.Password); err != nil {
		slog.Warn("Login rejected", "email", req.Email)
		respondError(w, err)
		return
	}

	token, err := h.jwt.Generate(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.SetAuthenticated(r.Context(), true); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Admin logged in", "email", req.Email)
	respond(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SetAuthenticated(r.Context(), false); err != nil {
		respondError(w, err)
		return
	}
	slog.Info("Admin logged out")
	respond(w, http.StatusNoContent, nil)
}

// session reports the persisted login flag so the dashboard can skip the
// login screen on reload.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	ok, err := h.store.Authenticated(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"authenticated": ok})
}
