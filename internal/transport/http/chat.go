package http

import (
	"net/http"
)

// chatMessage forwards one visitor message to the AI consultant. The
// endpoint is public: the widget sits on the marketing site, not behind the
// admin gate.
func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		respond(w, http.StatusServiceUnavailable, map[string]string{"error": "chat is not configured"})
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Message == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "message must not be empty"})
		return
	}

	reply, err := h.assistant.SendMessage(r.Context(), req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"reply": reply})
}

// chatReset drops the conversation history; the next message starts fresh.
func (h *Handler) chatReset(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		respond(w, http.StatusServiceUnavailable, map[string]string{"error": "chat is not configured"})
		return
	}
	h.assistant.Reset()
	respond(w, http.StatusNoContent, nil)
}
