// Package http wires the admin data controller, auth, and chat assistant
// into a JSON REST API consumed by the dashboard frontend.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/uneeddev/agencydesk/internal/auth"
	"github.com/uneeddev/agencydesk/internal/chat"
	"github.com/uneeddev/agencydesk/internal/middleware"
	"github.com/uneeddev/agencydesk/internal/service"
	"github.com/uneeddev/agencydesk/internal/storage"
)

// Handler holds the dependencies of the HTTP surface.
type Handler struct {
	svc       *service.AdminService
	store     storage.Store
	authn     *auth.StaticAuthenticator
	jwt       *auth.JWTManager
	assistant *chat.Assistant // nil when chat is not configured
}

// New creates the HTTP handler set. assistant may be nil; the chat endpoint
// then reports unavailable instead of failing startup.
func New(svc *service.AdminService, store storage.Store, authn *auth.StaticAuthenticator, jwt *auth.JWTManager, assistant *chat.Assistant) *Handler {
	return &Handler{svc: svc, store: store, authn: authn, jwt: jwt, assistant: assistant}
}

// Routes builds the full route table. Everything under /api/admin/ requires
// a valid session token.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("GET /api/session", h.session)
	mux.HandleFunc("POST /api/chat", h.chatMessage)
	mux.HandleFunc("POST /api/chat/reset", h.chatReset)

	admin := http.NewServeMux()
	admin.HandleFunc("POST /api/logout", h.logout)

	admin.HandleFunc("GET /api/admin/projects", h.listProjects)
	admin.HandleFunc("POST /api/admin/projects", h.createProject)
	admin.HandleFunc("PUT /api/admin/projects/{id}", h.updateProject)
	admin.HandleFunc("DELETE /api/admin/projects/{id}", h.deleteProject)

	admin.HandleFunc("GET /api/admin/transactions", h.listTransactions)
	admin.HandleFunc("POST /api/admin/transactions", h.createTransaction)
	admin.HandleFunc("PUT /api/admin/transactions/{id}", h.updateTransaction)
	admin.HandleFunc("DELETE /api/admin/transactions/{id}", h.deleteTransaction)

	admin.HandleFunc("GET /api/admin/members", h.listMembers)
	admin.HandleFunc("POST /api/admin/members", h.createMember)
	admin.HandleFunc("PUT /api/admin/members/{id}", h.updateMember)
	admin.HandleFunc("DELETE /api/admin/members/{id}", h.deleteMember)

	admin.HandleFunc("GET /api/admin/forms/{collection}", h.formState)
	admin.HandleFunc("POST /api/admin/forms/{collection}/open", h.formOpen)
	admin.HandleFunc("PUT /api/admin/forms/{collection}", h.formDraft)
	admin.HandleFunc("POST /api/admin/forms/{collection}/submit", h.formSubmit)
	admin.HandleFunc("POST /api/admin/forms/{collection}/cancel", h.formCancel)

	admin.HandleFunc("GET /api/admin/stats", h.stats)
	admin.HandleFunc("GET /api/admin/reports/monthly", h.monthlyRevenue)
	admin.HandleFunc("GET /api/admin/reports/members", h.memberRevenue)
	admin.HandleFunc("GET /api/admin/export", h.export)

	admin.HandleFunc("GET /api/admin/cloud/config", h.cloudConfig)
	admin.HandleFunc("PUT /api/admin/cloud/config", h.saveCloudConfig)
	admin.HandleFunc("GET /api/admin/cloud/status", h.cloudStatus)
	admin.HandleFunc("POST /api/admin/cloud/upload", h.cloudUpload)
	admin.HandleFunc("POST /api/admin/cloud/download", h.cloudDownload)
	admin.HandleFunc("POST /api/admin/cloud/create", h.cloudCreate)

	mux.Handle("/api/admin/", middleware.RequireAuth(h.jwt, admin))
	mux.Handle("POST /api/logout", middleware.RequireAuth(h.jwt, admin))

	return mux
}

// respond writes v as JSON with the given status.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps service errors onto HTTP statuses and a JSON error body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotConfigured):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	respond(w, status, map[string]string{"error": err.Error()})
}

// decode reads the JSON request body into v.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(service.ErrValidation, err)
	}
	return nil
}
