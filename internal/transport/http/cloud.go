package http

import (
	"fmt"
	"net/http"

	"github.com/uneeddev/agencydesk/internal/models"
	"github.com/uneeddev/agencydesk/internal/service"
)

func (h *Handler) cloudConfig(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.svc.CloudConfig())
}

// saveCloudConfig persists new credentials. When complete, the service
// immediately adopts the cloud copy, same as on startup.
func (h *Handler) saveCloudConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.CloudConfig
	if err := decode(r, &cfg); err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.ConfigureCloud(r.Context(), cfg); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, h.svc.SyncState())
}

func (h *Handler) cloudStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.svc.SyncState())
}

func (h *Handler) cloudUpload(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PushToCloud(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, h.svc.SyncState())
}

// cloudDownload overwrites local data with the cloud copy. The dashboard
// confirms with the admin before calling this.
func (h *Handler) cloudDownload(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.FetchFromCloud(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, h.svc.SyncState())
}

// cloudCreate mints a new remote document. Replacing an already configured
// document id is destructive, so it requires confirm=true from the caller.
func (h *Handler) cloudCreate(w http.ResponseWriter, r *http.Request) {
	if h.svc.CloudConfig().BinID != "" && r.URL.Query().Get("confirm") != "true" {
		respondError(w, fmt.Errorf("%w: a document id is already configured; pass confirm=true to replace it", service.ErrValidation))
		return
	}

	binID, err := h.svc.CreateRemote(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"binId": binID})
}
