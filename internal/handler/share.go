package handler

import (
	"log/slog"
	"net/http"

	"userfiles/internal/httputil"
	"userfiles/internal/service"
)

// ShareHandler handles share link minting and the anonymous shared views.
type ShareHandler struct {
	shareService *service.ShareService
	logger       *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *service.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// Generate mints a time-limited public link for a folder
// POST /api/clients/{clientId}/folders/{folderId}/share
func (h *ShareHandler) Generate(w http.ResponseWriter, r *http.Request) {
	clientID, folderID, err := folderPathIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.shareService.Generate(r.Context(), clientID, folderID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// ListFiles is the anonymous listing behind a share code
// GET /api/shared/folder/{code}
func (h *ShareHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		httputil.RespondError(w, http.StatusBadRequest, "share code is required")
		return
	}

	resp, err := h.shareService.ListFiles(r.Context(), code)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// Download streams one file from a shared folder
// GET /api/shared/folder/{code}/files/{fileId}
func (h *ShareHandler) Download(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		httputil.RespondError(w, http.StatusBadRequest, "share code is required")
		return
	}
	fileID, err := httputil.PathID(r, "fileId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dl, err := h.shareService.OpenDownload(r.Context(), code, fileID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer dl.Content.Close()

	streamDownload(w, r, h.logger, dl)
}
