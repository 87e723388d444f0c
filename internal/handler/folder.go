package handler

import (
	"log/slog"
	"net/http"

	"userfiles/internal/config"
	"userfiles/internal/httputil"
	"userfiles/internal/service"
)

// FolderHandler handles folder HTTP requests.
type FolderHandler struct {
	folderService *service.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService *service.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// List returns a client's folders with their on-disk existence
// GET /api/clients/{clientId}/folders
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := httputil.PathID(r, "clientId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folders, err := h.folderService.List(r.Context(), clientID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// Create makes a folder on disk and in the database
// POST /api/clients/{clientId}/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := httputil.PathID(r, "clientId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req service.FolderRequest
	if err := httputil.ParseJSON(w, r, &req, config.MaxJSONBodyBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.Create(r.Context(), clientID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Rename moves a folder on disk and updates the row
// PUT /api/clients/{clientId}/folders/{folderId}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	clientID, err := httputil.PathID(r, "clientId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	folderID, err := httputil.PathID(r, "folderId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req service.FolderRequest
	if err := httputil.ParseJSON(w, r, &req, config.MaxJSONBodyBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.Rename(r.Context(), clientID, folderID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Delete removes a folder from disk and the database
// DELETE /api/clients/{clientId}/folders/{folderId}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, err := httputil.PathID(r, "clientId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	folderID, err := httputil.PathID(r, "folderId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.folderService.Delete(r.Context(), clientID, folderID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Folder deleted successfully",
	})
}
