package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"userfiles/internal/config"
	"userfiles/internal/httputil"
	"userfiles/internal/service"
	"userfiles/internal/storage"
)

// FileHandler handles file HTTP requests.
type FileHandler struct {
	fileService *service.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *service.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// fileEntry is one row of a folder listing. The flags mirror a directory
// listing even though only files are ever stored.
type fileEntry struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	IsFile       bool      `json:"isFile"`
	IsDirectory  bool      `json:"isDirectory"`
}

// List returns a folder's files ordered by name
// GET /api/clients/{clientId}/folders/{folderId}/files
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, folderID, err := folderPathIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	files, err := h.fileService.List(r.Context(), clientID, folderID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	entries := make([]fileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, fileEntry{
			ID:           f.ID,
			Name:         f.Name,
			Size:         f.Size,
			LastModified: f.LastModified,
			IsFile:       true,
			IsDirectory:  false,
		})
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// Upload decodes a base64 payload and stores the file
// POST /api/clients/{clientId}/folders/{folderId}/files
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	clientID, folderID, err := folderPathIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req service.UploadRequest
	if err := httputil.ParseJSON(w, r, &req, config.MaxJSONBodyBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.fileService.Upload(r.Context(), clientID, folderID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// Download streams a file back as an attachment
// GET /api/clients/{clientId}/folders/{folderId}/files/{fileId}
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	_, folderID, err := folderPathIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	fileID, err := httputil.PathID(r, "fileId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dl, err := h.fileService.OpenDownload(r.Context(), folderID, fileID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer dl.Content.Close()

	streamDownload(w, r, h.logger, dl)
}

// Rename changes a file's name on disk and in the database
// PUT /api/clients/{clientId}/folders/{folderId}/files/{fileId}
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	fileID, err := httputil.PathID(r, "fileId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req service.RenameFileRequest
	if err := httputil.ParseJSON(w, r, &req, config.MaxJSONBodyBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.fileService.Rename(r.Context(), fileID, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "File renamed successfully",
	})
}

// Delete removes a file from the database and disk
// DELETE /api/clients/{clientId}/folders/{folderId}/files/{fileId}
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, folderID, err := folderPathIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	fileID, err := httputil.PathID(r, "fileId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.fileService.Delete(r.Context(), folderID, fileID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "File deleted successfully",
	})
}

func folderPathIDs(r *http.Request) (clientID, folderID int64, err error) {
	clientID, err = httputil.PathID(r, "clientId")
	if err != nil {
		return 0, 0, err
	}
	folderID, err = httputil.PathID(r, "folderId")
	if err != nil {
		return 0, 0, err
	}
	return clientID, folderID, nil
}

// streamDownload writes the attachment headers and copies the content. The
// filename is sanitized so header injection through stored names is not
// possible.
func streamDownload(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dl *service.Download) {
	name := storage.SanitizeFilename(dl.Name)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(dl.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.Copy(w, dl.Content); err != nil {
		// Headers are out; all that is left is logging the broken stream.
		logger.Warn("download stream interrupted",
			"error", err,
			"request_id", httputil.GetRequestID(r),
		)
	}
}
