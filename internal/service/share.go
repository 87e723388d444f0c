package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
)

// codeBytes sizes the share code at 128 bits of entropy.
const codeBytes = 16

// ShareService mints share links and serves the anonymous read-only view
// behind them. Expired links are deleted lazily, on first access; two
// concurrent accesses to a just-expired code may both observe "expired",
// which is fine because the delete is idempotent.
type ShareService struct {
	links   repositories.FolderLinkRepository
	folders repositories.FolderRepository
	files   repositories.FileRepository
	fileSvc *FileService
	baseURL string
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewShareService creates a new share service
func NewShareService(
	links repositories.FolderLinkRepository,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	fileSvc *FileService,
	baseURL string,
	ttl time.Duration,
	logger *slog.Logger,
) *ShareService {
	return &ShareService{
		links:   links,
		folders: folders,
		files:   files,
		fileSvc: fileSvc,
		baseURL: baseURL,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// ShareLinkResponse is returned when a link is minted.
type ShareLinkResponse struct {
	Success  bool   `json:"success"`
	ShareURL string `json:"share_url"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// SharedFileInfo is one file entry in the anonymous listing.
type SharedFileInfo struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// SharedFolderResponse is the anonymous listing of a shared folder.
type SharedFolderResponse struct {
	Success bool             `json:"success"`
	Expiry  string           `json:"expiry"`
	Files   []SharedFileInfo `json:"files"`
}

// Generate mints an unguessable code for the folder and persists the link
// with a fixed server-side expiry.
func (s *ShareService) Generate(ctx context.Context, clientID, folderID int64) (*ShareLinkResponse, error) {
	if _, err := s.folders.GetByID(ctx, folderID, clientID); err != nil {
		return nil, err
	}

	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate share code: %w", err)
	}
	code := hex.EncodeToString(buf)

	link := &models.FolderLink{
		Code:     code,
		FolderID: folderID,
		ClientID: clientID,
		Expiry:   s.now().Add(s.ttl),
	}

	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("share link generated", "folder_id", folderID, "expiry", link.Expiry)

	return &ShareLinkResponse{
		Success:  true,
		ShareURL: fmt.Sprintf("%s/shared/folder/%s", s.baseURL, code),
		Code:     code,
		Message:  "share link generated successfully",
	}, nil
}

// resolve loads a live link, deleting it when expired. An expired link
// yields domain.ErrLinkExpired; once deleted, later lookups see not-found.
func (s *ShareService) resolve(ctx context.Context, code string) (*models.FolderLink, error) {
	link, err := s.links.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if link.Expired(s.now()) {
		if err := s.links.Delete(ctx, code); err != nil {
			s.logger.Warn("failed to delete expired share link", "error", err)
		}
		return nil, domain.ErrLinkExpired
	}

	return link, nil
}

// ListFiles resolves a code to its folder's file listing and expiry instant.
func (s *ShareService) ListFiles(ctx context.Context, code string) (*SharedFolderResponse, error) {
	link, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	files, err := s.files.ListByFolder(ctx, link.FolderID)
	if err != nil {
		return nil, err
	}

	infos := make([]SharedFileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, SharedFileInfo{
			ID:           f.ID,
			Name:         f.Name,
			Size:         f.Size,
			LastModified: f.LastModified,
		})
	}

	return &SharedFolderResponse{
		Success: true,
		Expiry:  link.Expiry.Format(time.RFC3339),
		Files:   infos,
	}, nil
}

// OpenDownload resolves a code and file id pair to a streamable download.
// The file must belong to the linked folder and still exist on disk.
func (s *ShareService) OpenDownload(ctx context.Context, code string, fileID int64) (*Download, error) {
	link, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.fileSvc.OpenDownload(ctx, link.FolderID, fileID)
}
