package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"userfiles/internal/config"
	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
	"userfiles/internal/dualwrite"
	"userfiles/internal/storage"
)

// FileService executes file mutations against both the filesystem and the
// database, and serves downloads.
type FileService struct {
	files     repositories.FileRepository
	folders   repositories.FolderRepository
	txManager repositories.TransactionManager
	root      *storage.Root
	maxUpload int64
	logger    *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	files repositories.FileRepository,
	folders repositories.FolderRepository,
	txManager repositories.TransactionManager,
	root *storage.Root,
	maxUpload int64,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		files:     files,
		folders:   folders,
		txManager: txManager,
		root:      root,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// UploadRequest carries a base64-encoded file body and its name.
type UploadRequest struct {
	FileName string `json:"fileName"`
	File     string `json:"file"`
}

func (r UploadRequest) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileName,
			validation.Required.Error("file and filename are required"),
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&r.File, validation.Required.Error("file and filename are required")),
	)
}

// RenameFileRequest carries the replacement file name.
type RenameFileRequest struct {
	NewFileName string `json:"newFileName"`
}

func (r RenameFileRequest) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewFileName,
			validation.Required.Error("new filename is required"),
			validation.Length(1, config.MaxFileNameLength),
		),
	)
}

// Download bundles everything a handler needs to stream a file.
type Download struct {
	Name    string
	Size    int64
	Content io.ReadCloser
}

// List returns a folder's files ordered by name. The folder must exist.
func (s *FileService) List(ctx context.Context, clientID, folderID int64) ([]models.File, error) {
	if _, err := s.folders.GetByID(ctx, folderID, clientID); err != nil {
		return nil, err
	}
	return s.files.ListByFolder(ctx, folderID)
}

// Upload decodes the payload, enforces the size ceiling before touching the
// disk, writes the file and records it. A disk write followed by a failed
// insert leaves the file behind: this matches the historical behavior and is
// recorded as an accepted gap rather than silently repaired.
func (s *FileService) Upload(ctx context.Context, clientID, folderID int64, req *UploadRequest) (*models.File, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	data, err := base64.StdEncoding.DecodeString(req.File)
	if err != nil {
		return nil, fmt.Errorf("%w: file is not valid base64", domain.ErrValidation)
	}

	if size := int64(len(data)); size > s.maxUpload {
		return nil, &domain.SizeLimitError{Limit: s.maxUpload, Actual: size}
	}

	folder, err := s.folders.GetByID(ctx, folderID, clientID)
	if err != nil {
		return nil, err
	}

	path := s.root.FilePath(clientID, folder.FolderName, req.FileName)
	if _, err := s.root.Stat(path); err == nil {
		return nil, &domain.ConflictError{
			Message:      "file already exists",
			ResourceType: "file",
		}
	}

	file := &models.File{FolderID: folderID, Name: req.FileName, Path: path}

	err = dualwrite.Run(ctx, s.logger,
		dualwrite.Step{
			Name: "write file",
			Do:   func(context.Context) error { return s.root.WriteFile(path, data) },
			// No Undo: an orphaned file after a failed insert is the
			// accepted trade-off here.
		},
		dualwrite.Step{
			Name: "insert file row",
			Do: func(stepCtx context.Context) error {
				info, statErr := s.root.Stat(path)
				if statErr != nil {
					return statErr
				}
				file.Size = info.Size()
				file.LastModified = info.ModTime()

				return s.txManager.ExecTx(stepCtx, func(txCtx context.Context) error {
					return s.files.Create(txCtx, file)
				})
			},
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded", "folder_id", folderID, "file_id", file.ID, "size", file.Size)
	return file, nil
}

// OpenDownload resolves a file within a folder and opens it for streaming.
// Disk existence is only checked here, lazily.
func (s *FileService) OpenDownload(ctx context.Context, folderID, fileID int64) (*Download, error) {
	file, err := s.files.GetByID(ctx, fileID, folderID)
	if err != nil {
		return nil, err
	}

	return s.openFromDisk(file)
}

func (s *FileService) openFromDisk(file *models.File) (*Download, error) {
	info, err := s.root.Stat(file.Path)
	if err != nil {
		return nil, fmt.Errorf("file not found on disk: %w", domain.ErrNotFound)
	}

	content, err := s.root.Open(file.Path)
	if err != nil {
		return nil, err
	}

	return &Download{Name: file.Name, Size: info.Size(), Content: content}, nil
}

// Rename moves the file on disk and updates the row; a failed update renames
// the file back. The new path substitutes the old name within the stored path.
func (s *FileService) Rename(ctx context.Context, fileID int64, req *RenameFileRequest) error {
	if err := req.validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	file, err := s.files.Get(ctx, fileID)
	if err != nil {
		return err
	}

	newPath := strings.Replace(file.Path, file.Name, req.NewFileName, 1)

	taken, err := s.files.ExistsByName(ctx, file.FolderID, req.NewFileName)
	if err != nil {
		return err
	}
	if taken {
		return &domain.ConflictError{
			Message:      "file with new name already exists",
			ResourceType: "file",
		}
	}

	return dualwrite.Run(ctx, s.logger,
		dualwrite.Step{
			Name: "rename file on disk",
			Do:   func(context.Context) error { return s.root.Rename(file.Path, newPath) },
			Undo: func(context.Context) error { return s.root.Rename(newPath, file.Path) },
		},
		dualwrite.Step{
			Name: "update file row",
			Do: func(stepCtx context.Context) error {
				return s.txManager.ExecTx(stepCtx, func(txCtx context.Context) error {
					return s.files.Rename(txCtx, fileID, req.NewFileName, newPath)
				})
			},
		},
	)
}

// Delete removes the row first, then unlinks the bytes; a missing file on
// disk is not an error.
func (s *FileService) Delete(ctx context.Context, folderID, fileID int64) error {
	file, err := s.files.GetByID(ctx, fileID, folderID)
	if err != nil {
		return err
	}

	return dualwrite.Run(ctx, s.logger,
		dualwrite.Step{
			Name: "delete file row",
			Do: func(stepCtx context.Context) error {
				return s.txManager.ExecTx(stepCtx, func(txCtx context.Context) error {
					return s.files.Delete(txCtx, fileID)
				})
			},
		},
		dualwrite.Step{
			Name: "unlink file",
			Do:   func(context.Context) error { return s.root.RemoveFile(file.Path) },
		},
	)
}
