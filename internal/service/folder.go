package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"userfiles/internal/config"
	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
	"userfiles/internal/dualwrite"
	"userfiles/internal/storage"
)

// FolderService executes folder mutations against both the filesystem and
// the database. The filesystem side runs first; when the database side fails
// the disk change is compensated, so a caller that sees an error never finds
// a directory without a row.
type FolderService struct {
	folders   repositories.FolderRepository
	txManager repositories.TransactionManager
	root      *storage.Root
	logger    *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folders repositories.FolderRepository,
	txManager repositories.TransactionManager,
	root *storage.Root,
	logger *slog.Logger,
) *FolderService {
	return &FolderService{
		folders:   folders,
		txManager: txManager,
		root:      root,
		logger:    logger,
	}
}

// FolderRequest is the payload for creating or renaming a folder.
type FolderRequest struct {
	FolderName string `json:"folderName"`
}

func (r FolderRequest) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FolderName,
			validation.Required.Error("folder name is required"),
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

// List returns a client's folders with their advisory on-disk existence.
func (s *FolderService) List(ctx context.Context, clientID int64) ([]models.Folder, error) {
	folders, err := s.folders.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	for i := range folders {
		folders[i].Exists = s.root.DirExists(s.root.FolderDir(clientID, folders[i].FolderName))
	}

	return folders, nil
}

// Create makes the directory and inserts the row. If the insert fails the
// directory is removed again.
func (s *FolderService) Create(ctx context.Context, clientID int64, req *FolderRequest) (*models.Folder, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.root.EnsureClientDir(clientID); err != nil {
		return nil, err
	}

	dir := s.root.FolderDir(clientID, req.FolderName)
	if s.root.DirExists(dir) {
		return nil, &domain.ConflictError{
			Message:      "folder already exists",
			ResourceType: "folder",
		}
	}

	folder := &models.Folder{ClientID: clientID, FolderName: req.FolderName}

	err := dualwrite.Run(ctx, s.logger,
		dualwrite.Step{
			Name: "create directory",
			Do:   func(context.Context) error { return s.root.CreateDir(dir) },
			Undo: func(context.Context) error { return s.root.RemoveDir(dir) },
		},
		dualwrite.Step{
			Name: "insert folder row",
			Do: func(stepCtx context.Context) error {
				return s.txManager.ExecTx(stepCtx, func(txCtx context.Context) error {
					return s.folders.Create(txCtx, folder)
				})
			},
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "client_id", clientID, "folder_id", folder.ID)
	folder.Exists = true
	return folder, nil
}

// Rename moves the directory and updates the row. If the update fails the
// directory is renamed back.
func (s *FolderService) Rename(ctx context.Context, clientID, folderID int64, req *FolderRequest) (*models.Folder, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	current, err := s.folders.GetByID(ctx, folderID, clientID)
	if err != nil {
		return nil, err
	}

	oldDir := s.root.FolderDir(clientID, current.FolderName)
	newDir := s.root.FolderDir(clientID, req.FolderName)

	if s.root.DirExists(newDir) {
		return nil, &domain.ConflictError{
			Message:      "folder name already exists",
			ResourceType: "folder",
		}
	}

	var renamed *models.Folder
	err = dualwrite.Run(ctx, s.logger,
		dualwrite.Step{
			Name: "rename directory",
			Do:   func(context.Context) error { return s.root.Rename(oldDir, newDir) },
			Undo: func(context.Context) error { return s.root.Rename(newDir, oldDir) },
		},
		dualwrite.Step{
			Name: "update folder row",
			Do: func(stepCtx context.Context) error {
				return s.txManager.ExecTx(stepCtx, func(txCtx context.Context) error {
					var updateErr error
					renamed, updateErr = s.folders.Rename(txCtx, folderID, clientID, req.FolderName)
					return updateErr
				})
			},
		},
	)
	if err != nil {
		return nil, err
	}

	renamed.Exists = true
	return renamed, nil
}

// Delete removes the directory (idempotent when already absent) and deletes
// the row. A row that vanished concurrently reports not-found; the directory
// removal is deliberately not rolled back in that case.
func (s *FolderService) Delete(ctx context.Context, clientID, folderID int64) error {
	current, err := s.folders.GetByID(ctx, folderID, clientID)
	if err != nil {
		return err
	}

	dir := s.root.FolderDir(clientID, current.FolderName)

	return dualwrite.Run(ctx, s.logger,
		dualwrite.Step{
			Name: "remove directory",
			Do:   func(context.Context) error { return s.root.RemoveDir(dir) },
		},
		dualwrite.Step{
			Name: "delete folder row",
			Do: func(stepCtx context.Context) error {
				return s.txManager.ExecTx(stepCtx, func(txCtx context.Context) error {
					return s.folders.Delete(txCtx, folderID, clientID)
				})
			},
		},
	)
}
