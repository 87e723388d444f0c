// Package storage manages the on-disk directory tree that mirrors folder and
// file rows: one directory per client under the root, one subdirectory per
// folder, plain files beneath. The database rows are authoritative metadata;
// this tree is shadow state kept in lockstep by the service layer.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Root is an explicitly constructed handle over the storage directory, passed
// into services instead of living as process-wide state so tests can point it
// at a temp directory.
type Root struct {
	dir string
}

// NewRoot creates a storage root handle. The directory itself is created
// lazily, per client, on first folder creation.
func NewRoot(dir string) *Root {
	return &Root{dir: dir}
}

// ClientDir returns the directory that holds one client's folders.
func (r *Root) ClientDir(clientID int64) string {
	return filepath.Join(r.dir, strconv.FormatInt(clientID, 10))
}

// FolderDir returns the directory for one named folder of a client.
func (r *Root) FolderDir(clientID int64, folderName string) string {
	return filepath.Join(r.ClientDir(clientID), folderName)
}

// FilePath returns the on-disk path for a file inside a client folder.
func (r *Root) FilePath(clientID int64, folderName, fileName string) string {
	return filepath.Join(r.FolderDir(clientID, folderName), fileName)
}

// EnsureClientDir creates the client's directory if it does not exist yet.
func (r *Root) EnsureClientDir(clientID int64) error {
	if err := os.MkdirAll(r.ClientDir(clientID), 0o755); err != nil {
		return fmt.Errorf("ensure client directory: %w", err)
	}
	return nil
}

// DirExists reports whether path is an existing directory entry.
func (r *Root) DirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateDir creates a single directory.
func (r *Root) CreateDir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

// RemoveDir removes a directory and everything beneath it. Removing an absent
// directory is not an error.
func (r *Root) RemoveDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove directory: %w", err)
	}
	return nil
}

// Rename moves a directory or file to a new path.
func (r *Root) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// WriteFile writes data to path. The file must not exist already; the caller
// checks beforehand, and O_EXCL closes the remaining window.
func (r *Root) WriteFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RemoveFile unlinks a file. Removing an absent file is not an error.
func (r *Root) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// Stat returns file info for path.
func (r *Root) Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	return info, nil
}

// Open opens a file for streaming reads.
func (r *Root) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return f, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeFilename replaces characters outside [A-Za-z0-9_.-] with
// underscores, for use in Content-Disposition headers.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
