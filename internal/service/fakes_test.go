package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
	"userfiles/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the fakes have no transactions.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Email]; ok {
		return fmt.Errorf("user %q: %w", user.Email, domain.ErrConflict)
	}
	r.nextID++
	user.ID = r.nextID
	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

type fakeClientRepo struct {
	clients map[int64]*models.Client
	nextID  int64
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[int64]*models.Client{}}
}

func (r *fakeClientRepo) List(context.Context) ([]models.Client, error) {
	out := []models.Client{}
	for _, c := range r.clients {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeClientRepo) Create(_ context.Context, client *models.Client) error {
	r.nextID++
	client.ID = r.nextID
	client.IsActive = true
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	c := *client
	r.clients[client.ID] = &c
	return nil
}

func (r *fakeClientRepo) GetActiveByID(_ context.Context, id int64) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok || !c.IsActive {
		return nil, fmt.Errorf("client %d: %w", id, domain.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) Update(_ context.Context, client *models.Client) error {
	existing, ok := r.clients[client.ID]
	if !ok {
		return fmt.Errorf("client %d: %w", client.ID, domain.ErrNotFound)
	}
	client.CreatedAt = existing.CreatedAt
	client.UpdatedAt = time.Now()
	c := *client
	r.clients[client.ID] = &c
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id int64) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) MobileNumberInUse(_ context.Context, mobileNumber string, excludeID int64) (bool, error) {
	for _, c := range r.clients {
		if c.MobileNumber == mobileNumber && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFolderRepo struct {
	folders   map[int64]*models.Folder
	nextID    int64
	createErr error
	renameErr error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[int64]*models.Folder{}}
}

func (r *fakeFolderRepo) ListByClient(_ context.Context, clientID int64) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, f := range r.folders {
		if f.ClientID == clientID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	folder.ID = r.nextID
	folder.CreatedAt = time.Now()
	folder.UpdatedAt = folder.CreatedAt
	f := *folder
	r.folders[folder.ID] = &f
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, clientID int64) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.ClientID != clientID {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) Rename(_ context.Context, id, clientID int64, folderName string) (*models.Folder, error) {
	if r.renameErr != nil {
		return nil, r.renameErr
	}
	f, ok := r.folders[id]
	if !ok || f.ClientID != clientID {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	f.FolderName = folderName
	f.UpdatedAt = time.Now()
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id, clientID int64) error {
	f, ok := r.folders[id]
	if !ok || f.ClientID != clientID {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

type fakeFileRepo struct {
	files     map[int64]*models.File
	nextID    int64
	createErr error
	renameErr error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[int64]*models.File{}}
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, folderID int64) ([]models.File, error) {
	out := []models.File{}
	for _, f := range r.files {
		if f.FolderID == folderID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	file.ID = r.nextID
	f := *file
	r.files[file.ID] = &f
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id, folderID int64) (*models.File, error) {
	f, ok := r.files[id]
	if !ok || f.FolderID != folderID {
		return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFileRepo) Get(_ context.Context, id int64) (*models.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFileRepo) ExistsByName(_ context.Context, folderID int64, name string) (bool, error) {
	for _, f := range r.files {
		if f.FolderID == folderID && f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFileRepo) Rename(_ context.Context, id int64, name, path string) error {
	if r.renameErr != nil {
		return r.renameErr
	}
	f, ok := r.files[id]
	if !ok {
		return fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	f.Name = name
	f.Path = path
	f.LastModified = time.Now()
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.files[id]; !ok {
		return fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	delete(r.files, id)
	return nil
}

type fakeLinkRepo struct {
	links map[string]*models.FolderLink
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: map[string]*models.FolderLink{}}
}

func (r *fakeLinkRepo) Create(_ context.Context, link *models.FolderLink) error {
	link.CreatedAt = time.Now()
	l := *link
	r.links[link.Code] = &l
	return nil
}

func (r *fakeLinkRepo) GetByCode(_ context.Context, code string) (*models.FolderLink, error) {
	l, ok := r.links[code]
	if !ok {
		return nil, fmt.Errorf("share link: %w", domain.ErrNotFound)
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLinkRepo) Delete(_ context.Context, code string) error {
	delete(r.links, code)
	return nil
}

// newTestFolderService wires a folder service onto a temp directory.
func newTestFolderService(t *testing.T) (*FolderService, *fakeFolderRepo, *storage.Root) {
	t.Helper()
	repo := newFakeFolderRepo()
	root := storage.NewRoot(t.TempDir())
	svc := NewFolderService(repo, fakeTxManager{}, root, testLogger())
	return svc, repo, root
}
