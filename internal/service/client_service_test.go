package service

import (
	"context"
	"errors"
	"testing"

	"userfiles/internal/domain"
)

func newTestClientService(t *testing.T) (*ClientService, *fakeClientRepo) {
	t.Helper()
	clients := newFakeClientRepo()
	return NewClientService(clients, fakeTxManager{}, testLogger()), clients
}

func validClientRequest() *ClientRequest {
	email := "acme@example.com"
	return &ClientRequest{
		FirstName:    "Acme",
		LastName:     "Corp",
		Email:        &email,
		MobileNumber: "5551234567",
		City:         "Springfield",
	}
}

func TestClientCreate(t *testing.T) {
	svc, _ := newTestClientService(t)

	client, err := svc.Create(context.Background(), validClientRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if client.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if !client.IsActive {
		t.Error("new client should be active")
	}
}

func TestClientCreateValidation(t *testing.T) {
	svc, _ := newTestClientService(t)

	badEmail := "nope"
	emptyEmail := ""

	tests := []struct {
		name    string
		mutate  func(*ClientRequest)
		wantErr bool
	}{
		{"missing first name", func(r *ClientRequest) { r.FirstName = "" }, true},
		{"missing last name", func(r *ClientRequest) { r.LastName = "" }, true},
		{"missing city", func(r *ClientRequest) { r.City = "" }, true},
		{"short mobile", func(r *ClientRequest) { r.MobileNumber = "12345" }, true},
		{"mobile with letters", func(r *ClientRequest) { r.MobileNumber = "555123456a" }, true},
		{"bad email", func(r *ClientRequest) { r.Email = &badEmail }, true},
		{"empty email allowed", func(r *ClientRequest) { r.Email = &emptyEmail }, false},
		{"nil email allowed", func(r *ClientRequest) { r.Email = nil }, false},
		{"no group name allowed", func(r *ClientRequest) { r.GroupName = nil }, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validClientRequest()
			// Distinct mobile numbers keep the uniqueness check out of the way.
			req.MobileNumber = "555123456" + string(rune('0'+i))
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Create() error = %v, want nil", err)
			}
		})
	}
}

func TestClientCreateDuplicateMobile(t *testing.T) {
	svc, _ := newTestClientService(t)

	if _, err := svc.Create(context.Background(), validClientRequest()); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	second := validClientRequest()
	second.FirstName = "Other"
	_, err := svc.Create(context.Background(), second)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Create() error = %v, want ErrConflict", err)
	}
}

func TestClientUpdateKeepsOwnMobile(t *testing.T) {
	svc, _ := newTestClientService(t)

	created, err := svc.Create(context.Background(), validClientRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Updating without changing the mobile number must not trip the
	// uniqueness check against the client's own row.
	req := validClientRequest()
	req.City = "Shelbyville"
	updated, err := svc.Update(context.Background(), created.ID, req)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.City != "Shelbyville" {
		t.Errorf("City = %q, want Shelbyville", updated.City)
	}
	if !updated.IsActive {
		t.Error("IsActive should default to true when omitted")
	}
}

func TestClientUpdateMobileTakenByOther(t *testing.T) {
	svc, _ := newTestClientService(t)

	first, err := svc.Create(context.Background(), validClientRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second := validClientRequest()
	second.MobileNumber = "5559876543"
	other, err := svc.Create(context.Background(), second)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := validClientRequest()
	req.MobileNumber = first.MobileNumber
	_, err = svc.Update(context.Background(), other.ID, req)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Update() error = %v, want ErrConflict", err)
	}
}

func TestClientUpdateDeactivates(t *testing.T) {
	svc, clients := newTestClientService(t)

	created, err := svc.Create(context.Background(), validClientRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	inactive := false
	req := validClientRequest()
	req.IsActive = &inactive
	if _, err := svc.Update(context.Background(), created.ID, req); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() on inactive client error = %v, want ErrNotFound", err)
	}
	if clients.clients[created.ID].IsActive {
		t.Error("row should be inactive")
	}
}

func TestClientDeleteIdempotent(t *testing.T) {
	svc, _ := newTestClientService(t)

	created, err := svc.Create(context.Background(), validClientRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("repeated Delete() error = %v", err)
	}
}
