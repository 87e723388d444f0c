package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"userfiles/internal/domain"
)

func respondTo(t *testing.T, err error) (*http.Response, map[string]interface{}) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/test", nil)

	handleError(w, r, logger, err)

	resp := w.Result()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return resp, body
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: bad input", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("thing: %w", domain.ErrNotFound), http.StatusNotFound},
		{"duplicate resource", &domain.ConflictError{Message: "folder already exists"}, http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"expired link", domain.ErrLinkExpired, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := respondTo(t, tt.err)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if detail, _ := body["error"].(string); detail == "" {
				t.Error("body has no error detail")
			}
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	_, body := respondTo(t, errors.New("pq: connection refused"))
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, internal detail must not leak", body["error"])
	}
}

func TestHandleErrorSizeLimitExtras(t *testing.T) {
	resp, body := respondTo(t, &domain.SizeLimitError{Limit: 25 << 20, Actual: 25<<20 + 1})

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if got := body["maxSize"].(float64); int64(got) != 25<<20 {
		t.Errorf("maxSize = %v, want %d", got, 25<<20)
	}
	if got := body["uploadedSize"].(float64); int64(got) != 25<<20+1 {
		t.Errorf("uploadedSize = %v, want %d", got, 25<<20+1)
	}
}
