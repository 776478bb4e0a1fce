package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/api/handlers"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
)

// TestSystemHandler_Health tests the health endpoint.
func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy when the snapshot directory is usable", func(t *testing.T) {
		handler := handlers.NewSystemHandler(service.NewSystemService(t.TempDir()))
		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()

		handler.Health(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		var body handlers.HealthResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Status != "healthy" || body.Snapshots != "available" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("unhealthy when the snapshot directory cannot be created", func(t *testing.T) {
		// A regular file where the directory should be makes MkdirAll fail.
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
			t.Fatalf("writing blocker file: %v", err)
		}

		handler := handlers.NewSystemHandler(service.NewSystemService(filepath.Join(blocker, "snapshots")))
		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()

		handler.Health(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		var body handlers.HealthResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Status != "unhealthy" || body.Error == "" {
			t.Errorf("body = %+v", body)
		}
	})
}

// TestSystemHandler_Version tests the version endpoint.
func TestSystemHandler_Version(t *testing.T) {
	handler := handlers.NewSystemHandler(service.NewSystemService(t.TempDir()))
	req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
	rec := httptest.NewRecorder()

	handler.Version(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body handlers.VersionResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.AppVersion != service.Version {
		t.Errorf("app_version = %q, want %q", body.AppVersion, service.Version)
	}
}
