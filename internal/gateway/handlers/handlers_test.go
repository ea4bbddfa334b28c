package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-cmp/cmp"
)

func TestReadinessProbe(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/live" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"status":"alive"}`))
	}))
	defer up.Close()
	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	for _, tc := range []struct {
		upstreams map[string]string
		status    int
		services  map[string]string
	}{
		{map[string]string{"planner": up.URL}, fiber.StatusOK, map[string]string{"planner": "up"}},
		{map[string]string{"planner": up.URL, "archive": downURL}, fiber.StatusServiceUnavailable,
			map[string]string{"planner": "up", "archive": "down"}},
	} {
		app := fiber.New()
		app.Get("/ready", ReadinessProbe(tc.upstreams))
		resp, err := app.Test(httptest.NewRequest("GET", "/ready", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("status = %d, want %d", resp.StatusCode, tc.status)
		}
		var got struct {
			Services map[string]string `json:"services"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.services, got.Services); diff != "" {
			t.Errorf("services (-want +got):\n%s", diff)
		}
	}
}

func TestSwaggerSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	app.Get("/spec", SwaggerSpec(path))
	app.Get("/missing", SwaggerSpec(path+".nope"))

	resp, err := app.Test(httptest.NewRequest("GET", "/spec", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || !strings.HasPrefix(string(body), "openapi:") {
		t.Fatalf("spec: %d %q", resp.StatusCode, body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("missing spec status = %d", resp.StatusCode)
	}
}
