package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"shaft-planner/internal/archive/models"
	"shaft-planner/internal/archive/repository"
	"shaft-planner/internal/archive/service"
	"shaft-planner/internal/planner/drawing"
)

func newApp(t *testing.T, middleware ...fiber.Handler) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	db, err := repository.OpenSQLite(filepath.Join(dir, "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	repo := repository.New(db)
	if err := repo.Init(context.Background(), filepath.Join("..", "..", "..", "migrations", "001_init_archive.sql")); err != nil {
		t.Fatal(err)
	}

	h := NewArchiveHandler(repo, service.NewFileStorage(filepath.Join(dir, "drawings")), drawing.NewService(nil, ""))
	app := fiber.New()
	for _, m := range middleware {
		app.Use(m)
	}
	app.Get("/health/ready", h.Ready)
	app.Post("/drawings", h.Create)
	app.Get("/drawings", h.List)
	app.Get("/drawings/:id", h.Get)
	app.Get("/drawings/:id/image", h.GetImage)
	app.Delete("/drawings/:id", h.Delete)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	// sqlite runs on wazero; the first statements are slow on a cold cache
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestDrawingLifecycle(t *testing.T) {
	app := newApp(t)

	resp, body := do(t, app, "POST", "/drawings",
		`{"name":"Tower A","format":"svg","request":{"kind":"plan","plan":{"bank1":[{},{}],"common_shaft":true}}}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var created models.Drawing
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Lifts != 2 || created.TotalWidth != 2*2950+150+2*200 {
		t.Fatalf("created = %+v", created)
	}

	resp, body = do(t, app, "GET", "/drawings", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var list []models.Drawing
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	resp, body = do(t, app, "GET", "/drawings/"+created.ID, "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), `"common_shaft":true`) {
		t.Fatalf("get: status %d body %s", resp.StatusCode, body)
	}

	resp, body = do(t, app, "GET", "/drawings/"+created.ID+"/image", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "<svg") {
		t.Fatalf("image: status %d", resp.StatusCode)
	}

	resp, _ = do(t, app, "DELETE", "/drawings/"+created.ID, "")
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, _ = do(t, app, "GET", "/drawings/"+created.ID, "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
}

func TestCreateRejects(t *testing.T) {
	app := newApp(t)
	for _, tc := range []struct {
		body   string
		status int
	}{
		{`{`, fiber.StatusBadRequest},
		{`{"format":"svg","request":{"kind":"plan","plan":{"bank1":[{}]}}}`, fiber.StatusBadRequest},
		{`{"name":"x","format":"gif","request":{"kind":"plan","plan":{"bank1":[{}]}}}`, fiber.StatusBadRequest},
		{`{"name":"x","request":{"plan":{"bank1":[{}]}}}`, fiber.StatusBadRequest},
		{`{"name":"x","request":{"kind":"plan","plan":{"bank1":[{"cw_bracket_width":500}]}}}`, fiber.StatusUnprocessableEntity},
	} {
		resp, body := do(t, app, "POST", "/drawings", tc.body)
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status = %d, want %d: %s", tc.body, resp.StatusCode, tc.status, body)
		}
	}

	resp, body := do(t, app, "GET", "/drawings", "")
	if resp.StatusCode != fiber.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("rejected drawings were stored: %s", body)
	}
}

func TestReadyAndMissing(t *testing.T) {
	app := newApp(t)
	if resp, _ := do(t, app, "GET", "/health/ready", ""); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("ready status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, app, "DELETE", "/drawings/nope", ""); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("delete missing status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, app, "GET", "/drawings/nope/image", ""); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("image missing status = %d", resp.StatusCode)
	}
}

func TestCancelledRequestSkipsDatabase(t *testing.T) {
	app := newApp(t, func(c fiber.Ctx) error {
		ctx, cancel := context.WithCancel(c.Context())
		cancel()
		c.SetContext(ctx)
		return c.Next()
	})

	for _, tc := range []struct {
		method, target string
		status         int
	}{
		{"GET", "/health/ready", fiber.StatusServiceUnavailable},
		{"GET", "/drawings", fiber.StatusInternalServerError},
		{"GET", "/drawings/nope", fiber.StatusInternalServerError},
		{"DELETE", "/drawings/nope", fiber.StatusInternalServerError},
	} {
		resp, body := do(t, app, tc.method, tc.target, "")
		if resp.StatusCode != tc.status {
			t.Errorf("%s %s: status = %d, want %d: %s", tc.method, tc.target, resp.StatusCode, tc.status, body)
		}
	}

	resp, body := do(t, app, "POST", "/drawings",
		`{"name":"Tower A","format":"svg","request":{"kind":"plan","plan":{"bank1":[{}]}}}`)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
}
