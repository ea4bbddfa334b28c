package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-cmp/cmp"

	"shaft-planner/internal/planner/drawing"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	h := NewDrawingHandler(drawing.NewService(nil, t.TempDir()))
	app := fiber.New()
	app.Post("/plan", h.Plan)
	app.Post("/section", h.Section)
	app.Post("/validate", h.Validate)
	app.Get("/samples", h.ListSamples)
	app.Get("/samples/:name", h.GetSample)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestPlanSVG(t *testing.T) {
	resp, body := do(t, newApp(t), "POST", "/plan?format=svg", `{"bank1":[{"capacity":1000},{}],"common_shaft":true}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(string(body), "LIFT SHAFT PLAN") {
		t.Fatal("title missing from svg")
	}
}

func TestPlanJSON(t *testing.T) {
	resp, body := do(t, newApp(t), "POST", "/plan?format=json", `{"bank1":[{}]}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct {
		Layout struct {
			TotalWidth float64 `json:"total_width"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Layout.TotalWidth != 2950+2*200 {
		t.Fatalf("total width = %v", got.Layout.TotalWidth)
	}
}

func TestPlanRejectsInvalidLift(t *testing.T) {
	resp, body := do(t, newApp(t), "POST", "/plan", `{"bank1":[{"cw_bracket_width":500}]}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct {
		Error    string   `json:"error"`
		Problems []string `json:"problems"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	want := []string{"CW Bracket Width (500mm) is below minimum (625mm)."}
	if diff := cmp.Diff(want, got.Problems); diff != "" {
		t.Fatalf("problems (-want +got):\n%s", diff)
	}
}

func TestBadRequests(t *testing.T) {
	app := newApp(t)
	for _, tc := range []struct{ target, body string }{
		{"/plan", ""},
		{"/plan", "{"},
		{"/section", "[1,2]"},
		{"/plan?format=pdf", `{"bank1":[{}]}`},
		{"/validate", `{"kind":"elevation"}`},
	} {
		resp, body := do(t, app, "POST", tc.target, tc.body)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("POST %s %q: status = %d: %s", tc.target, tc.body, resp.StatusCode, body)
		}
	}
}

func TestSectionProblems(t *testing.T) {
	resp, body := do(t, newApp(t), "POST", "/section?format=json", `{"section":{"travel_height":1000,"floor_height":3200}}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "Travel Height (1000mm) is less than one Floor Height") {
		t.Fatalf("body = %s", body)
	}
}

func TestValidate(t *testing.T) {
	resp, body := do(t, newApp(t), "POST", "/validate", `{"kind":"section","section":{"lift":{"machine_type":"mra"}}}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct {
		Valid   bool            `json:"valid"`
		Summary drawing.Summary `json:"summary"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Valid || got.Summary.Kind != drawing.KindSection || got.Summary.Section == nil {
		t.Fatalf("got %+v", got)
	}
}

func TestSamples(t *testing.T) {
	app := newApp(t)
	resp, body := do(t, app, "GET", "/samples", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var list []sampleEntry
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) == 0 {
		t.Fatal("empty catalogue")
	}

	resp, body = do(t, app, "GET", "/samples/"+list[0].Name+"?format=svg", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "<svg") {
		t.Fatalf("sample render: status %d", resp.StatusCode)
	}

	resp, _ = do(t, app, "GET", "/samples/no_such_sample", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("missing sample status = %d", resp.StatusCode)
	}
}
