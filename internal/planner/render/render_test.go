package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"shaft-planner/internal/planner/annotate"
	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/plan"
	"shaft-planner/internal/planner/policy"
	"shaft-planner/internal/planner/section"
)

func ptr[T any](v T) *T { return &v }

func planLayout(t *testing.T, params ...lift.Params) *plan.Layout {
	t.Helper()
	pol := policy.Default()
	var bank []*lift.Config
	for _, p := range params {
		c, err := lift.New(p, pol)
		if err != nil {
			t.Fatalf("lift.New: %v", err)
		}
		bank = append(bank, c)
	}
	l, err := plan.Compute(plan.Arrangement{Banks: [][]*lift.Config{bank}}, pol)
	if err != nil {
		t.Fatalf("plan.Compute: %v", err)
	}
	return l
}

func planScene(t *testing.T, opts Options, params ...lift.Params) *Scene {
	t.Helper()
	l := planLayout(t, params...)
	return PlanScene(l, annotate.Plan(l, policy.Default()), opts)
}

func rectsSized(s *Scene, w, h float64) []models.Rect {
	var out []models.Rect
	for _, c := range s.Commands {
		if c.Kind == CmdRect && c.Rect.W == w && c.Rect.H == h {
			out = append(out, c.Rect)
		}
	}
	return out
}

func sectionLayout(t *testing.T, lp lift.Params) (*section.Layout, *annotate.Set) {
	t.Helper()
	pol := policy.Default()
	l, err := lift.New(lp, pol)
	if err != nil {
		t.Fatal(err)
	}
	c, err := section.New(section.Params{}, l, pol)
	if err != nil {
		t.Fatal(err)
	}
	s := section.Compute(l, c, pol)
	return s, annotate.Section(s, pol)
}

func TestPlanSceneLabels(t *testing.T) {
	s := planScene(t, Options{Display: DefaultDisplay(), Subtitle: "Block A"},
		lift.Params{Capacity: ptr(1000)})

	texts := s.Texts()
	for _, want := range []string{"Shaft Width 2950", "1000 KG", "LIFT 1", "Total Width 3350"} {
		if !slices.Contains(texts, want) {
			t.Errorf("missing %q in %q", want, texts)
		}
	}
	// title block closes the drawing
	if diff := cmp.Diff([]string{DefaultPlanTitle, "Block A"}, texts[len(texts)-2:]); diff != "" {
		t.Fatalf("title block (-want +got):\n%s", diff)
	}
}

func TestPlanSceneDisplayFlags(t *testing.T) {
	d := DefaultDisplay()
	d.Dimensions = false
	d.Capacity = false
	d.LiftLabels = false
	s := planScene(t, Options{Display: d, Title: "PLAN"}, lift.Params{Capacity: ptr(1000)})

	if diff := cmp.Diff([]string{"PLAN"}, s.Texts()); diff != "" {
		t.Fatalf("texts (-want +got):\n%s", diff)
	}
}

func TestFireLiftLabel(t *testing.T) {
	s := planScene(t, Options{Display: DefaultDisplay()},
		lift.Params{LiftType: lift.Fire, FinishedCarWidth: 1400, FinishedCarDepth: 2400},
		lift.Params{})

	texts := s.Texts()
	for _, want := range []string{"FIRE LIFT 1", "LIFT 2"} {
		if !slices.Contains(texts, want) {
			t.Errorf("missing %q in %q", want, texts)
		}
	}
}

func TestSceneBoundsCoverDrawing(t *testing.T) {
	s := planScene(t, Options{Display: DefaultDisplay()}, lift.Params{})

	for _, c := range s.Commands {
		var pts []models.Point
		switch c.Kind {
		case CmdRect:
			pts = []models.Point{{X: c.Rect.MinX(), Y: c.Rect.MinY()}, {X: c.Rect.MaxX(), Y: c.Rect.MaxY()}}
		default:
			pts = c.Points
		}
		for _, p := range pts {
			if p.X < s.Bounds.MinX() || p.X > s.Bounds.MaxX() || p.Y < s.Bounds.MinY() || p.Y > s.Bounds.MaxY() {
				t.Fatalf("%s at %+v outside bounds %+v", c.Kind, p, s.Bounds)
			}
		}
	}
}

func TestHatchStaysInsideRect(t *testing.T) {
	r := models.Rect{X: 100, Y: -50, W: 300, H: 700}
	for _, slope := range []float64{1, -1} {
		var s Scene
		hatch(&s, r, 60, slope, Style{})
		if len(s.Commands) == 0 {
			t.Fatalf("slope %v: no hatch lines", slope)
		}
		const eps = 1e-9
		for _, c := range s.Commands {
			for _, p := range c.Points {
				if p.X < r.MinX()-eps || p.X > r.MaxX()+eps || p.Y < r.MinY()-eps || p.Y > r.MaxY()+eps {
					t.Fatalf("slope %v: point %+v outside %+v", slope, p, r)
				}
			}
		}
	}
}

func TestSectionSceneUsesMachineOutline(t *testing.T) {
	l, set := sectionLayout(t, lift.Params{})
	s := SectionScene(l, set, Options{Display: DefaultDisplay()}, nil)

	var machine bool
	for _, c := range s.Commands {
		if c.Kind == CmdImage {
			t.Fatal("image drawn without a machine image")
		}
		if c.Kind == CmdRect && c.Rect == l.Machine {
			machine = true
		}
	}
	if !machine {
		t.Fatal("machine outline missing")
	}
	texts := s.Texts()
	for _, want := range []string{"Pit Depth 200", "Headroom 4200", "AC Duct", DefaultSectionTitle} {
		if !slices.Contains(texts, want) {
			t.Errorf("missing %q in %q", want, texts)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	l, set := sectionLayout(t, lift.Params{MachineType: lift.MRA})
	s := SectionScene(l, set, Options{Display: DefaultDisplay(), Subtitle: "Tower <B>"}, nil)

	var buf bytes.Buffer
	if err := s.Render(SVG, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "LIFT SHAFT SECTION", "Machine Room 3000", "Tower &lt;B&gt;", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	s := planScene(t, Options{Display: DefaultDisplay()}, lift.Params{}, lift.Params{})

	var buf bytes.Buffer
	if err := s.Render(PNG, &buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 1500 || got.Y != 1500 {
		t.Fatalf("png size = %v, want 1500x1500", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "PNG": PNG, " svg ": SVG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("pdf accepted")
	}
}

func TestLoadMachineImage(t *testing.T) {
	dir := t.TempDir()
	if img := LoadMachineImage(dir, lift.MRL); img != nil {
		t.Fatal("image from empty dir")
	}

	src := planScene(t, Options{Display: DefaultDisplay(), Figure: Figure{WidthIn: 1, HeightIn: 1, DPI: 40}}, lift.Params{})
	var buf bytes.Buffer
	if err := src.Render(PNG, &buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mra_machine.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	img := LoadMachineImage(dir, lift.MRA)
	if img == nil {
		t.Fatal("mra image not loaded")
	}
	if got := img.Bounds().Size(); got.X != 40 || got.Y != 40 {
		t.Fatalf("image size = %v", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "mrl_machine.jpg"), []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if img := LoadMachineImage(dir, lift.MRL); img != nil {
		t.Fatal("broken image decoded")
	}
}

func TestPlanGuideRails(t *testing.T) {
	l := planLayout(t, lift.Params{})
	u := l.Lifts()[0].UnfinishedCar

	s := PlanScene(l, nil, Options{Display: DefaultDisplay()})
	boxes := rectsSized(s, 30, 300)
	if len(boxes) != 2 {
		t.Fatalf("guide rail boxes = %+v", boxes)
	}
	if boxes[0].MaxX() != u.MinX() || boxes[1].MinX() != u.MaxX() {
		t.Fatalf("boxes %+v not on the car sides %v..%v", boxes, u.MinX(), u.MaxX())
	}
	if boxes[0].Center().Y != u.Center().Y {
		t.Fatalf("box centre %v, car centre %v", boxes[0].Center().Y, u.Center().Y)
	}
	stems, bars := rectsSized(s, 38, 25), rectsSized(s, 25, 75)
	if len(stems) != 2 || len(bars) != 2 {
		t.Fatalf("stems %+v, bars %+v", stems, bars)
	}
	if stems[0].MaxX() != boxes[0].MinX() || bars[0].MaxX() != stems[0].MinX() {
		t.Fatalf("left T does not point away from the car: %+v %+v", stems[0], bars[0])
	}
	if stems[1].MinX() != boxes[1].MaxX() || bars[1].MinX() != stems[1].MaxX() {
		t.Fatalf("right T does not point away from the car: %+v %+v", stems[1], bars[1])
	}

	d := DefaultDisplay()
	d.Car = false
	if got := rectsSized(PlanScene(l, nil, Options{Display: d}), 30, 300); len(got) != 0 {
		t.Fatalf("rails drawn without the car: %+v", got)
	}
}

func TestPlanDoorPanels(t *testing.T) {
	l := planLayout(t, lift.Params{})
	ll := l.Lifts()[0]

	divisions := func(s *Scene) int {
		n := 0
		for _, c := range s.Commands {
			if c.Kind != CmdLine {
				continue
			}
			a, b := c.Points[0], c.Points[1]
			if a.X == ll.DoorCenterX && b.X == ll.DoorCenterX && a.Y == ll.Opening.MinY() && b.Y == ll.Opening.MaxY() {
				n++
			}
		}
		return n
	}

	s := PlanScene(l, nil, Options{Display: DefaultDisplay()})
	if n := divisions(s); n != 1 {
		t.Fatalf("opening divisions = %d, want 1", n)
	}
	// two leaves in each of the landing and car doors
	if leaves := rectsSized(s, 550, 75); len(leaves) != 4 {
		t.Fatalf("door leaves = %+v", leaves)
	}

	d := DefaultDisplay()
	d.DoorPanels = false
	if n := divisions(PlanScene(l, nil, Options{Display: d})); n != 0 {
		t.Fatalf("divisions drawn with door_panels off: %d", n)
	}

	d = DefaultDisplay()
	d.Doors = false
	s = PlanScene(l, nil, Options{Display: d})
	if leaves := rectsSized(s, 550, 75); len(leaves) != 0 {
		t.Fatalf("leaves drawn without doors: %+v", leaves)
	}
	if n := divisions(s); n != 1 {
		t.Fatalf("divisions follow door_panels only, got %d", n)
	}
}

func TestPlanAccessibilitySymbol(t *testing.T) {
	l := planLayout(t, lift.Params{}, lift.Params{})
	pal := DefaultPalette()

	symbols := func(s *Scene) []Command {
		var out []Command
		for _, c := range s.Commands {
			if c.Kind == CmdPolyline && c.Style.Stroke == pal.Accessibility {
				out = append(out, c)
			}
		}
		return out
	}

	got := symbols(PlanScene(l, nil, Options{Display: DefaultDisplay()}))
	if len(got) != 3*2 {
		t.Fatalf("accessibility strokes = %d, want 6", len(got))
	}
	car := l.Lifts()[0].FinishedCar
	for _, c := range got[:3] {
		for _, p := range c.Points {
			if p.X < car.MinX() || p.X > car.MaxX() || p.Y < car.MinY() || p.Y > car.Center().Y {
				t.Fatalf("symbol point %+v outside the front half of %+v", p, car)
			}
		}
	}

	d := DefaultDisplay()
	d.Accessibility = false
	if got := symbols(PlanScene(l, nil, Options{Display: d})); len(got) != 0 {
		t.Fatalf("symbol drawn with accessibility off: %d strokes", len(got))
	}
}
