package annotate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/plan"
	"shaft-planner/internal/planner/policy"
	"shaft-planner/internal/planner/section"
)

func newLift(t *testing.T, p lift.Params) *lift.Config {
	t.Helper()
	l, err := lift.New(p, policy.Default())
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func texts(ds []Dimension) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Text)
	}
	return out
}

func levels(ds []Dimension) []int {
	out := make([]int, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Level)
	}
	return out
}

// lineOffset is the distance of the dimension line from the measured geometry.
func lineOffset(d Dimension) float64 {
	if d.Vertical {
		return d.From.X - d.Line.A.X
	}
	return d.Line.A.Y - d.From.Y
}

func TestPlanStackingOrder(t *testing.T) {
	l, err := plan.Compute(plan.Arrangement{Banks: [][]*lift.Config{{newLift(t, lift.Params{})}}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	set := Plan(l, nil)

	back := set.On(EdgeBack)
	wantBack := []string{"Shaft Width 2950", "625", "375", "Finished Car Width 1900", "Unfinished Car Width 1950"}
	if diff := cmp.Diff(wantBack, texts(back)); diff != "" {
		t.Fatalf("back edge (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 2, 3, 4}, levels(back)); diff != "" {
		t.Fatalf("back levels (-want +got):\n%s", diff)
	}

	front := set.On(EdgeFront)
	wantFront := []string{"Door Width 1100\nHeight 2100", "Structural Opening 1300\nHeight 2200", "Total Width 3350"}
	if diff := cmp.Diff(wantFront, texts(front)); diff != "" {
		t.Fatalf("front edge (-want +got):\n%s", diff)
	}

	left := set.On(EdgeLeft)
	wantLeft := []string{"Shaft Depth 2300", "Finished Car Depth 1600", "Unfinished Car Depth 1625"}
	if diff := cmp.Diff(wantLeft, texts(left)); diff != "" {
		t.Fatalf("left edge (-want +got):\n%s", diff)
	}

	ann := policy.Default().Annotation
	for _, d := range back {
		if got := lineOffset(d); got != ann.Offset(d.Level) {
			t.Errorf("back %q offset %v, want %v", d.Text, got, ann.Offset(d.Level))
		}
	}
	for _, d := range front {
		if got := -lineOffset(d); got != ann.Offset(d.Level) {
			t.Errorf("front %q offset %v, want %v", d.Text, got, ann.Offset(d.Level))
		}
	}
	for _, d := range left {
		if got := lineOffset(d); got != ann.Offset(d.Level) {
			t.Errorf("left %q offset %v, want %v", d.Text, got, ann.Offset(d.Level))
		}
	}
	if len(set.On(EdgeRight)) != 0 {
		t.Fatal("single lift should not repeat depths on the right")
	}
}

func TestPlanSeparatorAndRightEdge(t *testing.T) {
	a := newLift(t, lift.Params{})
	deep := newLift(t, lift.Params{ShaftDepth: func() *float64 { v := 2600.0; return &v }()})
	l, err := plan.Compute(plan.Arrangement{Banks: [][]*lift.Config{{a, deep}}, CommonShaft: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	set := Plan(l, nil)

	var sep []string
	for _, d := range set.On(EdgeBack) {
		if d.Level == 4 && d.Length() == 150 {
			sep = append(sep, d.Text)
		}
	}
	if diff := cmp.Diff([]string{"150"}, sep); diff != "" {
		t.Fatalf("separator dimension (-want +got):\n%s", diff)
	}
	if len(set.Notes) != 1 || set.Notes[0].Text != "Steel\nBeam" {
		t.Fatalf("notes = %+v", set.Notes)
	}

	right := set.On(EdgeRight)
	if len(right) != 3 || right[0].Text != "Shaft Depth 2600" {
		t.Fatalf("right edge = %v", texts(right))
	}
}

func TestPlanFacingDimensions(t *testing.T) {
	cfg := newLift(t, lift.Params{})
	l, err := plan.Compute(plan.Arrangement{Banks: [][]*lift.Config{{cfg}, {cfg}}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	set := Plan(l, nil)

	lobby := set.On(EdgeLobby)
	if len(lobby) != 1 || lobby[0].Line.A.Y != l.Lobby.Center().Y {
		t.Fatalf("lobby dimension = %+v", lobby)
	}
	for _, d := range set.On(EdgeFront) {
		if d.Level == 3 {
			t.Fatalf("facing plan has a front total width: %q", d.Text)
		}
		// front dimensions of both banks sit inside the lobby
		if y := d.Line.A.Y; y < l.Lobby.MinY() || y > l.Lobby.MaxY() {
			t.Fatalf("front dimension %q at y=%v outside the lobby", d.Text, y)
		}
	}

	var lobbyDepth []Dimension
	for _, d := range set.On(EdgeLeft) {
		if d.Level == 4 {
			lobbyDepth = append(lobbyDepth, d)
		}
	}
	if diff := cmp.Diff([]string{"Lobby Depth 4000"}, texts(lobbyDepth)); diff != "" {
		t.Fatalf("lobby depth (-want +got):\n%s", diff)
	}

	// bank 2 is flipped: its back dimensions go down, away from the lobby
	for _, d := range set.On(EdgeBack) {
		if d.From.Y == 0 && d.Line.A.Y >= 0 {
			t.Fatalf("bank 2 back dimension %q drawn inwards", d.Text)
		}
	}
}

func TestSectionDimensions(t *testing.T) {
	l := newLift(t, lift.Params{MachineType: lift.MRA})
	c, err := section.New(section.Params{}, l, nil)
	if err != nil {
		t.Fatal(err)
	}
	set := Section(section.Compute(l, c, nil), nil)

	want := []string{
		"Door Opening 2100",
		"Structural Opening 2200",
		"Pit Depth 200",
		"Travel 30000",
		"Headroom 4200",
		"Machine Room 3000",
		"Total Shaft Height 34400",
	}
	left := set.On(EdgeLeft)
	if diff := cmp.Diff(want, texts(left)); diff != "" {
		t.Fatalf("left edge (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 3, 3, 3, 4}, levels(left)); diff != "" {
		t.Fatalf("left levels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"200", "Shaft Depth 2455", "200"}, texts(set.On(EdgeBottom))); diff != "" {
		t.Fatalf("bottom edge (-want +got):\n%s", diff)
	}

	var notes []string
	for _, n := range set.Notes {
		notes = append(notes, n.Text)
	}
	if diff := cmp.Diff([]string{"Bottom most\nserving level", "Top Landing\nF.F.L."}, notes); diff != "" {
		t.Fatalf("notes (-want +got):\n%s", diff)
	}
}
