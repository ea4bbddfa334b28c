package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
defaults:
  wall_thickness: 250
fire:
  min_shaft_width: 2800
separators:
  steel_beam_width: 120
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Defaults.WallThickness = 250
	want.Fire.MinShaftWidth = 2800
	want.Separators.SteelBeamWidth = 120
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("policy (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	p, err := Load(writeFile(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), p); diff != "" {
		t.Fatalf("empty file changed defaults (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	if _, err := Load(writeFile(t, "defaults:\n  wall_thicknes: 250\n")); err == nil {
		t.Fatal("misspelled key accepted")
	}
}

func TestLoadRejectsInvalidTable(t *testing.T) {
	if _, err := Load(writeFile(t, "separators:\n  max_lifts_per_bank: 0\n")); err == nil {
		t.Fatal("zero lifts per bank accepted")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Default()
	clone, err := orig.Clone()
	if err != nil {
		t.Fatal(err)
	}
	clone.Fire.CabinSizes[0].Width = 9999
	clone.Defaults.PitDepth = 1

	if orig.Fire.CabinSizes[0].Width != 1400 || orig.Defaults.PitDepth != 200 {
		t.Fatalf("clone shares state with original: %+v", orig.Fire.CabinSizes[0])
	}
}

func TestAnnotationOffset(t *testing.T) {
	a := Default().Annotation
	got := []float64{a.Offset(1), a.Offset(2), a.Offset(3), a.Offset(4), a.Offset(0)}
	want := []float64{250, 550, 850, 1150, 250}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("offsets (-want +got):\n%s", diff)
	}
}

func TestFireCabinAllowed(t *testing.T) {
	p := Default()
	if !p.FireCabinAllowed(1500, 2300) {
		t.Fatal("1500x2300 should be allowed")
	}
	if p.FireCabinAllowed(2300, 1500) {
		t.Fatal("rotated cabin should not be allowed")
	}
}
