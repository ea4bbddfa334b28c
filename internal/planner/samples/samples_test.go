package samples

import (
	"testing"

	"shaft-planner/internal/planner/drawing"
	"shaft-planner/internal/planner/lift"
)

func TestCatalogueValidates(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 20 {
		t.Fatalf("catalogue has %d samples", len(all))
	}

	svc := drawing.NewService(nil, "")
	for _, s := range all {
		t.Run(s.Name, func(t *testing.T) {
			if s.Description == "" {
				t.Error("missing description")
			}
			if _, err := svc.Validate(&s.Request); err != nil {
				t.Fatalf("%v\nproblems: %q", err, lift.Problems(err))
			}
		})
	}
}

func TestGet(t *testing.T) {
	s, ok, err := Get("facing_banks_4x4")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if s.Request.Kind != drawing.KindPlan || len(s.Request.Plan.Bank1) != 4 || len(s.Request.Plan.Bank2) != 4 {
		t.Fatalf("unexpected request %+v", s.Request)
	}
	if !s.Request.Plan.Display.Dimensions {
		t.Fatal("display defaults not applied")
	}

	schematic, _, _ := Get("section_mrl_schematic")
	if d := schematic.Request.Section.Display; d.Hatching || d.BreakLines || !d.Dimensions {
		t.Fatalf("schematic display = %+v", d)
	}

	if _, ok, _ := Get("nope"); ok {
		t.Fatal("unknown sample found")
	}
}
