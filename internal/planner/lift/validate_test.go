package lift

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestNonFiniteValuesRejected(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   Params
		want []string
	}{
		{
			name: "nan car width",
			in:   Params{FinishedCarWidth: math.NaN()},
			want: []string{"Finished Car Width must be a finite number, got NaN."},
		},
		{
			name: "infinite shaft width",
			in:   Params{ShaftWidth: ptr(math.Inf(1))},
			want: []string{"Shaft Width must be a finite number, got +Inf."},
		},
		{
			name: "nan shaft overrides",
			in:   Params{ShaftWidth: ptr(math.NaN()), ShaftDepth: ptr(math.NaN())},
			want: []string{
				"Shaft Width must be a finite number, got NaN.",
				"Shaft Depth must be a finite number, got NaN.",
			},
		},
		{
			name: "infinite bracket",
			in:   Params{MachineType: MRA, MRACWBracketDepth: math.Inf(1)},
			want: []string{"CW Bracket Depth must be a finite number, got +Inf."},
		},
		{
			name: "negative infinite telescopic extension",
			in:   Params{LiftType: Fire, DoorOpening: TelescopicOpening, TelescopicLeftExtension: ptr(math.Inf(-1))},
			want: []string{"Telescopic Left Extension must be a finite number, got -Inf."},
		},
		{
			name: "infinite door extension",
			in:   Params{DoorExtension: math.Inf(1)},
			want: []string{"Door Extension must be a finite number, got +Inf."},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.in, nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if diff := cmp.Diff(tc.want, Problems(err)); diff != "" {
				t.Fatalf("problems (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNonFiniteFromYAML(t *testing.T) {
	var p Params
	if err := yaml.Unmarshal([]byte("finished_car_depth: .nan\nshaft_width: .inf\n"), &p); err != nil {
		t.Fatal(err)
	}
	_, err := New(p, nil)
	want := []string{
		"Finished Car Depth must be a finite number, got NaN.",
		"Shaft Width must be a finite number, got +Inf.",
	}
	if diff := cmp.Diff(want, Problems(err)); diff != "" {
		t.Fatalf("problems (-want +got):\n%s", diff)
	}
}

func TestExplicitZeroIsNotDefaulted(t *testing.T) {
	decoders := map[string]func(string, *Params) error{
		"json": func(s string, p *Params) error { return json.Unmarshal([]byte(s), p) },
		"yaml": func(s string, p *Params) error { return yaml.Unmarshal([]byte(s), p) },
	}
	docs := map[string][2]string{
		"json": {`{"wall_thickness": 0, "cw_bracket_width": 0.0}`, `{"door_extension": 0, "wall_thickness": null}`},
		"yaml": {"wall_thickness: 0\ncw_bracket_width: 0.0\n", "door_extension: 0\nwall_thickness:\n"},
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			var bad Params
			if err := decode(docs[name][0], &bad); err != nil {
				t.Fatal(err)
			}
			_, err := New(bad, nil)
			want := []string{
				"Wall Thickness must be positive, got 0mm.",
				"CW Bracket Width (0mm) is below minimum (625mm).",
			}
			if diff := cmp.Diff(want, Problems(err)); diff != "" {
				t.Fatalf("problems (-want +got):\n%s", diff)
			}

			var ok Params
			if err := decode(docs[name][1], &ok); err != nil {
				t.Fatal(err)
			}
			c := mustNew(t, ok)
			if got := c.Params(); got.DoorExtension != 0 || got.WallThickness != 200 {
				t.Fatalf("door extension %v / wall %v, want 0 / 200", got.DoorExtension, got.WallThickness)
			}
		})
	}
}

func TestParamsJSONRoundTrip(t *testing.T) {
	var in Params
	if err := json.Unmarshal([]byte(`{"door_extension":0,"finished_car_width":1900}`), &in); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(data); !strings.Contains(s, `"door_extension":0`) || strings.Contains(s, "wall_thickness") {
		t.Fatalf("encoded params = %s", s)
	}

	var out Params
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	c := mustNew(t, out)
	if c.Params().DoorExtension != 0 || c.WallThickness() != 200 || c.Params().FinishedCarWidth != 1900 {
		t.Fatalf("round trip changed params: %+v", c.Params())
	}
}

func TestFireLiftDoorWidth(t *testing.T) {
	c := mustNew(t, Params{LiftType: Fire})
	if c.DoorWidth() != 1200 {
		t.Fatalf("fire door width = %v, want 1200", c.DoorWidth())
	}

	_, err := New(Params{LiftType: Fire, DoorWidth: 1100}, nil)
	if diff := cmp.Diff([]string{"Fire lift Door Width must be 1200mm, got 1100mm."}, Problems(err)); diff != "" {
		t.Fatalf("problems (-want +got):\n%s", diff)
	}

	var zero Params
	if err := json.Unmarshal([]byte(`{"lift_type":"fire","door_width":0}`), &zero); err != nil {
		t.Fatal(err)
	}
	_, err = New(zero, nil)
	want := []string{
		"Door Width must be positive, got 0mm.",
		"Fire lift Door Width must be 1200mm, got 0mm.",
	}
	if diff := cmp.Diff(want, Problems(err)); diff != "" {
		t.Fatalf("problems (-want +got):\n%s", diff)
	}
}
