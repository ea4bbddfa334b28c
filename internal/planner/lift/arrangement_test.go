package lift

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetermineSeparatorType(t *testing.T) {
	passenger := mustNew(t, Params{})
	fire := mustNew(t, Params{LiftType: Fire})

	cases := []struct {
		name   string
		lifts  []*Config
		common bool
		want   SeparatorType
	}{
		{"separate shafts", []*Config{passenger, passenger}, false, RCCWall},
		{"common shaft", []*Config{passenger, passenger}, true, SteelBeam},
		{"common shaft with fire lift", []*Config{fire, passenger}, true, RCCWall},
		{"separate shafts with fire lift", []*Config{fire, passenger}, false, RCCWall},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetermineSeparatorType(tc.lifts, tc.common); got != tc.want {
				t.Fatalf("DetermineSeparatorType = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestValidateFireLiftPositions(t *testing.T) {
	passenger := mustNew(t, Params{})
	fire := mustNew(t, Params{LiftType: Fire})

	if err := ValidateFireLiftPositions([]*Config{fire, passenger, passenger}); err != nil {
		t.Fatalf("fire lift first rejected: %v", err)
	}

	err := ValidateFireLiftPositions([]*Config{passenger, fire, fire})
	if !errors.Is(err, ErrInvalidArrangement) {
		t.Fatalf("misplaced fire lifts accepted: %v", err)
	}
	want := []string{
		"Fire lift at position 1 is invalid. Fire lifts must be at position 0 (first position).",
		"Fire lift at position 2 is invalid. Fire lifts must be at position 0 (first position).",
	}
	if diff := cmp.Diff(want, Problems(err)); diff != "" {
		t.Fatalf("problems (-want +got):\n%s", diff)
	}
}

func TestNewBankLimits(t *testing.T) {
	passenger := mustNew(t, Params{})
	opts := BankOptions{Number: 1, WallThickness: 200}

	five := []*Config{passenger, passenger, passenger, passenger, passenger}
	_, err := NewBank(five, opts, nil)
	if diff := cmp.Diff([]string{"Max 4 lifts per bank (Bank 1 has 5)."}, Problems(err)); diff != "" {
		t.Fatalf("problems (-want +got):\n%s", diff)
	}

	_, err = NewBank(nil, opts, nil)
	if !errors.Is(err, ErrInvalidArrangement) {
		t.Fatalf("empty bank accepted: %v", err)
	}

	if _, err := NewBank(five[:4], opts, nil); err != nil {
		t.Fatalf("four lifts rejected: %v", err)
	}
}

func TestBankGeometry(t *testing.T) {
	a := mustNew(t, Params{})                        // 2950 x 2300
	b := mustNew(t, Params{ShaftDepth: ptr(2600.0)}) // 2950 x 2600

	steel, err := NewBank([]*Config{a, b}, BankOptions{Number: 1, CommonShaft: true, WallThickness: 200}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if steel.Separator() != SteelBeam || steel.SeparatorThickness() != 150 {
		t.Fatalf("separator = %s/%v, want steel beam 150", steel.Separator(), steel.SeparatorThickness())
	}
	if got := steel.Width(); got != 200+2950+150+2950+200 {
		t.Fatalf("width = %v", got)
	}
	if got := steel.Depth(); got != 3000 {
		t.Fatalf("depth = %v, want 3000", got)
	}
	if got := steel.ShaftLeft(1); got != 200+2950+150 {
		t.Fatalf("second shaft left = %v", got)
	}

	rcc, err := NewBank([]*Config{a, b}, BankOptions{Number: 1, WallThickness: 200, SharedWallThickness: 250}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rcc.Separator() != RCCWall || rcc.SeparatorThickness() != 250 {
		t.Fatalf("separator = %s/%v, want rcc wall 250", rcc.Separator(), rcc.SeparatorThickness())
	}

	plain, err := NewBank([]*Config{a}, BankOptions{Number: 2, WallThickness: 300}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if plain.SeparatorThickness() != 300 {
		t.Fatalf("rcc separator should default to the wall thickness, got %v", plain.SeparatorThickness())
	}
	if diff := cmp.Diff([]float64{2950, 2950}, steel.ShaftWidths()); diff != "" {
		t.Fatalf("shaft widths (-want +got):\n%s", diff)
	}
}
