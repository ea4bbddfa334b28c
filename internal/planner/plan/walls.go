package plan

import (
	"math"

	"shaft-planner/internal/planner/lift"
)

// ============================================================
// Walls & Separators
// ============================================================

// buildWalls строит стены группы: наружные боковые, передние вокруг проёмов,
// задние по глубине каждой шахты, разделители и Г-образные доборы.
func buildWalls(b *lift.Bank, f Frame, openings [][2]float64) ([]Wall, []Separator) {
	wt := b.WallThickness()
	swt := b.SeparatorThickness()
	n := b.Len()

	var walls []Wall
	add := func(kind WallKind, bx box) {
		if !bx.empty() {
			walls = append(walls, Wall{Kind: kind, Rect: f.box(bx)})
		}
	}

	first := b.Lift(0).ShaftDepth()
	add(WallOuter, box{0, 0, wt, first + 2*wt})

	for i := 0; i < n; i++ {
		l := b.Lift(i)
		sl, sw, sd := b.ShaftLeft(i), l.ShaftWidth(), l.ShaftDepth()
		add(WallFront, box{sl, 0, openings[i][0], wt})
		add(WallFront, box{openings[i][1], 0, sl + sw, wt})
		add(WallBack, box{sl, wt + sd, sl + sw, 2*wt + sd})
	}

	var seps []Separator
	for i := 1; i < n; i++ {
		prev, curr := b.Lift(i-1), b.Lift(i)
		xs := b.ShaftLeft(i-1) + prev.ShaftWidth()
		pd, cd := prev.ShaftDepth(), curr.ShaftDepth()
		run := math.Min(pd, cd)

		sep := Separator{Index: i, Type: b.Separator(), Thickness: swt, Length: run}
		if b.Separator() == lift.SteelBeam {
			beam := box{xs, wt, xs + swt, wt + run}
			sep.Rect = f.box(beam)
			add(WallSeparator, box{xs, 0, xs + swt, wt})
			add(WallSeparator, box{xs, wt + run, xs + swt, run + 2*wt})
		} else {
			wall := box{xs, 0, xs + swt, run + 2*wt}
			sep.Rect = f.box(wall)
			add(WallSeparator, wall)
		}

		// Г-образный добор закрывает выступающую часть более глубокой шахты.
		switch {
		case pd > cd:
			add(WallReturn, box{xs, run + 2*wt, xs + wt, pd + 2*wt})
			sep.ReturnLength = pd - cd
		case cd > pd:
			add(WallReturn, box{xs + swt - wt, run + 2*wt, xs + swt, cd + 2*wt})
			sep.ReturnLength = cd - pd
		}
		seps = append(seps, sep)
	}

	last := b.Lift(n - 1)
	xe := b.ShaftLeft(n-1) + last.ShaftWidth()
	add(WallOuter, box{xe, 0, xe + wt, last.ShaftDepth() + 2*wt})

	return walls, seps
}
