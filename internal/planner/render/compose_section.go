package render

import (
	"image"

	"shaft-planner/internal/planner/annotate"
	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/section"
)

// ============================================================
// Section Scene
// ============================================================

// SectionScene собирает разрез. machine это картинка лебёдки; nil рисуется контуром.
func SectionScene(l *section.Layout, set *annotate.Set, opts Options, machine image.Image) *Scene {
	pal := opts.palette()
	d := opts.Display
	s := &Scene{Figure: opts.figure(SectionFigure)}

	s.Rect(l.Interior, Style{Fill: pal.Interior})
	if !l.MachineRoom.Empty() {
		s.Rect(l.MachineRoom, Style{Fill: pal.Interior})
	}

	if d.Pit {
		pit := models.RectFromCorners(l.Interior.MinX(), l.PitFloor, l.Interior.MaxX(), l.Ground)
		s.Rect(pit, Style{Stroke: pal.UnfinishedCarEdge, StrokeWidth: dimensionWidth, Dash: dashed})
		s.Text(pit.Center(), "PIT", TextStyle{Size: noteTextSize, Color: pal.Dimension})
	}

	if d.Car {
		s.Rect(l.Car, Style{Fill: pal.UnfinishedCar, Stroke: pal.UnfinishedCarEdge, StrokeWidth: carEdgeWidth})
	}

	if d.Machine {
		s.sectionMachine(l, machine, pal)
	}

	for _, w := range l.Walls {
		wall(s, w.Rect, pal, d.Hatching)
	}
	// the duct passes through the back wall
	if d.Machine && !l.Duct.Empty() {
		s.Rect(l.Duct, Style{Fill: pal.Duct, Stroke: pal.WallEdge, StrokeWidth: bracketEdgeWidth})
	}
	for _, slab := range l.LandingSlabs {
		s.Rect(slab, Style{Fill: pal.Landing, Stroke: pal.WallEdge, StrokeWidth: carEdgeWidth})
	}
	if d.Doors {
		for _, door := range l.LandingDoors {
			s.Rect(door, Style{Fill: pal.Door, Stroke: pal.WallEdge, StrokeWidth: doorEdgeWidth})
		}
	}

	if d.BreakLines && len(l.BreakLines) == 2 {
		lo, hi := l.BreakLines[0], l.BreakLines[1]
		gap := models.RectFromCorners(lo[0].X, lo[0].Y, hi[len(hi)-1].X, hi[0].Y)
		s.Rect(gap, Style{Fill: pal.WallFill})
		for _, line := range l.BreakLines {
			s.Polyline(line, Style{Stroke: pal.WallEdge, StrokeWidth: breakLineWidth})
		}
	}

	if d.Centerlines {
		cx := l.Car.Center().X
		centerline(s, models.Point{X: cx, Y: l.PitFloor}, models.Point{X: cx, Y: l.OverheadTop}, pal)
	}

	if d.Dimensions && set != nil {
		annotations(s, set, pal)
	}
	s.frame(contentBounds(l.Bounds, set, d.Dimensions), opts.title(DefaultSectionTitle), opts.Subtitle, pal)
	return s
}

func (s *Scene) sectionMachine(l *section.Layout, img image.Image, pal Palette) {
	if !l.Beam.Empty() {
		steel(s, l.Beam, pal)
	}
	if !l.Machine.Empty() {
		if img != nil {
			s.Image(img, l.Machine)
		} else {
			s.Rect(l.Machine, Style{Fill: pal.Machine, Stroke: pal.WallEdge, StrokeWidth: bracketEdgeWidth})
		}
	}
}
