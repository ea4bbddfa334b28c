package render

import (
	"math"
	"strings"

	"shaft-planner/internal/planner/annotate"
	"shaft-planner/internal/planner/models"
)

// ============================================================
// Shared Composition
// ============================================================

// hatch заполняет прямоугольник штриховкой под 45°: slope +1 снизу-слева вверх-вправо, -1 наоборот.
func hatch(c Canvas, r models.Rect, step, slope float64, st Style) {
	if r.Empty() || step <= 0 {
		return
	}
	if slope >= 0 {
		// y = x + k
		for k := r.MinY() - r.MaxX() + step; k < r.MaxY()-r.MinX(); k += step {
			x0 := math.Max(r.MinX(), r.MinY()-k)
			x1 := math.Min(r.MaxX(), r.MaxY()-k)
			if x1 > x0 {
				c.Line(models.Point{X: x0, Y: x0 + k}, models.Point{X: x1, Y: x1 + k}, st)
			}
		}
		return
	}
	// y = -x + k
	for k := r.MinX() + r.MinY() + step; k < r.MaxX()+r.MaxY(); k += step {
		x0 := math.Max(r.MinX(), k-r.MaxY())
		x1 := math.Min(r.MaxX(), k-r.MinY())
		if x1 > x0 {
			c.Line(models.Point{X: x0, Y: k - x0}, models.Point{X: x1, Y: k - x1}, st)
		}
	}
}

// wall draws a concrete wall piece.
func wall(c Canvas, r models.Rect, pal Palette, hatched bool) {
	c.Rect(r, Style{Fill: pal.WallFill})
	if hatched {
		hatch(c, r, hatchStep, -1, Style{Stroke: pal.Hatch, StrokeWidth: hatchWidth})
	}
	c.Rect(r, Style{Stroke: pal.WallEdge, StrokeWidth: wallEdgeWidth})
}

// steel draws a steel section with the 45° steel hatch.
func steel(c Canvas, r models.Rect, pal Palette) {
	c.Rect(r, Style{Fill: pal.SteelBeam})
	hatch(c, r, 40, 1, Style{Stroke: pal.Hatch, StrokeWidth: hatchWidth})
	c.Rect(r, Style{Stroke: pal.WallEdge, StrokeWidth: carEdgeWidth})
}

func centerline(c Canvas, a, b models.Point, pal Palette) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l*centerlineExtra, dy/l*centerlineExtra
	c.Line(models.Point{X: a.X - ux, Y: a.Y - uy}, models.Point{X: b.X + ux, Y: b.Y + uy},
		Style{Stroke: pal.Centerline, StrokeWidth: centerlineWidth, Dash: centerlineDash})
}

// annotations draws every dimension with its extension lines, then the notes.
func annotations(c Canvas, set *annotate.Set, pal Palette) {
	st := Style{Stroke: pal.Dimension, StrokeWidth: dimensionWidth}
	for _, d := range set.Dimensions {
		extension(c, d.From, d.Line.A, set.Overshoot, st)
		extension(c, d.To, d.Line.B, set.Overshoot, st)
		c.Arrow(d.Line.A, d.Line.B, st)

		ts := TextStyle{Size: dimensionTextSize, Color: pal.Dimension}
		lines := float64(strings.Count(d.Text, "\n") + 1)
		raise := lines*dimensionTextSize*0.6 + 1.5
		// keep the label on the outer side of the line
		if d.Vertical {
			ts.Rotation = 90
			if d.Line.A.X > d.From.X {
				raise = -raise
			}
		} else if d.Line.A.Y < d.From.Y {
			raise = -raise
		}
		ts.Raise = raise
		mid := models.Point{X: (d.Line.A.X + d.Line.B.X) / 2, Y: (d.Line.A.Y + d.Line.B.Y) / 2}
		c.Text(mid, d.Text, ts)
	}
	for _, n := range set.Notes {
		ts := TextStyle{Size: noteTextSize, Color: pal.Dimension}
		switch n.Anchor {
		case annotate.AnchorLeft:
			ts.Align = AlignLeft
		case annotate.AnchorRight:
			ts.Align = AlignRight
		}
		c.Text(n.At, n.Text, ts)
	}
}

func extension(c Canvas, from, to models.Point, overshoot float64, st Style) {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	c.Line(from, models.Point{X: to.X + dx/l*overshoot, Y: to.Y + dy/l*overshoot}, st)
}

// frame places the title block under the content and sets the scene bounds.
func (s *Scene) frame(content models.Rect, title, subtitle string, pal Palette) {
	var e models.Extent
	e.AddRect(content)

	cx := content.Center().X
	at := models.Point{X: cx, Y: content.MinY() - titleGap}
	s.Text(at, title, TextStyle{Size: titleTextSize, Color: pal.Title, Bold: true})
	e.AddPoint(at)
	if subtitle != "" {
		sub := models.Point{X: cx, Y: at.Y - subtitleGap}
		s.Text(sub, subtitle, TextStyle{Size: subtitleTextSize, Color: pal.Title})
		e.AddPoint(sub)
	}

	b, _ := e.Rect()
	s.Bounds = b.Expand(sceneMargin, sceneMargin)
}

// contentBounds covers the geometry plus, when shown, the annotation lines.
func contentBounds(geometry models.Rect, set *annotate.Set, withDims bool) models.Rect {
	var e models.Extent
	e.AddRect(geometry)
	if withDims && set != nil {
		if r, ok := set.Bounds(); ok {
			e.AddRect(r)
		}
		for _, n := range set.Notes {
			// left-aligned notes run to the right of their anchor
			if n.Anchor == annotate.AnchorLeft {
				e.AddPoint(models.Point{X: n.At.X + noteRun, Y: n.At.Y})
			}
		}
	}
	r, _ := e.Rect()
	return r
}
