package render

import (
	"fmt"
	"math"

	"shaft-planner/internal/planner/annotate"
	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/plan"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Plan Scene
// ============================================================

// PlanScene собирает чертёж плана: интерьер шахт, кронштейны, кабины с направляющими,
// стены, разделители, двери, осевые, размеры и штамп. set может быть nil.
func PlanScene(l *plan.Layout, set *annotate.Set, opts Options) *Scene {
	pal := opts.palette()
	d := opts.Display
	s := &Scene{Figure: opts.figure(PlanFigure)}

	for _, ll := range l.Lifts() {
		s.Rect(ll.Shaft, Style{Fill: pal.Interior})
	}

	n := 0
	for _, b := range l.Banks {
		for _, ll := range b.Lifts {
			n++
			if d.Brackets {
				s.brackets(ll, pal)
			}
			if d.Car {
				s.car(ll, b.Frame, pal)
				s.guideRails(ll, pal)
				if d.Accessibility {
					s.accessibility(ll, b.Frame, pal)
				}
			}
			s.liftLabels(ll, b.Frame, n, d, pal)
		}
	}

	for _, b := range l.Banks {
		for _, w := range b.Walls {
			wall(s, w.Rect, pal, d.Hatching)
		}
		for _, sep := range b.Separators {
			if sep.Type == lift.SteelBeam {
				steel(s, sep.Rect, pal)
			}
		}
		for _, ll := range b.Lifts {
			if d.Doors {
				s.doors(ll, pal)
			}
			if d.DoorPanels {
				s.panelDivisions(ll, pal)
			}
		}
		if d.Centerlines {
			s.planCenterlines(b, pal)
		}
	}

	if d.Dimensions && set != nil {
		annotations(s, set, pal)
	}
	s.frame(contentBounds(l.Bounds, set, d.Dimensions), opts.title(DefaultPlanTitle), opts.Subtitle, pal)
	return s
}

var bracketFill = map[plan.BracketKind]func(Palette) Style{
	plan.CWBracketZone: func(p Palette) Style {
		return Style{Fill: p.CWBracket, Stroke: p.BracketEdge, StrokeWidth: bracketEdgeWidth}
	},
	plan.CarBracketZone: func(p Palette) Style {
		return Style{Fill: p.CarBracket, Stroke: p.BracketEdge, StrokeWidth: bracketEdgeWidth}
	},
	plan.CWFrame: func(p Palette) Style {
		return Style{Stroke: p.CWFrame, StrokeWidth: 1.5}
	},
	plan.CWWeight: func(p Palette) Style {
		return Style{Fill: p.CWBox, Stroke: p.BracketEdge, StrokeWidth: bracketEdgeWidth}
	},
	plan.CarBracketBox: func(p Palette) Style {
		return Style{Fill: p.CarBracketBox, Stroke: p.BracketEdge, StrokeWidth: bracketEdgeWidth}
	},
	plan.CWSideBracket: func(p Palette) Style {
		return Style{Fill: p.CarBracketBox, Stroke: p.BracketEdge, StrokeWidth: bracketEdgeWidth}
	},
}

func (s *Scene) brackets(ll *plan.LiftLayout, pal Palette) {
	for _, br := range ll.Brackets {
		st, ok := bracketFill[br.Kind]
		if !ok {
			continue
		}
		s.Rect(br.Rect, st(pal))
	}
}

// car рисует чистовую кабину целиком и черновую тремя пунктирными сторонами, открытыми к дверям.
func (s *Scene) car(ll *plan.LiftLayout, f plan.Frame, pal Palette) {
	s.Rect(ll.FinishedCar, Style{Fill: pal.FinishedCar, Stroke: pal.FinishedCarEdge, StrokeWidth: carEdgeWidth})

	u := ll.UnfinishedCar
	front, rear := u.MinY(), u.MaxY()
	if f.Back() < 0 {
		front, rear = rear, front
	}
	s.Polyline([]models.Point{
		{X: u.MinX(), Y: front},
		{X: u.MinX(), Y: rear},
		{X: u.MaxX(), Y: rear},
		{X: u.MaxX(), Y: front},
	}, Style{Stroke: pal.UnfinishedCarEdge, StrokeWidth: carEdgeWidth, Dash: dashed})
}

func (s *Scene) liftLabels(ll *plan.LiftLayout, f plan.Frame, n int, d Display, pal Palette) {
	c := ll.FinishedCar.Center()
	if d.LiftLabels {
		label := fmt.Sprintf("LIFT %d", n)
		if ll.Config.IsFire() {
			label = fmt.Sprintf("FIRE LIFT %d", n)
		}
		at := models.Point{X: c.X, Y: c.Y + f.Back()*ll.FinishedCar.H/4}
		s.Text(at, label, TextStyle{Size: liftLabelSize, Color: pal.CapacityText})
	}
	if kg, ok := ll.Config.Capacity(); ok && d.Capacity {
		s.Text(c, fmt.Sprintf("%d KG", kg), TextStyle{Size: capacityTextSize, Color: pal.CapacityText, Bold: true})
	}
}

// doors: landing and car doors with frame lines and two leaves meeting on the
// door centreline; jambs flank the opening.
func (s *Scene) doors(ll *plan.LiftLayout, pal Palette) {
	sym := ll.Config.Policy().Symbols
	dw := ll.Config.DoorWidth()
	door := Style{Fill: pal.Door, Stroke: pal.WallEdge, StrokeWidth: doorEdgeWidth}
	frame := Style{Stroke: pal.WallEdge, StrokeWidth: doorFrameWidth}
	leaf := Style{Stroke: pal.WallEdge, StrokeWidth: doorPanelWidth}

	for _, r := range []models.Rect{ll.LandingDoor, ll.CarDoor} {
		if r.Empty() {
			continue
		}
		s.Rect(r, door)
		for _, y := range []float64{r.MinY() + sym.DoorFrameMargin, r.MaxY() - sym.DoorFrameMargin} {
			s.Line(models.Point{X: r.MinX(), Y: y}, models.Point{X: r.MaxX(), Y: y}, frame)
		}
		cy := r.Center().Y
		y0, y1 := cy-sym.DoorLeafDepth/2, cy+sym.DoorLeafDepth/2
		s.Rect(models.RectFromCorners(ll.DoorCenterX-dw/2, y0, ll.DoorCenterX, y1), leaf)
		s.Rect(models.RectFromCorners(ll.DoorCenterX, y0, ll.DoorCenterX+dw/2, y1), leaf)
	}
	for _, j := range ll.Jambs {
		if !j.Empty() {
			s.Rect(j, Style{Fill: pal.WallEdge})
		}
	}
}

// panelDivisions делит дверной проём в стене на равные створки.
func (s *Scene) panelDivisions(ll *plan.LiftLayout, pal Palette) {
	n := ll.Config.Policy().Symbols.DoorPanels
	dw := ll.Config.DoorWidth()
	x0 := ll.DoorCenterX - dw/2
	st := Style{Stroke: pal.Dimension, StrokeWidth: panelLineWidth}
	for i := 1; i < n; i++ {
		x := x0 + float64(i)*dw/float64(n)
		s.Line(models.Point{X: x, Y: ll.Opening.MinY()}, models.Point{X: x, Y: ll.Opening.MaxY()}, st)
	}
}

// guideRails ставит символ направляющей на обе боковые стороны черновой кабины.
func (s *Scene) guideRails(ll *plan.LiftLayout, pal Palette) {
	sym := ll.Config.Policy().Symbols
	u := ll.UnfinishedCar
	y := u.Center().Y
	s.guideRail(u.MinX(), y, -1, sym, pal)
	s.guideRail(u.MaxX(), y, 1, sym, pal)
}

// guideRail: box on the car line at x, then a T stem and bar pointing away from the car (dir = ±1).
func (s *Scene) guideRail(x, y, dir float64, sym policy.Symbols, pal Palette) {
	box, stem, bar := sym.GuideRailBox, sym.GuideRailStem, sym.GuideRailBar
	x1 := x + dir*box.W
	x2 := x1 + dir*stem.W
	x3 := x2 + dir*bar.W
	s.Rect(models.RectFromCorners(x, y-box.H/2, x1, y+box.H/2), Style{Fill: pal.Door, Stroke: pal.WallEdge, StrokeWidth: railEdgeWidth})
	s.Rect(models.RectFromCorners(x1, y-stem.H/2, x2, y+stem.H/2), Style{Fill: pal.WallEdge})
	s.Rect(models.RectFromCorners(x2, y-bar.H/2, x3, y+bar.H/2), Style{Fill: pal.WallEdge})
}

// accessibility рисует знак доступности для колясок между центром кабины и дверями.
// Знак собран из линий, чтобы PNG не зависел от наличия глифа в шрифте.
func (s *Scene) accessibility(ll *plan.LiftLayout, f plan.Frame, pal Palette) {
	car := ll.FinishedCar
	c := car.Center()
	c.Y -= f.Back() * 0.15 * car.H
	u := ll.Config.Policy().Symbols.AccessibilitySize / 10

	st := Style{Stroke: pal.Accessibility, StrokeWidth: carEdgeWidth}
	s.Polyline(circle(models.Point{X: c.X - u, Y: c.Y + 4*u}, u, 12), st)
	s.Polyline([]models.Point{
		{X: c.X - 1.5*u, Y: c.Y + 2.5*u},
		{X: c.X - 1.5*u, Y: c.Y},
		{X: c.X + 2*u, Y: c.Y},
		{X: c.X + 3*u, Y: c.Y - 3.5*u},
	}, st)
	s.Polyline(circle(models.Point{X: c.X - u, Y: c.Y - 2*u}, 3*u, 24), st)
}

func circle(c models.Point, r float64, n int) []models.Point {
	pts := make([]models.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, models.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return pts
}

func (s *Scene) planCenterlines(b *plan.BankLayout, pal Palette) {
	y0, y1 := b.Outer.MinY(), b.Outer.MaxY()
	for _, ll := range b.Lifts {
		centerline(s, models.Point{X: ll.CarCenterX, Y: y0}, models.Point{X: ll.CarCenterX, Y: y1}, pal)
		if ll.DoorCenterX != ll.CarCenterX {
			centerline(s, models.Point{X: ll.DoorCenterX, Y: y0}, models.Point{X: ll.DoorCenterX, Y: y1}, pal)
		}
		my := ll.Shaft.Center().Y
		centerline(s, models.Point{X: ll.Shaft.MinX(), Y: my}, models.Point{X: ll.Shaft.MaxX(), Y: my}, pal)
	}
}
