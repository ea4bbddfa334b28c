package models

import "math"

// ============================================================
// Geometry primitives
// ============================================================

// Все размеры в миллиметрах, ось Y направлена вверх.

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectFromCorners строит прямоугольник по двум противоположным углам.
func RectFromCorners(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X: math.Min(x0, x1),
		Y: math.Min(y0, y1),
		W: math.Abs(x1 - x0),
		H: math.Abs(y1 - y0),
	}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports a degenerate rectangle (no area).
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Expand grows the rectangle by dx on the left/right and dy on the bottom/top.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Fit returns the largest rectangle with the given aspect ratio (w/h) centered in r.
func (r Rect) Fit(aspect float64) Rect {
	if aspect <= 0 || r.Empty() {
		return r
	}
	w, h := r.W, r.W/aspect
	if h > r.H {
		h = r.H
		w = h * aspect
	}
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// ============================================================
// Extent
// ============================================================

// Extent накапливает габариты набора фигур.
type Extent struct {
	rect Rect
	ok   bool
}

func (e *Extent) AddPoint(p Point) {
	e.add(p.X, p.Y, p.X, p.Y)
}

func (e *Extent) AddRect(r Rect) {
	e.add(r.MinX(), r.MinY(), r.MaxX(), r.MaxY())
}

func (e *Extent) add(x0, y0, x1, y1 float64) {
	if !e.ok {
		e.rect = RectFromCorners(x0, y0, x1, y1)
		e.ok = true
		return
	}
	minX := math.Min(e.rect.MinX(), x0)
	minY := math.Min(e.rect.MinY(), y0)
	maxX := math.Max(e.rect.MaxX(), x1)
	maxY := math.Max(e.rect.MaxY(), y1)
	e.rect = RectFromCorners(minX, minY, maxX, maxY)
}

// Rect returns the accumulated bounds and false when nothing was added.
func (e *Extent) Rect() (Rect, bool) {
	return e.rect, e.ok
}
