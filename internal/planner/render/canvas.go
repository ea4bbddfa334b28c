package render

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"shaft-planner/internal/planner/models"
)

// ============================================================
// Canvas
// ============================================================

// Canvas рисует в мировых миллиметрах, ось Y вверх.
type Canvas interface {
	Rect(r models.Rect, s Style)
	Line(a, b models.Point, s Style)
	Polyline(pts []models.Point, s Style)
	Text(at models.Point, text string, ts TextStyle)
	// Arrow draws a line with arrow heads at both ends.
	Arrow(a, b models.Point, s Style)
	// Image draws img inside r, keeping its aspect ratio.
	Image(img image.Image, r models.Rect)
	Encode(w io.Writer) error
}

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" and "svg" in any case; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported format %q (want png or svg)", s)
}

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Figure is the output size in inches at DPI.
type Figure struct {
	WidthIn  float64 `yaml:"width_in" json:"width_in"`
	HeightIn float64 `yaml:"height_in" json:"height_in"`
	DPI      int     `yaml:"dpi" json:"dpi"`
}

var (
	PlanFigure    = Figure{WidthIn: 10, HeightIn: 10, DPI: 150}
	SectionFigure = Figure{WidthIn: 8, HeightIn: 14, DPI: 150}
)

func (f Figure) Pixels() (int, int) {
	return int(math.Round(f.WidthIn * float64(f.DPI))), int(math.Round(f.HeightIn * float64(f.DPI)))
}

// points converts a size in points to pixels.
func (f Figure) points(pt float64) float64 {
	return pt * float64(f.DPI) / 72
}

// NewCanvas создаёт холст нужного формата, вписывающий bounds в figure.
func NewCanvas(format Format, fig Figure, bounds models.Rect) (Canvas, error) {
	if fig.DPI <= 0 || fig.WidthIn <= 0 || fig.HeightIn <= 0 {
		return nil, fmt.Errorf("invalid figure %+v", fig)
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("nothing to draw: empty bounds")
	}
	vp := newViewport(fig, bounds)
	switch format {
	case PNG, "":
		return newRasterCanvas(fig, vp)
	case SVG:
		return newSVGCanvas(fig, vp), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ============================================================
// Viewport
// ============================================================

// viewport переводит мировые миллиметры в пиксели с сохранением пропорций.
type viewport struct {
	scale  float64
	offX   float64
	offY   float64
	bounds models.Rect
	height float64
}

func newViewport(fig Figure, bounds models.Rect) viewport {
	w, h := fig.Pixels()
	scale := math.Min(float64(w)/bounds.W, float64(h)/bounds.H)
	return viewport{
		scale:  scale,
		offX:   (float64(w) - bounds.W*scale) / 2,
		offY:   (float64(h) - bounds.H*scale) / 2,
		bounds: bounds,
		height: float64(h),
	}
}

func (v viewport) point(p models.Point) (float64, float64) {
	x := v.offX + (p.X-v.bounds.X)*v.scale
	y := v.height - (v.offY + (p.Y-v.bounds.Y)*v.scale)
	return x, y
}

// rect returns the pixel rectangle (top-left origin).
func (v viewport) rect(r models.Rect) (x, y, w, h float64) {
	x0, y0 := v.point(models.Point{X: r.MinX(), Y: r.MaxY()})
	return x0, y0, r.W * v.scale, r.H * v.scale
}

// arrowHead returns the triangle of an arrow head pointing at tip from tail, in pixels.
func arrowHead(tipX, tipY, tailX, tailY, size float64) [3][2]float64 {
	dx, dy := tipX-tailX, tipY-tailY
	l := math.Hypot(dx, dy)
	if l == 0 {
		return [3][2]float64{{tipX, tipY}, {tipX, tipY}, {tipX, tipY}}
	}
	ux, uy := dx/l, dy/l
	bx, by := tipX-ux*size, tipY-uy*size
	half := size * 0.35
	return [3][2]float64{
		{tipX, tipY},
		{bx - uy*half, by + ux*half},
		{bx + uy*half, by - ux*half},
	}
}

// fitRect returns the largest rectangle of the image's aspect centred in r.
func fitRect(img image.Image, r models.Rect) models.Rect {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return r
	}
	return r.Fit(float64(b.Dx()) / float64(b.Dy()))
}
