package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"

	"shaft-planner/internal/planner/models"
)

// ============================================================
// Raster Canvas (PNG)
// ============================================================

type rasterCanvas struct {
	fig  Figure
	vp   viewport
	img  *image.RGBA
	gc   *drawing.RasterGraphicContext
	font *truetype.Font
}

func newRasterCanvas(fig Figure, vp viewport) (*rasterCanvas, error) {
	w, h := fig.Pixels()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("raster context: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("default font: %w", err)
	}
	gc.SetDPI(float64(fig.DPI))
	gc.SetFont(font)

	return &rasterCanvas{fig: fig, vp: vp, img: img, gc: gc, font: font}, nil
}

func (rc *rasterCanvas) apply(s Style) {
	rc.gc.SetFillColor(s.Fill)
	rc.gc.SetStrokeColor(s.Stroke)
	rc.gc.SetLineWidth(rc.fig.points(s.StrokeWidth))
	if len(s.Dash) > 0 {
		dash := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = rc.fig.points(d)
		}
		rc.gc.SetLineDash(dash, 0)
	} else {
		rc.gc.SetLineDash(nil, 0)
	}
}

func (rc *rasterCanvas) paint(s Style, closed bool) {
	switch {
	case closed && s.hasFill() && s.hasStroke():
		rc.gc.FillStroke()
	case closed && s.hasFill():
		rc.gc.Fill()
	case s.hasStroke():
		rc.gc.Stroke()
	}
}

func (rc *rasterCanvas) Rect(r models.Rect, s Style) {
	x, y, w, h := rc.vp.rect(r)
	rc.apply(s)
	rc.gc.BeginPath()
	rc.gc.MoveTo(x, y)
	rc.gc.LineTo(x+w, y)
	rc.gc.LineTo(x+w, y+h)
	rc.gc.LineTo(x, y+h)
	rc.gc.Close()
	rc.paint(s, true)
}

func (rc *rasterCanvas) Line(a, b models.Point, s Style) {
	rc.Polyline([]models.Point{a, b}, s)
}

func (rc *rasterCanvas) Polyline(pts []models.Point, s Style) {
	if len(pts) < 2 {
		return
	}
	rc.apply(s)
	rc.gc.BeginPath()
	for i, p := range pts {
		x, y := rc.vp.point(p)
		if i == 0 {
			rc.gc.MoveTo(x, y)
		} else {
			rc.gc.LineTo(x, y)
		}
	}
	rc.paint(s, false)
}

func (rc *rasterCanvas) Arrow(a, b models.Point, s Style) {
	rc.Line(a, b, s)

	ax, ay := rc.vp.point(a)
	bx, by := rc.vp.point(b)
	size := rc.fig.points(5)
	head := Style{Fill: s.Stroke}
	rc.apply(head)
	for _, tri := range [][3][2]float64{arrowHead(ax, ay, bx, by, size), arrowHead(bx, by, ax, ay, size)} {
		rc.gc.BeginPath()
		rc.gc.MoveTo(tri[0][0], tri[0][1])
		rc.gc.LineTo(tri[1][0], tri[1][1])
		rc.gc.LineTo(tri[2][0], tri[2][1])
		rc.gc.Close()
		rc.gc.Fill()
	}
}

func (rc *rasterCanvas) Text(at models.Point, text string, ts TextStyle) {
	if text == "" {
		return
	}
	x, y := rc.vp.point(at)

	rc.gc.Save()
	rc.gc.SetFont(rc.font)
	rc.gc.SetFontSize(ts.Size)
	rc.gc.SetFillColor(ts.Color)
	rc.gc.Translate(x, y)
	if ts.Rotation != 0 {
		rc.gc.Rotate(-ts.Rotation * math.Pi / 180)
	}

	lines := strings.Split(text, "\n")
	lh := rc.fig.points(ts.Size) * 1.2
	top := -lh*float64(len(lines))/2 - rc.fig.points(ts.Raise)
	for i, line := range lines {
		left, _, right, _, err := rc.gc.GetStringBounds(line)
		if err != nil {
			continue
		}
		rc.gc.BeginPath()
		rc.gc.CreateStringPath(line, alignOffset(ts.Align, right-left), top+lh*float64(i+1)-lh*0.25)
		rc.gc.Fill()
	}
	rc.gc.Restore()
}

func (rc *rasterCanvas) Image(img image.Image, r models.Rect) {
	if img == nil {
		return
	}
	x, y, w, h := rc.vp.rect(fitRect(img, r))
	dst := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	xdraw.CatmullRom.Scale(rc.img, dst, img, img.Bounds(), xdraw.Over, nil)
}

func (rc *rasterCanvas) Encode(w io.Writer) error {
	if err := png.Encode(w, rc.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// alignOffset returns the x of a text run of width w relative to its anchor.
func alignOffset(a Align, w float64) float64 {
	switch a {
	case AlignLeft:
		return 0
	case AlignRight:
		return -w
	}
	return -w / 2
}
