package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"shaft-planner/internal/planner/models"
)

// ============================================================
// SVG Canvas
// ============================================================

type svgCanvas struct {
	fig    Figure
	vp     viewport
	buf    bytes.Buffer
	canvas *svg.SVG
	ended  bool
}

func newSVGCanvas(fig Figure, vp viewport) *svgCanvas {
	sc := &svgCanvas{fig: fig, vp: vp}
	sc.canvas = svg.New(&sc.buf)
	w, h := fig.Pixels()
	sc.canvas.Start(w, h)
	sc.canvas.Rect(0, 0, w, h, "fill:#ffffff;stroke:none")
	return sc
}

func px(v float64) int { return int(math.Round(v)) }

func (sc *svgCanvas) style(s Style, closed bool) string {
	parts := []string{"fill:none"}
	if closed && s.hasFill() {
		parts[0] = "fill:" + hex(s.Fill)
		if s.Fill.A < 255 {
			parts = append(parts, fmt.Sprintf("fill-opacity:%.2f", opacity(s.Fill)))
		}
	}
	if s.hasStroke() {
		parts = append(parts,
			"stroke:"+hex(s.Stroke),
			fmt.Sprintf("stroke-width:%.2f", sc.fig.points(s.StrokeWidth)))
		if len(s.Dash) > 0 {
			dash := make([]string, len(s.Dash))
			for i, d := range s.Dash {
				dash[i] = fmt.Sprintf("%.1f", sc.fig.points(d))
			}
			parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
		}
	} else {
		parts = append(parts, "stroke:none")
	}
	return strings.Join(parts, ";")
}

func (sc *svgCanvas) Rect(r models.Rect, s Style) {
	x, y, w, h := sc.vp.rect(r)
	sc.canvas.Rect(px(x), px(y), max(px(w), 1), max(px(h), 1), sc.style(s, true))
}

func (sc *svgCanvas) Line(a, b models.Point, s Style) {
	ax, ay := sc.vp.point(a)
	bx, by := sc.vp.point(b)
	sc.canvas.Line(px(ax), px(ay), px(bx), px(by), sc.style(s, false))
}

func (sc *svgCanvas) Polyline(pts []models.Point, s Style) {
	if len(pts) < 2 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		x, y := sc.vp.point(p)
		xs[i], ys[i] = px(x), px(y)
	}
	sc.canvas.Polyline(xs, ys, sc.style(s, false))
}

func (sc *svgCanvas) Arrow(a, b models.Point, s Style) {
	sc.Line(a, b, s)
	ax, ay := sc.vp.point(a)
	bx, by := sc.vp.point(b)
	size := sc.fig.points(5)
	fill := "fill:" + hex(s.Stroke) + ";stroke:none"
	for _, tri := range [][3][2]float64{arrowHead(ax, ay, bx, by, size), arrowHead(bx, by, ax, ay, size)} {
		sc.canvas.Polygon(
			[]int{px(tri[0][0]), px(tri[1][0]), px(tri[2][0])},
			[]int{px(tri[0][1]), px(tri[1][1]), px(tri[2][1])},
			fill)
	}
}

func (sc *svgCanvas) Text(at models.Point, text string, ts TextStyle) {
	if text == "" {
		return
	}
	x, y := sc.vp.point(at)
	size := sc.fig.points(ts.Size)
	anchor := "middle"
	switch ts.Align {
	case AlignLeft:
		anchor = "start"
	case AlignRight:
		anchor = "end"
	}
	weight := "normal"
	if ts.Bold {
		weight = "bold"
	}
	style := fmt.Sprintf("font-family:sans-serif;font-size:%.1fpx;font-weight:%s;fill:%s;text-anchor:%s",
		size, weight, hex(ts.Color), anchor)

	sc.canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(%g)", px(x), px(y), -ts.Rotation))
	lines := strings.Split(text, "\n")
	lh := size * 1.2
	top := -lh*float64(len(lines))/2 - sc.fig.points(ts.Raise)
	for i, line := range lines {
		sc.canvas.Text(0, px(top+lh*float64(i+1)-lh*0.25), line, style)
	}
	sc.canvas.Gend()
}

func (sc *svgCanvas) Image(img image.Image, r models.Rect) {
	if img == nil {
		return
	}
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		return
	}
	x, y, w, h := sc.vp.rect(fitRect(img, r))
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(enc.Bytes())
	sc.canvas.Image(px(x), px(y), px(w), px(h), uri)
}

func (sc *svgCanvas) Encode(w io.Writer) error {
	if !sc.ended {
		sc.canvas.End()
		sc.ended = true
	}
	if _, err := w.Write(sc.buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
