package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ============================================================
// Styles
// ============================================================

// Style описывает заливку и обводку. Толщина и штрих задаются в пунктах.
type Style struct {
	Fill        drawing.Color
	Stroke      drawing.Color
	StrokeWidth float64
	Dash        []float64
}

func (s Style) hasFill() bool   { return s.Fill.A > 0 }
func (s Style) hasStroke() bool { return s.Stroke.A > 0 && s.StrokeWidth > 0 }

type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// TextStyle: Size in points, Rotation in degrees counter-clockwise.
// Raise shifts the block along its own up direction, in points.
type TextStyle struct {
	Size     float64
	Color    drawing.Color
	Align    Align
	Rotation float64
	Raise    float64
	Bold     bool
}

// Palette цвета чертежа.
type Palette struct {
	WallFill          drawing.Color
	WallEdge          drawing.Color
	Hatch             drawing.Color
	Interior          drawing.Color
	UnfinishedCar     drawing.Color
	UnfinishedCarEdge drawing.Color
	FinishedCar       drawing.Color
	FinishedCarEdge   drawing.Color
	CWBracket         drawing.Color
	CarBracket        drawing.Color
	BracketEdge       drawing.Color
	CWFrame           drawing.Color
	CWBox             drawing.Color
	CarBracketBox     drawing.Color
	SteelBeam         drawing.Color
	Door              drawing.Color
	Dimension         drawing.Color
	Centerline        drawing.Color
	Title             drawing.Color
	CapacityText      drawing.Color
	Landing           drawing.Color
	Machine           drawing.Color
	Duct              drawing.Color
	Accessibility     drawing.Color
}

func DefaultPalette() Palette {
	return Palette{
		WallFill:          drawing.ColorFromHex("FFFFFF"),
		WallEdge:          drawing.ColorFromHex("000000"),
		Hatch:             drawing.ColorFromHex("000000"),
		Interior:          drawing.ColorFromHex("F5F5F5"),
		UnfinishedCar:     drawing.ColorFromHex("E8E8E8"),
		UnfinishedCarEdge: drawing.ColorFromHex("606060"),
		FinishedCar:       drawing.ColorFromHex("FFFFFF"),
		FinishedCarEdge:   drawing.ColorFromHex("404040"),
		CWBracket:         drawing.ColorFromHex("B0B0B0"),
		CarBracket:        drawing.ColorFromHex("C8C8C8"),
		BracketEdge:       drawing.ColorFromHex("505050"),
		CWFrame:           drawing.ColorFromHex("4CAF50"),
		CWBox:             drawing.ColorFromHex("FFD700"),
		CarBracketBox:     drawing.ColorFromHex("3B82F6"),
		SteelBeam:         drawing.ColorFromHex("FFFFFF"),
		Door:              drawing.ColorFromHex("FFFFFF"),
		Dimension:         drawing.ColorFromHex("000000"),
		Centerline:        drawing.ColorFromHex("FF0000"),
		Title:             drawing.ColorFromHex("000000"),
		CapacityText:      drawing.ColorFromHex("333333"),
		Landing:           drawing.ColorFromHex("C0C0C0"),
		Machine:           drawing.ColorFromHex("FFD700"),
		Duct:              drawing.ColorFromHex("D0E8FF"),
		Accessibility:     drawing.ColorFromHex("0066CC"),
	}
}

// hex formats a colour for SVG attributes.
func hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c drawing.Color) float64 {
	return float64(c.A) / 255
}
