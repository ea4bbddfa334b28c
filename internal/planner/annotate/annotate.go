package annotate

import (
	"math"
	"strconv"

	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Dimension Set
// ============================================================

type Edge string

const (
	EdgeBack   Edge = "back"
	EdgeFront  Edge = "front"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
	EdgeLobby  Edge = "lobby"
)

type Anchor string

const (
	AnchorLeft   Anchor = "left"
	AnchorCenter Anchor = "center"
	AnchorRight  Anchor = "right"
)

// Dimension размерная линия: From/To лежат на геометрии, Line вынесена на уровень Level.
type Dimension struct {
	Edge     Edge           `json:"edge"`
	Level    int            `json:"level"`
	From     models.Point   `json:"from"`
	To       models.Point   `json:"to"`
	Line     models.Segment `json:"line"`
	Text     string         `json:"text"`
	Vertical bool           `json:"vertical"`
}

// Length is the measured distance.
func (d Dimension) Length() float64 {
	if d.Vertical {
		return math.Abs(d.To.Y - d.From.Y)
	}
	return math.Abs(d.To.X - d.From.X)
}

type Note struct {
	At     models.Point `json:"at"`
	Text   string       `json:"text"`
	Anchor Anchor       `json:"anchor"`
}

type Set struct {
	Dimensions []Dimension `json:"dimensions"`
	Notes      []Note      `json:"notes"`
	// Overshoot is how far extension lines run past the dimension line.
	Overshoot float64 `json:"overshoot"`
}

// On returns the dimensions of one edge in insertion order.
func (s *Set) On(edge Edge) []Dimension {
	var out []Dimension
	for _, d := range s.Dimensions {
		if d.Edge == edge {
			out = append(out, d)
		}
	}
	return out
}

// Bounds covers every dimension line and note anchor.
func (s *Set) Bounds() (models.Rect, bool) {
	var e models.Extent
	for _, d := range s.Dimensions {
		e.AddPoint(d.Line.A)
		e.AddPoint(d.Line.B)
	}
	for _, n := range s.Notes {
		e.AddPoint(n.At)
	}
	return e.Rect()
}

// ------------------------------------------------------------
// Builders
// ------------------------------------------------------------

// builder ставит размеры вдоль одной грани: edgeAt координата грани, dir наружу (+1/-1).
type builder struct {
	set      *Set
	ann      policy.Annotation
	edge     Edge
	edgeAt   float64
	dir      float64
	vertical bool
}

func (b builder) add(level int, from, to float64, text string) {
	if to-from == 0 {
		return
	}
	line := b.edgeAt + b.dir*b.ann.Offset(level)
	d := Dimension{Edge: b.edge, Level: level, Text: text, Vertical: b.vertical}
	if b.vertical {
		d.From = models.Point{X: b.edgeAt, Y: from}
		d.To = models.Point{X: b.edgeAt, Y: to}
		d.Line = models.Segment{A: models.Point{X: line, Y: from}, B: models.Point{X: line, Y: to}}
	} else {
		d.From = models.Point{X: from, Y: b.edgeAt}
		d.To = models.Point{X: to, Y: b.edgeAt}
		d.Line = models.Segment{A: models.Point{X: from, Y: line}, B: models.Point{X: to, Y: line}}
	}
	b.set.Dimensions = append(b.set.Dimensions, d)
}

// at returns the coordinate of the given level's dimension line.
func (b builder) at(level int) float64 {
	return b.edgeAt + b.dir*b.ann.Offset(level)
}

func (s *Set) note(x, y float64, text string, anchor Anchor) {
	s.Notes = append(s.Notes, Note{At: models.Point{X: x, Y: y}, Text: text, Anchor: anchor})
}

// mm formats a label value rounded to 0.1 mm.
func mm(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
