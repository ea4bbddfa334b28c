package render

import (
	"errors"
	"fmt"
	"image"
	"io"

	"shaft-planner/internal/planner/models"
)

// ============================================================
// Scene
// ============================================================

type CommandKind string

const (
	CmdRect     CommandKind = "rect"
	CmdLine     CommandKind = "line"
	CmdPolyline CommandKind = "polyline"
	CmdText     CommandKind = "text"
	CmdArrow    CommandKind = "arrow"
	CmdImage    CommandKind = "image"
)

type Command struct {
	Kind      CommandKind
	Rect      models.Rect
	Points    []models.Point
	Text      string
	Style     Style
	TextStyle TextStyle
	Image     image.Image
}

// Scene записывает команды рисования в мировых координатах.
// Сама реализует Canvas, поэтому компоновка не зависит от формата вывода.
type Scene struct {
	Bounds   models.Rect
	Figure   Figure
	Commands []Command
}

var errSceneEncode = errors.New("scene has no encoding; replay it onto a canvas")

func (s *Scene) Rect(r models.Rect, st Style) {
	s.Commands = append(s.Commands, Command{Kind: CmdRect, Rect: r, Style: st})
}

func (s *Scene) Line(a, b models.Point, st Style) {
	s.Commands = append(s.Commands, Command{Kind: CmdLine, Points: []models.Point{a, b}, Style: st})
}

func (s *Scene) Polyline(pts []models.Point, st Style) {
	s.Commands = append(s.Commands, Command{Kind: CmdPolyline, Points: append([]models.Point(nil), pts...), Style: st})
}

func (s *Scene) Text(at models.Point, text string, ts TextStyle) {
	s.Commands = append(s.Commands, Command{Kind: CmdText, Points: []models.Point{at}, Text: text, TextStyle: ts})
}

func (s *Scene) Arrow(a, b models.Point, st Style) {
	s.Commands = append(s.Commands, Command{Kind: CmdArrow, Points: []models.Point{a, b}, Style: st})
}

func (s *Scene) Image(img image.Image, r models.Rect) {
	s.Commands = append(s.Commands, Command{Kind: CmdImage, Rect: r, Image: img})
}

func (s *Scene) Encode(io.Writer) error { return errSceneEncode }

// Texts returns every text in drawing order.
func (s *Scene) Texts() []string {
	var out []string
	for _, c := range s.Commands {
		if c.Kind == CmdText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Replay draws the recorded commands onto c.
func (s *Scene) Replay(c Canvas) {
	for _, cmd := range s.Commands {
		switch cmd.Kind {
		case CmdRect:
			c.Rect(cmd.Rect, cmd.Style)
		case CmdLine:
			c.Line(cmd.Points[0], cmd.Points[1], cmd.Style)
		case CmdPolyline:
			c.Polyline(cmd.Points, cmd.Style)
		case CmdText:
			c.Text(cmd.Points[0], cmd.Text, cmd.TextStyle)
		case CmdArrow:
			c.Arrow(cmd.Points[0], cmd.Points[1], cmd.Style)
		case CmdImage:
			c.Image(cmd.Image, cmd.Rect)
		}
	}
}

// Render replays the scene onto a new canvas of the given format and encodes it to w.
func (s *Scene) Render(format Format, w io.Writer) error {
	c, err := NewCanvas(format, s.Figure, s.Bounds)
	if err != nil {
		return fmt.Errorf("create canvas: %w", err)
	}
	s.Replay(c)
	return c.Encode(w)
}
