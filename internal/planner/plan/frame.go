package plan

import "shaft-planner/internal/planner/models"

// ============================================================
// Frame
// ============================================================

// Frame переводит локальные координаты группы (x от внешней левой грани,
// d от внешней передней грани) в мировые. При Flip двери группы смотрят вверх.
type Frame struct {
	OffsetX float64 `json:"offset_x"`
	BaseY   float64 `json:"base_y"`
	Span    float64 `json:"span"`
	Flip    bool    `json:"flip"`
}

func (f Frame) X(x float64) float64 { return f.OffsetX + x }

func (f Frame) Y(d float64) float64 {
	if f.Flip {
		return f.BaseY + f.Span - d
	}
	return f.BaseY + d
}

func (f Frame) Point(x, d float64) models.Point {
	return models.Point{X: f.X(x), Y: f.Y(d)}
}

func (f Frame) Rect(x0, d0, x1, d1 float64) models.Rect {
	return models.RectFromCorners(f.X(x0), f.Y(d0), f.X(x1), f.Y(d1))
}

// Back is the world y direction from the bank's front face towards its back: +1 or -1.
func (f Frame) Back() float64 {
	if f.Flip {
		return -1
	}
	return 1
}

// FrontY and BackY are the world y of the bank's outer front and back faces.
func (f Frame) FrontY() float64 { return f.Y(0) }
func (f Frame) BackY() float64  { return f.Y(f.Span) }

// box is a rectangle in bank-local coordinates.
type box struct {
	x0, d0, x1, d1 float64
}

func (b box) empty() bool { return b.x1 <= b.x0 || b.d1 <= b.d0 }

func (f Frame) box(b box) models.Rect {
	return f.Rect(b.x0, b.d0, b.x1, b.d1)
}
