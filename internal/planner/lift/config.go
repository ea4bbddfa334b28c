package lift

import (
	"fmt"
	"math"
	"strconv"

	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Lift Config
// ============================================================

// Config неизменяемая конфигурация лифта. Создаётся только через New,
// поэтому любое значение Config уже прошло проверку.
type Config struct {
	p   Params
	pol *policy.Policy
}

// New заполняет незаданные поля, проверяет параметры и возвращает конфигурацию.
// Ошибка содержит все нарушенные правила сразу.
func New(params Params, pol *policy.Policy) (*Config, error) {
	if pol == nil {
		pol = policy.Default()
	}

	own, err := params.Clone()
	if err != nil {
		return nil, fmt.Errorf("copy params: %w", err)
	}

	c := &Config{p: own.withDefaults(pol), pol: pol}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Params returns a copy of the resolved inputs, defaults included.
func (c *Config) Params() Params {
	out, err := c.p.Clone()
	if err != nil {
		panic(err)
	}
	return out
}

func (c *Config) Policy() *policy.Policy { return c.pol }

func (c *Config) Type() LiftType { return c.p.LiftType }
func (c *Config) Machine() MachineType { return c.p.MachineType }
func (c *Config) Opening() DoorOpening { return c.p.DoorOpening }
func (c *Config) IsFire() bool { return c.p.LiftType == Fire }
func (c *Config) IsTelescopic() bool { return c.p.DoorOpening == TelescopicOpening }
func (c *Config) FinishedCarWidth() float64 { return c.p.FinishedCarWidth }
func (c *Config) FinishedCarDepth() float64 { return c.p.FinishedCarDepth }
func (c *Config) CWBracketWidth() float64 { return c.p.CWBracketWidth }
func (c *Config) CarBracketWidth() float64 { return c.p.CarBracketWidth }
func (c *Config) MRALeftBracket() float64 { return c.p.MRALeftBracketWidth }
func (c *Config) MRARightBracket() float64 { return c.p.MRARightBracketWidth }
func (c *Config) MRACWBracketDepth() float64 { return c.p.MRACWBracketDepth }
func (c *Config) WallThickness() float64 { return c.p.WallThickness }
func (c *Config) DoorWidth() float64 { return c.p.DoorWidth }
func (c *Config) DoorHeight() float64 { return c.p.DoorHeight }
func (c *Config) OpeningWidth() float64 { return c.p.OpeningWidth }
func (c *Config) OpeningHeight() float64 { return c.p.OpeningHeight }
func (c *Config) DoorPanelThickness() float64 { return c.p.DoorPanelThickness }
func (c *Config) DoorExtension() float64 { return c.p.DoorExtension }

// Capacity returns the rated load in kg when one was given.
func (c *Config) Capacity() (int, bool) {
	if c.p.Capacity == nil {
		return 0, false
	}
	return *c.p.Capacity, true
}

// ============================================================
// Derived Dimensions
// ============================================================

func (c *Config) UnfinishedCarWidth() float64 {
	return c.p.FinishedCarWidth + 2*c.pol.Car.WallThickness
}

// UnfinishedCarDepth adds the car wall at the rear only; the front is the door line.
func (c *Config) UnfinishedCarDepth() float64 {
	return c.p.FinishedCarDepth + c.pol.Car.WallThickness
}

// DoorZone is the depth taken by the landing door, the gap and the car door.
func (c *Config) DoorZone() float64 {
	return 2*c.p.DoorPanelThickness + c.pol.Doors.Gap
}

// bracketWidthSum is the geometric minimum width before the fire rule.
func (c *Config) bracketWidthSum() float64 {
	if c.p.MachineType == MRA {
		return c.p.MRALeftBracketWidth + c.UnfinishedCarWidth() + c.p.MRARightBracketWidth
	}
	return c.p.CWBracketWidth + c.UnfinishedCarWidth() + c.p.CarBracketWidth
}

func (c *Config) fireMinShaftWidth() float64 {
	if c.IsTelescopic() {
		return c.pol.Fire.MinShaftWidthTelescopic
	}
	return c.pol.Fire.MinShaftWidth
}

func (c *Config) MinShaftWidth() float64 {
	w := c.bracketWidthSum()
	if c.IsFire() {
		w = math.Max(w, c.fireMinShaftWidth())
	}
	return w
}

func (c *Config) MinShaftDepth() float64 {
	d := c.DoorZone() + c.UnfinishedCarDepth()
	if c.p.MachineType == MRA {
		return d + c.pol.Clearance.MRACWGap + c.p.MRACWBracketDepth
	}
	return d + c.pol.Clearance.DefaultRear
}

// ShaftWidth is the explicit override when given, otherwise the minimum.
func (c *Config) ShaftWidth() float64 {
	if c.p.ShaftWidth != nil {
		return *c.p.ShaftWidth
	}
	return c.MinShaftWidth()
}

func (c *Config) ShaftDepth() float64 {
	if c.p.ShaftDepth != nil {
		return *c.p.ShaftDepth
	}
	return c.MinShaftDepth()
}

func (c *Config) RemainingWidth() float64 { return c.ShaftWidth() - c.MinShaftWidth() }
func (c *Config) RemainingDepth() float64 { return c.ShaftDepth() - c.MinShaftDepth() }

// RearClearance is the free depth behind the car up to the back wall.
// For MRA it includes the counterweight gap and bracket.
func (c *Config) RearClearance() float64 {
	if c.p.MachineType == MRA {
		return c.CWGap() + c.p.MRACWBracketDepth
	}
	return c.pol.Clearance.DefaultRear + c.RemainingDepth()
}

// CWGap is the MRA gap between car and counterweight bracket; zero for MRL.
func (c *Config) CWGap() float64 {
	if c.p.MachineType != MRA {
		return 0
	}
	return c.pol.Clearance.MRACWGap + c.RemainingDepth()
}

// TelescopicExtensions returns the resolved left/right panel extensions.
func (c *Config) TelescopicExtensions() (left, right float64) {
	if c.p.TelescopicLeftExtension != nil {
		left = *c.p.TelescopicLeftExtension
	}
	if c.p.TelescopicRightExtension != nil {
		right = *c.p.TelescopicRightExtension
	}
	return left, right
}

// DoorStackExtents returns how far the door panels reach left and right of the door centre.
func (c *Config) DoorStackExtents() (left, right float64) {
	if c.IsTelescopic() {
		l, r := c.TelescopicExtensions()
		return c.p.DoorWidth/2 + l, c.p.DoorWidth/2 + r
	}
	half := c.p.DoorWidth + c.p.DoorExtension
	return half, half
}

// ============================================================
// Breakdowns
// ============================================================

func (c *Config) WidthBreakdown() string {
	var s string
	if c.p.MachineType == MRA {
		s = fmt.Sprintf("Left Bracket (%s) + Unfinished Car (%s) + Right Bracket (%s)",
			formatMM(c.p.MRALeftBracketWidth), formatMM(c.UnfinishedCarWidth()), formatMM(c.p.MRARightBracketWidth))
	} else {
		s = fmt.Sprintf("CW Bracket (%s) + Unfinished Car (%s) + Car Bracket (%s)",
			formatMM(c.p.CWBracketWidth), formatMM(c.UnfinishedCarWidth()), formatMM(c.p.CarBracketWidth))
	}
	if c.IsFire() && c.fireMinShaftWidth() > c.bracketWidthSum() {
		s += fmt.Sprintf(" = %s, raised to fire lift minimum %s", formatMM(c.bracketWidthSum()), formatMM(c.fireMinShaftWidth()))
	}
	return s
}

func (c *Config) DepthBreakdown() string {
	s := fmt.Sprintf("2 x Door (%s) + Gap (%s) + Unfinished Car (%s)",
		formatMM(c.p.DoorPanelThickness), formatMM(c.pol.Doors.Gap), formatMM(c.UnfinishedCarDepth()))
	if c.p.MachineType == MRA {
		return s + fmt.Sprintf(" + CW Gap (%s) + CW Bracket (%s)", formatMM(c.pol.Clearance.MRACWGap), formatMM(c.p.MRACWBracketDepth))
	}
	return s + fmt.Sprintf(" + Rear Clearance (%s)", formatMM(c.pol.Clearance.DefaultRear))
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
