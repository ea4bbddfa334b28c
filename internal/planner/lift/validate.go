package lift

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"
)

// ============================================================
// Validation
// ============================================================

type problems struct {
	err error
}

func (p *problems) addf(format string, args ...any) {
	p.err = multierr.Append(p.err, fmt.Errorf(format, args...))
}

// validate проверяет все правила и возвращает их нарушения одной ошибкой.
func (c *Config) validate() error {
	var pr problems
	p := c.p

	switch p.LiftType {
	case Passenger, Fire:
	default:
		pr.addf("lift_type must be 'passenger' or 'fire', got '%s'.", p.LiftType)
	}
	switch p.MachineType {
	case MRL, MRA:
	default:
		pr.addf("machine_type must be 'mrl' or 'mra', got '%s'.", p.MachineType)
	}

	// Остальные правила на NaN/Inf дают бессмысленные сообщения.
	if !c.checkFinite(&pr) {
		return &ValidationError{err: pr.err}
	}
	c.checkPositive(&pr)

	if p.LiftType == Fire && !c.pol.FireCabinAllowed(p.FinishedCarWidth, p.FinishedCarDepth) {
		sizes := make([]string, 0, len(c.pol.Fire.CabinSizes))
		for _, s := range c.pol.Fire.CabinSizes {
			sizes = append(sizes, s.String())
		}
		pr.addf("Fire lift must use one of these cabin sizes (WxD): %s. Got: %sx%s.",
			strings.Join(sizes, ", "), formatMM(p.FinishedCarWidth), formatMM(p.FinishedCarDepth))
	}
	if p.LiftType == Fire && p.DoorWidth != c.pol.Fire.DoorWidth {
		pr.addf("Fire lift Door Width must be %smm, got %smm.",
			formatMM(c.pol.Fire.DoorWidth), formatMM(p.DoorWidth))
	}

	switch p.DoorOpening {
	case CentreOpening:
	case TelescopicOpening:
		if p.LiftType != Fire {
			pr.addf("Telescopic door opening is only available for fire lifts.")
		}
	default:
		pr.addf("door_opening_type must be 'centre' or 'telescopic', got '%s'.", p.DoorOpening)
	}

	c.checkBrackets(&pr)
	c.checkShaftWidth(&pr)
	c.checkShaftDepth(&pr)

	if p.DoorWidth > p.OpeningWidth {
		pr.addf("Door Width (%smm) exceeds Structural Opening Width (%smm).",
			formatMM(p.DoorWidth), formatMM(p.OpeningWidth))
	}
	if p.DoorHeight > p.OpeningHeight {
		pr.addf("Door Height (%smm) exceeds Structural Opening Height (%smm).",
			formatMM(p.DoorHeight), formatMM(p.OpeningHeight))
	}

	if pr.err != nil {
		return &ValidationError{err: pr.err}
	}
	return nil
}

func (c *Config) checkFinite(pr *problems) bool {
	p := c.p
	fields := []struct {
		name  string
		value *float64
	}{
		{"Finished Car Width", &p.FinishedCarWidth},
		{"Finished Car Depth", &p.FinishedCarDepth},
		{"CW Bracket Width", &p.CWBracketWidth},
		{"Car Bracket Width", &p.CarBracketWidth},
		{"Left Car Bracket Width", &p.MRALeftBracketWidth},
		{"Right Car Bracket Width", &p.MRARightBracketWidth},
		{"CW Bracket Depth", &p.MRACWBracketDepth},
		{"Wall Thickness", &p.WallThickness},
		{"Door Width", &p.DoorWidth},
		{"Door Height", &p.DoorHeight},
		{"Structural Opening Width", &p.OpeningWidth},
		{"Structural Opening Height", &p.OpeningHeight},
		{"Door Panel Thickness", &p.DoorPanelThickness},
		{"Door Extension", &p.DoorExtension},
		{"Shaft Width", p.ShaftWidth},
		{"Shaft Depth", p.ShaftDepth},
		{"Telescopic Left Extension", p.TelescopicLeftExtension},
		{"Telescopic Right Extension", p.TelescopicRightExtension},
	}
	ok := true
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			pr.addf("%s must be a finite number, got %s.", f.name, formatMM(*f.value))
			ok = false
		}
	}
	return ok
}

func (c *Config) checkPositive(pr *problems) {
	p := c.p
	fields := []struct {
		name  string
		value float64
	}{
		{"Finished Car Width", p.FinishedCarWidth},
		{"Finished Car Depth", p.FinishedCarDepth},
		{"Wall Thickness", p.WallThickness},
		{"Door Width", p.DoorWidth},
		{"Door Height", p.DoorHeight},
		{"Structural Opening Width", p.OpeningWidth},
		{"Structural Opening Height", p.OpeningHeight},
		{"Door Panel Thickness", p.DoorPanelThickness},
	}
	for _, f := range fields {
		if f.value <= 0 {
			pr.addf("%s must be positive, got %smm.", f.name, formatMM(f.value))
		}
	}
	if p.DoorExtension < 0 {
		pr.addf("Door Extension must not be negative, got %smm.", formatMM(p.DoorExtension))
	}
	if p.Capacity != nil && *p.Capacity <= 0 {
		pr.addf("Capacity must be positive, got %d kg.", *p.Capacity)
	}
	if c.IsTelescopic() {
		left, right := c.TelescopicExtensions()
		if left < 0 || right < 0 {
			pr.addf("Telescopic extensions must not be negative, got %smm / %smm.", formatMM(left), formatMM(right))
		}
	}
}

func (c *Config) checkBrackets(pr *problems) {
	p := c.p
	b := c.pol.Brackets

	if p.MachineType == MRA {
		if p.MRALeftBracketWidth < b.MinMRACarWidth {
			pr.addf("Left Car Bracket Width (%smm) is below minimum (%smm).",
				formatMM(p.MRALeftBracketWidth), formatMM(b.MinMRACarWidth))
		}
		if p.MRARightBracketWidth < b.MinMRACarWidth {
			pr.addf("Right Car Bracket Width (%smm) is below minimum (%smm).",
				formatMM(p.MRARightBracketWidth), formatMM(b.MinMRACarWidth))
		}
		if p.MRACWBracketDepth < b.MinMRACWDepth {
			pr.addf("CW Bracket Depth (%smm) is below minimum (%smm).",
				formatMM(p.MRACWBracketDepth), formatMM(b.MinMRACWDepth))
		}
		return
	}

	if p.CWBracketWidth < b.MinCWWidth {
		pr.addf("CW Bracket Width (%smm) is below minimum (%smm).",
			formatMM(p.CWBracketWidth), formatMM(b.MinCWWidth))
	}
	if p.CarBracketWidth < b.MinCarWidth {
		pr.addf("Car Bracket Width (%smm) is below minimum (%smm).",
			formatMM(p.CarBracketWidth), formatMM(b.MinCarWidth))
	}
}

func (c *Config) checkShaftWidth(pr *problems) {
	p := c.p
	if p.ShaftWidth != nil {
		override := *p.ShaftWidth
		if override < c.bracketWidthSum() {
			pr.addf("Shaft Width (%smm) is below minimum (%smm). Minimum = %s",
				formatMM(override), formatMM(c.MinShaftWidth()), c.WidthBreakdown())
		}
		if c.IsFire() && override < c.fireMinShaftWidth() {
			pr.addf("Fire lift Shaft Width (%smm) is below fire lift minimum (%smm).",
				formatMM(override), formatMM(c.fireMinShaftWidth()))
		}
	}
	if p.OpeningWidth > c.ShaftWidth() {
		pr.addf("Structural Opening Width (%smm) exceeds Shaft Width (%smm).",
			formatMM(p.OpeningWidth), formatMM(c.ShaftWidth()))
	}
}

func (c *Config) checkShaftDepth(pr *problems) {
	p := c.p
	if p.ShaftDepth == nil {
		return
	}
	override := *p.ShaftDepth
	if override < c.MinShaftDepth() {
		pr.addf("Shaft Depth (%smm) is below minimum (%smm). Minimum = %s",
			formatMM(override), formatMM(c.MinShaftDepth()), c.DepthBreakdown())
	}
	if p.MachineType == MRL {
		rear := c.pol.Clearance.DefaultRear + (override - c.MinShaftDepth())
		if rear < c.pol.Clearance.MinRear {
			pr.addf("MRL Rear Clearance (%smm) is below minimum (%smm).",
				formatMM(rear), formatMM(c.pol.Clearance.MinRear))
		}
	}
}
