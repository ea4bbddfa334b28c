package lift

import (
	"math"

	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Separator Policy
// ============================================================

type SeparatorType string

const (
	SteelBeam SeparatorType = "steel_beam"
	RCCWall   SeparatorType = "rcc_wall"
)

// DetermineSeparatorType выбирает разделитель между соседними шахтами.
// Общая шахта без пожарных лифтов делится стальной балкой, всё остальное стеной RCC.
func DetermineSeparatorType(lifts []*Config, commonShaft bool) SeparatorType {
	if !commonShaft {
		return RCCWall
	}
	for _, l := range lifts {
		if l != nil && l.IsFire() {
			return RCCWall
		}
	}
	return SteelBeam
}

// ValidateFireLiftPositions requires every fire lift to lead its bank.
// Each misplaced fire lift is reported separately.
func ValidateFireLiftPositions(lifts []*Config) error {
	var pr problems
	checkFirePositions(lifts, &pr)
	if pr.err != nil {
		return &ArrangementError{err: pr.err}
	}
	return nil
}

func checkFirePositions(lifts []*Config, pr *problems) {
	for i, l := range lifts {
		if i > 0 && l != nil && l.IsFire() {
			pr.addf("Fire lift at position %d is invalid. Fire lifts must be at position 0 (first position).", i)
		}
	}
}

// ============================================================
// Bank
// ============================================================

type BankOptions struct {
	Number              int
	CommonShaft         bool
	WallThickness       float64
	SharedWallThickness float64
	SteelBeamWidth      float64
}

// Bank упорядоченная группа лифтов в общем строительном контуре.
type Bank struct {
	lifts              []*Config
	separator          SeparatorType
	separatorThickness float64
	wallThickness      float64
}

// NewBank проверяет правила расстановки и фиксирует тип разделителя.
func NewBank(lifts []*Config, opts BankOptions, pol *policy.Policy) (*Bank, error) {
	if pol == nil {
		pol = policy.Default()
	}

	var pr problems
	switch {
	case len(lifts) == 0:
		pr.addf("Bank %d has no lifts.", opts.Number)
	case len(lifts) > pol.Separators.MaxLiftsPerBank:
		pr.addf("Max %d lifts per bank (Bank %d has %d).", pol.Separators.MaxLiftsPerBank, opts.Number, len(lifts))
	}
	for i, l := range lifts {
		if l == nil {
			pr.addf("Lift at position %d of bank %d is missing.", i, opts.Number)
		}
	}
	if opts.WallThickness <= 0 {
		pr.addf("Wall Thickness must be positive, got %smm.", formatMM(opts.WallThickness))
	}
	if opts.SharedWallThickness < 0 || opts.SteelBeamWidth < 0 {
		pr.addf("Separator thickness must not be negative.")
	}
	checkFirePositions(lifts, &pr)
	if pr.err != nil {
		return nil, &ArrangementError{err: pr.err}
	}

	b := &Bank{
		lifts:         append([]*Config(nil), lifts...),
		separator:     DetermineSeparatorType(lifts, opts.CommonShaft),
		wallThickness: opts.WallThickness,
	}
	if b.separator == SteelBeam {
		b.separatorThickness = orDefault(opts.SteelBeamWidth, pol.Separators.SteelBeamWidth)
	} else {
		b.separatorThickness = orDefault(opts.SharedWallThickness, opts.WallThickness)
	}
	return b, nil
}

func (b *Bank) Len() int                    { return len(b.lifts) }
func (b *Bank) Lift(i int) *Config          { return b.lifts[i] }
func (b *Bank) Separator() SeparatorType    { return b.separator }
func (b *Bank) SeparatorThickness() float64 { return b.separatorThickness }
func (b *Bank) WallThickness() float64      { return b.wallThickness }

// Lifts returns the bank's lifts in order; the slice is a copy.
func (b *Bank) Lifts() []*Config {
	return append([]*Config(nil), b.lifts...)
}

func (b *Bank) ShaftWidths() []float64 {
	out := make([]float64, len(b.lifts))
	for i, l := range b.lifts {
		out[i] = l.ShaftWidth()
	}
	return out
}

func (b *Bank) ShaftDepths() []float64 {
	out := make([]float64, len(b.lifts))
	for i, l := range b.lifts {
		out[i] = l.ShaftDepth()
	}
	return out
}

func (b *Bank) MaxShaftDepth() float64 {
	m := 0.0
	for _, l := range b.lifts {
		m = math.Max(m, l.ShaftDepth())
	}
	return m
}

// Width is the outer width: two outer walls, every shaft and the separators between them.
func (b *Bank) Width() float64 {
	w := 2 * b.wallThickness
	for _, sw := range b.ShaftWidths() {
		w += sw
	}
	return w + float64(len(b.lifts)-1)*b.separatorThickness
}

// Depth is the outer depth of the deepest shaft.
func (b *Bank) Depth() float64 {
	return b.MaxShaftDepth() + 2*b.wallThickness
}

// ShaftLeft returns the x of lift i's interior left face, measured from the bank's outer left face.
func (b *Bank) ShaftLeft(i int) float64 {
	x := b.wallThickness
	for j := 0; j < i; j++ {
		x += b.lifts[j].ShaftWidth() + b.separatorThickness
	}
	return x
}
