package plan

import (
	"math"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Machine Strategies
// ============================================================

type BracketKind string

const (
	CWBracketZone  BracketKind = "cw_bracket"
	CarBracketZone BracketKind = "car_bracket"
	CWFrame        BracketKind = "cw_frame"
	CWWeight       BracketKind = "cw_weight"
	CarBracketBox  BracketKind = "car_bracket_box"
	CWSideBracket  BracketKind = "cw_side_bracket"
)

// shaftGeometry описывает шахту одного лифта в локальных координатах группы.
type shaftGeometry struct {
	cfg    *lift.Config
	mirror bool
	left   float64 // внутренняя левая грань
	wall   float64 // толщина передней стены
	width  float64
	depth  float64

	carX, carFront float64
}

func (g shaftGeometry) right() float64 { return g.left + g.width }
func (g shaftGeometry) front() float64 { return g.wall }
func (g shaftGeometry) back() float64  { return g.wall + g.depth }

type localBracket struct {
	kind BracketKind
	b    box
}

// machineStrategy отличает MRL и MRA: зазоры по бокам кабины и состав кронштейнов.
type machineStrategy interface {
	carSides(cfg *lift.Config, mirror bool) (left, right float64)
	brackets(g shaftGeometry, sym policy.Symbols) []localBracket
}

func strategyFor(m lift.MachineType) machineStrategy {
	if m == lift.MRA {
		return mraStrategy{}
	}
	return mrlStrategy{}
}

// ------------------------------------------------------------
// MRL
// ------------------------------------------------------------

type mrlStrategy struct{}

func (mrlStrategy) carSides(cfg *lift.Config, mirror bool) (float64, float64) {
	if mirror {
		return cfg.CarBracketWidth(), cfg.CWBracketWidth()
	}
	return cfg.CWBracketWidth(), cfg.CarBracketWidth()
}

// brackets кладёт противовес к левой стене (к правой у зеркального лифта),
// кронштейн кабины к противоположной.
func (mrlStrategy) brackets(g shaftGeometry, sym policy.Symbols) []localBracket {
	cwb, cb := g.cfg.CWBracketWidth(), g.cfg.CarBracketWidth()
	mid := g.front() + g.depth/2
	half := g.depth * sym.BracketDepthRatio / 2
	d0, d1 := mid-half, mid+half

	cwZone := box{g.left, d0, g.left + cwb, d1}
	carZone := box{g.right() - cb, d0, g.right(), d1}
	if g.mirror {
		cwZone = box{g.right() - cwb, d0, g.right(), d1}
		carZone = box{g.left, d0, g.left + cb, d1}
	}

	frameW := sym.CWBox.W - sym.CWFrameThickness
	frameX := g.left
	if g.mirror {
		frameX = g.right() - frameW
	}
	frame := box{frameX, mid - sym.CWBox.H/2, frameX + frameW, mid + sym.CWBox.H/2}

	weightW := sym.CWBox.W * sym.CWWeightWidthRatio
	weightH := sym.CWBox.H * sym.CWWeightHeightRatio
	wx := frame.x0 + (frameW-weightW)/2
	weight := box{wx, mid - weightH/2, wx + weightW, mid + weightH/2}

	boxW, boxH := sym.CarBracketBox.W, sym.CarBracketBox.H
	carBox := box{g.right() - boxW, mid - boxH/2, g.right(), mid + boxH/2}
	if g.mirror {
		carBox = box{g.left, mid - boxH/2, g.left + boxW, mid + boxH/2}
	}

	sideW, sideH := sym.CWSideBracket.W, sym.CWSideBracket.H
	sx := g.left + frameW
	if g.mirror {
		sx = g.right() - frameW - sideW
	}
	side := box{sx, mid - sideH/2, sx + sideW, mid + sideH/2}

	return []localBracket{
		{CWBracketZone, cwZone},
		{CarBracketZone, carZone},
		{CWFrame, frame},
		{CWWeight, weight},
		{CarBracketBox, carBox},
		{CWSideBracket, side},
	}
}

// ------------------------------------------------------------
// MRA
// ------------------------------------------------------------

type mraStrategy struct{}

func (mraStrategy) carSides(cfg *lift.Config, _ bool) (float64, float64) {
	return cfg.MRALeftBracket(), cfg.MRARightBracket()
}

// brackets кладёт противовес вдоль задней стены, кронштейны кабины по бокам.
func (mraStrategy) brackets(g shaftGeometry, sym policy.Symbols) []localBracket {
	cwd := g.cfg.MRACWBracketDepth()
	cwZone := box{g.left, g.back() - cwd, g.right(), g.back()}

	frameW := math.Min(sym.MRACWFrameWidth, g.width)
	fx := g.left + (g.width-frameW)/2
	frame := box{fx, cwZone.d0, fx + frameW, cwZone.d1}

	boxW := math.Min(sym.MRACWBox.W, frameW)
	boxH := math.Min(sym.MRACWBox.H, cwd)
	bx := fx + (frameW-boxW)/2
	bd := cwZone.d0 + (cwd-boxH)/2
	weight := box{bx, bd, bx + boxW, bd + boxH}

	carDepth := g.cfg.UnfinishedCarDepth()
	d0, d1 := g.carFront, g.carFront+carDepth
	mid := (d0 + d1) / 2
	left := box{g.left, d0, g.left + g.cfg.MRALeftBracket(), d1}
	right := box{g.right() - g.cfg.MRARightBracket(), d0, g.right(), d1}

	bw, bh := sym.MRACarBracketBox.W, sym.MRACarBracketBox.H
	leftBox := box{g.left, mid - bh/2, g.left + math.Min(bw, g.cfg.MRALeftBracket()), mid + bh/2}
	rightBox := box{g.right() - math.Min(bw, g.cfg.MRARightBracket()), mid - bh/2, g.right(), mid + bh/2}

	return []localBracket{
		{CWBracketZone, cwZone},
		{CWFrame, frame},
		{CWWeight, weight},
		{CarBracketZone, left},
		{CarBracketZone, right},
		{CarBracketBox, leftBox},
		{CarBracketBox, rightBox},
	}
}
