package section

import (
	"math"

	"go.uber.org/zap"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Section Layout
// ============================================================

// Горизонтальная ось разреза это глубина шахты: x=0 наружная грань стены с дверями.
// y=0 чистый пол нижней остановки, приямок ниже нуля.

type WallKind string

const (
	DoorWall        WallKind = "door_wall"
	BackWall        WallKind = "back_wall"
	PitSlab         WallKind = "pit_slab"
	RoofSlab        WallKind = "roof_slab"
	MachineRoomSlab WallKind = "machine_room_slab"
)

type Wall struct {
	Kind WallKind    `json:"kind"`
	Rect models.Rect `json:"rect"`
}

type Layout struct {
	Lift   *lift.Config `json:"-"`
	Config *Config      `json:"-"`

	WallThickness float64 `json:"wall_thickness"`
	ShaftDepth    float64 `json:"shaft_depth"`
	TotalWidth    float64 `json:"total_width"`

	PitFloor    float64 `json:"pit_floor"`
	Ground      float64 `json:"ground"`
	BreakBottom float64 `json:"break_bottom"`
	BreakTop    float64 `json:"break_top"`
	TopLevel    float64 `json:"top_level"`
	OverheadTop float64 `json:"overhead_top"`
	// Top is the highest built edge: roof slab or machine room ceiling.
	Top float64 `json:"top"`

	Interior     models.Rect      `json:"interior"`
	Walls        []Wall           `json:"walls"`
	Openings     [2]models.Rect   `json:"openings"`
	LandingDoors [2]models.Rect   `json:"landing_doors"`
	LandingSlabs [2]models.Rect   `json:"landing_slabs"`
	Car          models.Rect      `json:"car"`
	BreakLines   [][]models.Point `json:"break_lines"`

	Beam        models.Rect `json:"beam"`
	Machine     models.Rect `json:"machine"`
	Duct        models.Rect `json:"duct"`
	MachineRoom models.Rect `json:"machine_room"`

	Bounds models.Rect `json:"bounds"`
}

// Compute раскладывает разрез по зонам: приямок, нижняя остановка, разрыв,
// верхняя остановка, оголовок и для MRA машинное помещение.
func Compute(l *lift.Config, c *Config, pol *policy.Policy) *Layout {
	if pol == nil {
		pol = l.Policy()
	}
	rules := pol.Section
	wt := l.WallThickness()
	sd := l.ShaftDepth()
	pit := c.PitDepth()
	ohc := c.OverheadClearance()
	opening := c.OpeningHeight()
	ext := rules.LandingDoorExtension

	out := &Layout{
		Lift:          l,
		Config:        c,
		WallThickness: wt,
		ShaftDepth:    sd,
		TotalWidth:    sd + 2*wt,
		PitFloor:      -pit,
	}

	groundZone := math.Max(rules.GroundZoneHeight, opening+2*ext+rules.MinLandingBand)
	out.BreakBottom = groundZone
	out.BreakTop = groundZone + rules.BreakZoneHeight
	out.TopLevel = out.BreakTop + math.Max(rules.TopZoneHeight-ohc, rules.MinLandingBand)
	out.OverheadTop = out.TopLevel + ohc
	out.Top = out.OverheadTop + wt

	in0, in1 := wt, wt+sd
	out.Interior = models.RectFromCorners(in0, -pit, in1, out.OverheadTop)

	if l.Machine() == lift.MRA {
		floor := out.Top
		room := c.MachineRoomHeight()
		out.MachineRoom = models.RectFromCorners(in0, floor, in1, floor+room)
		out.Top = floor + room + wt
		out.Walls = append(out.Walls, Wall{MachineRoomSlab, models.RectFromCorners(0, floor+room, out.TotalWidth, out.Top)})
	}

	bottom := -pit - wt
	for i, level := range []float64{out.Ground, out.TopLevel} {
		out.Openings[i] = models.RectFromCorners(0, level, wt, level+opening)
		out.LandingDoors[i] = models.RectFromCorners(wt, level-ext, wt+rules.LandingDoorWidth, level+opening+ext)
		out.LandingSlabs[i] = models.RectFromCorners(-rules.SlabProtrusion, level-wt, 0, level)
	}

	out.Walls = append(out.Walls,
		Wall{DoorWall, models.RectFromCorners(0, bottom, wt, out.Ground)},
		Wall{DoorWall, models.RectFromCorners(0, out.Ground+opening, wt, out.TopLevel)},
		Wall{DoorWall, models.RectFromCorners(0, out.TopLevel+opening, wt, out.Top)},
		Wall{BackWall, models.RectFromCorners(in1, bottom, out.TotalWidth, out.Top)},
		Wall{PitSlab, models.RectFromCorners(0, bottom, out.TotalWidth, -pit)},
		Wall{RoofSlab, models.RectFromCorners(0, out.OverheadTop, out.TotalWidth, out.OverheadTop+wt)},
	)

	carFront := in0 + l.DoorZone()
	out.Car = models.RectFromCorners(carFront, out.Ground, carFront+l.UnfinishedCarDepth(), out.Ground+c.CarInteriorHeight())

	if l.Machine() == lift.MRA {
		mrh := c.MachineRoomHeight()
		ceiling := out.MachineRoom.MaxY()
		bh := mrh * rules.MRABeamHeight
		out.Beam = models.RectFromCorners(in0, ceiling-bh, in1, ceiling)
		mw, mh := sd*rules.MRAMachineWidth, mrh*rules.MRAMachineHeight
		mx := in0 + (sd-mw)/2
		out.Machine = models.RectFromCorners(mx, out.MachineRoom.MinY(), mx+mw, out.MachineRoom.MinY()+mh)
	} else {
		bh := ohc * rules.MRLBeamHeight
		beamTop := out.OverheadTop - rules.BeamGap
		out.Beam = models.RectFromCorners(in0, beamTop-bh, in1, beamTop)
		mw, mh := sd*rules.MRLMachineWidth, ohc*rules.MRLMachineHeight
		mx := in0 + (sd-mw)/2
		mTop := beamTop - bh - rules.BeamGap
		out.Machine = models.RectFromCorners(mx, mTop-mh, mx+mw, mTop)
		dh := ohc * rules.MRLDuctHeight
		mid := out.Machine.Center().Y
		out.Duct = models.RectFromCorners(in1, mid-dh/2, out.TotalWidth, mid+dh/2)
	}

	out.BreakLines = breakLines(-rules.SlabProtrusion, out.TotalWidth, out.BreakBottom+rules.BreakZoneHeight/2, rules)

	var e models.Extent
	for _, w := range out.Walls {
		e.AddRect(w.Rect)
	}
	for _, s := range out.LandingSlabs {
		e.AddRect(s)
	}
	out.Bounds, _ = e.Rect()

	zap.S().Debugf("[SECTION] %s lift, pit %.0f, travel %.0f, overhead %.0f, %d landings",
		l.Machine(), pit, c.TravelHeight(), ohc, c.Landings())
	return out
}

// breakLines returns two parallel zig-zags centred on y, separated by the break gap.
func breakLines(x0, x1, y float64, rules policy.SectionRules) [][]models.Point {
	n := rules.BreakLineSegments
	amp := rules.BreakLineAmplitude
	step := (x1 - x0) / float64(n)

	var out [][]models.Point
	for _, base := range []float64{y - rules.BreakLineGap/2, y + rules.BreakLineGap/2} {
		pts := []models.Point{{X: x0, Y: base}}
		for i := 0; i < n; i++ {
			a := x0 + float64(i)*step
			pts = append(pts,
				models.Point{X: a + step/4, Y: base + amp},
				models.Point{X: a + 3*step/4, Y: base - amp},
				models.Point{X: a + step, Y: base},
			)
		}
		out = append(out, pts)
	}
	return out
}
