package plan

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Layout Types
// ============================================================

type WallKind string

const (
	WallOuter     WallKind = "outer"
	WallFront     WallKind = "front"
	WallBack      WallKind = "back"
	WallSeparator WallKind = "separator"
	WallReturn    WallKind = "return"
)

type Wall struct {
	Kind WallKind    `json:"kind"`
	Rect models.Rect `json:"rect"`
}

type Bracket struct {
	Kind BracketKind `json:"kind"`
	Rect models.Rect `json:"rect"`
}

// Separator разделитель между лифтами Index-1 и Index.
// Length это внутренний пролёт, равный глубине более мелкой шахты.
type Separator struct {
	Index        int                `json:"index"`
	Type         lift.SeparatorType `json:"type"`
	Thickness    float64            `json:"thickness"`
	Rect         models.Rect        `json:"rect"`
	Length       float64            `json:"length"`
	ReturnLength float64            `json:"return_length"`
}

// LiftLayout is one lift's shaft interior with everything drawn inside it.
type LiftLayout struct {
	Index  int          `json:"index"`
	Config *lift.Config `json:"-"`
	Mirror bool         `json:"mirror"`

	Shaft         models.Rect `json:"shaft"`
	UnfinishedCar models.Rect `json:"unfinished_car"`
	FinishedCar   models.Rect `json:"finished_car"`
	CarCenterX    float64     `json:"car_center_x"`
	DoorCenterX   float64     `json:"door_center_x"`

	Opening     models.Rect    `json:"opening"`
	LandingDoor models.Rect    `json:"landing_door"`
	CarDoor     models.Rect    `json:"car_door"`
	Jambs       [2]models.Rect `json:"jambs"`
	Brackets    []Bracket      `json:"brackets"`
}

type BankLayout struct {
	Number     int           `json:"number"`
	Bank       *lift.Bank    `json:"-"`
	Frame      Frame         `json:"frame"`
	Outer      models.Rect   `json:"outer"`
	Lifts      []*LiftLayout `json:"lifts"`
	Walls      []Wall        `json:"walls"`
	Separators []Separator   `json:"separators"`
}

type Layout struct {
	Banks         []*BankLayout `json:"banks"`
	Facing        bool          `json:"facing"`
	WallThickness float64       `json:"wall_thickness"`
	LobbyWidth    float64       `json:"lobby_width"`
	Lobby         models.Rect   `json:"lobby"`
	TotalWidth    float64       `json:"total_width"`
	TotalDepth    float64       `json:"total_depth"`
	Bounds        models.Rect   `json:"bounds"`
}

// Lifts returns every lift of every bank, bank 1 first.
func (l *Layout) Lifts() []*LiftLayout {
	var out []*LiftLayout
	for _, b := range l.Banks {
		out = append(out, b.Lifts...)
	}
	return out
}

// ============================================================
// Compute
// ============================================================

// Arrangement входные данные плана: одна группа в линию или две напротив друг друга.
type Arrangement struct {
	Banks               [][]*lift.Config
	CommonShaft         bool
	WallThickness       float64
	SharedWallThickness float64
	SteelBeamWidth      float64
	LobbyWidth          float64
}

// Compute строит геометрию плана. Ошибки расстановки всех групп возвращаются вместе.
func Compute(a Arrangement, pol *policy.Policy) (*Layout, error) {
	if pol == nil {
		pol = policy.Default()
	}

	var msgs []string
	switch {
	case len(a.Banks) == 0:
		msgs = append(msgs, "At least one bank with one lift is required.")
	case len(a.Banks) > pol.Separators.MaxBanks:
		msgs = append(msgs, fmt.Sprintf("Max %d banks (got %d).", pol.Separators.MaxBanks, len(a.Banks)))
	}
	if a.LobbyWidth < 0 {
		msgs = append(msgs, fmt.Sprintf("Lobby Width must be positive, got %gmm.", a.LobbyWidth))
	}
	if len(msgs) > 0 {
		return nil, lift.NewArrangementError(msgs...)
	}

	wt := a.WallThickness
	if wt == 0 {
		wt = firstWallThickness(a.Banks, pol)
	}
	lobby := a.LobbyWidth
	if lobby == 0 {
		lobby = pol.Defaults.LobbyWidth
	}

	banks := make([]*lift.Bank, len(a.Banks))
	for i, lifts := range a.Banks {
		b, err := lift.NewBank(lifts, lift.BankOptions{
			Number:              i + 1,
			CommonShaft:         a.CommonShaft,
			WallThickness:       wt,
			SharedWallThickness: a.SharedWallThickness,
			SteelBeamWidth:      a.SteelBeamWidth,
		}, pol)
		if err != nil {
			msgs = append(msgs, lift.Problems(err)...)
			continue
		}
		banks[i] = b
	}
	if len(msgs) > 0 {
		return nil, lift.NewArrangementError(msgs...)
	}

	out := &Layout{
		Facing:        len(banks) == 2,
		WallThickness: wt,
	}
	for _, b := range banks {
		out.TotalWidth = math.Max(out.TotalWidth, b.Width())
	}

	frames := make([]Frame, len(banks))
	if out.Facing {
		back := banks[1].Depth()
		frames[1] = Frame{OffsetX: (out.TotalWidth - banks[1].Width()) / 2, Span: back, Flip: true}
		frames[0] = Frame{OffsetX: (out.TotalWidth - banks[0].Width()) / 2, BaseY: back + lobby, Span: banks[0].Depth()}
		out.LobbyWidth = lobby
		out.Lobby = models.Rect{X: 0, Y: back, W: out.TotalWidth, H: lobby}
		out.TotalDepth = back + lobby + banks[0].Depth()
	} else {
		frames[0] = Frame{OffsetX: (out.TotalWidth - banks[0].Width()) / 2, Span: banks[0].Depth()}
		out.TotalDepth = banks[0].Depth()
	}

	var ext models.Extent
	for i, b := range banks {
		bl := buildBank(i+1, b, frames[i], pol)
		out.Banks = append(out.Banks, bl)
		ext.AddRect(bl.Outer)
	}
	out.Bounds, _ = ext.Rect()

	zap.S().Debugf("[PLAN] %d bank(s), %d lift(s), %.0fx%.0f mm", len(out.Banks), len(out.Lifts()), out.TotalWidth, out.TotalDepth)
	return out, nil
}

func firstWallThickness(banks [][]*lift.Config, pol *policy.Policy) float64 {
	for _, lifts := range banks {
		for _, l := range lifts {
			if l != nil {
				return l.WallThickness()
			}
		}
	}
	return pol.Defaults.WallThickness
}

// buildBank раскладывает группу в локальных координатах и переводит её через frame.
func buildBank(number int, b *lift.Bank, f Frame, pol *policy.Policy) *BankLayout {
	bl := &BankLayout{
		Number: number,
		Bank:   b,
		Frame:  f,
		Outer:  f.Rect(0, 0, b.Width(), f.Span),
	}
	openings := make([][2]float64, b.Len())
	for i := 0; i < b.Len(); i++ {
		ll, opening := buildLift(i, b, f, pol)
		bl.Lifts = append(bl.Lifts, ll)
		openings[i] = opening
	}
	bl.Walls, bl.Separators = buildWalls(b, f, openings)
	return bl
}

// buildLift returns the lift layout and the local x range of its structural opening.
func buildLift(i int, b *lift.Bank, f Frame, pol *policy.Policy) (*LiftLayout, [2]float64) {
	cfg := b.Lift(i)
	wt := b.WallThickness()
	mirror := i%2 == 1
	strategy := strategyFor(cfg.Machine())

	g := shaftGeometry{
		cfg:    cfg,
		mirror: mirror,
		left:   b.ShaftLeft(i),
		wall:   wt,
		width:  cfg.ShaftWidth(),
		depth:  cfg.ShaftDepth(),
	}

	ucw, ucd := cfg.UnfinishedCarWidth(), cfg.UnfinishedCarDepth()
	left, right := strategy.carSides(cfg, mirror)
	g.carX = g.left + left + (g.width-left-right-ucw)/2
	g.carFront = wt + cfg.DoorZone()
	carCenter := g.carX + ucw/2

	fcw, fcd := cfg.FinishedCarWidth(), cfg.FinishedCarDepth()
	fx := carCenter - fcw/2

	doorCenter := carCenter
	if cfg.IsFire() {
		doorCenter = g.left + g.width/2
	}

	sow := cfg.OpeningWidth()
	ox0 := math.Max(g.left, doorCenter-sow/2)
	ox1 := math.Min(g.right(), doorCenter+sow/2)

	panel := cfg.DoorPanelThickness()
	gap := pol.Doors.Gap
	extL, extR := cfg.DoorStackExtents()

	jw, jh := pol.Symbols.DoorJamb.W, pol.Symbols.DoorJamb.H

	ll := &LiftLayout{
		Index:         i,
		Config:        cfg,
		Mirror:        mirror,
		Shaft:         f.box(box{g.left, g.front(), g.right(), g.back()}),
		UnfinishedCar: f.box(box{g.carX, g.carFront, g.carX + ucw, g.carFront + ucd}),
		FinishedCar:   f.box(box{fx, g.carFront, fx + fcw, g.carFront + fcd}),
		CarCenterX:    f.X(carCenter),
		DoorCenterX:   f.X(doorCenter),
		Opening:       f.box(box{ox0, 0, ox1, wt}),
		LandingDoor:   f.box(box{doorCenter - extL, wt, doorCenter + extR, wt + panel}),
		CarDoor:       f.box(box{doorCenter - extL, wt + panel + gap, doorCenter + extR, wt + 2*panel + gap}),
		Jambs: [2]models.Rect{
			f.box(box{ox0, wt - jh, ox0 + jw, wt}),
			f.box(box{ox1 - jw, wt - jh, ox1, wt}),
		},
	}
	for _, lb := range strategy.brackets(g, pol.Symbols) {
		ll.Brackets = append(ll.Brackets, Bracket{Kind: lb.kind, Rect: f.box(lb.b)})
	}
	return ll, [2]float64{ox0, ox1}
}
