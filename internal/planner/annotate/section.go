package annotate

import (
	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/policy"
	"shaft-planner/internal/planner/section"
)

// ============================================================
// Section Dimensions
// ============================================================

// Section строит размеры разреза. Подписи показывают заданные значения,
// даже там, где середина шахты скрыта разрывом.
func Section(s *section.Layout, pol *policy.Policy) *Set {
	if pol == nil {
		pol = policy.Default()
	}
	set := &Set{Overshoot: pol.Annotation.Overshoot}
	ann := pol.Annotation
	c := s.Config
	wt := s.WallThickness

	bottom := builder{set: set, ann: ann, edge: EdgeBottom, edgeAt: s.PitFloor - wt, dir: -1}
	bottom.add(1, 0, wt, mm(wt))
	bottom.add(1, wt, wt+s.ShaftDepth, "Shaft Depth "+mm(s.ShaftDepth))
	bottom.add(1, wt+s.ShaftDepth, s.TotalWidth, mm(wt))

	left := builder{set: set, ann: ann, edge: EdgeLeft, edgeAt: s.Bounds.MinX(), dir: -1, vertical: true}
	left.add(1, s.Ground, s.Ground+c.DoorHeight(), "Door Opening "+mm(c.DoorHeight()))
	left.add(2, s.Ground, s.Ground+c.OpeningHeight(), "Structural Opening "+mm(c.OpeningHeight()))
	left.add(3, s.PitFloor, s.Ground, "Pit Depth "+mm(c.PitDepth()))
	left.add(3, s.Ground, s.TopLevel, "Travel "+mm(c.TravelHeight()))
	left.add(3, s.TopLevel, s.OverheadTop, "Headroom "+mm(c.OverheadClearance()))
	if s.Lift.Machine() == lift.MRA {
		left.add(3, s.MachineRoom.MinY(), s.MachineRoom.MaxY(), "Machine Room "+mm(c.MachineRoomHeight()))
	}
	left.add(4, s.PitFloor, s.OverheadTop, "Total Shaft Height "+mm(c.TotalShaftHeight()))

	x := s.TotalWidth + ann.BaseOffset
	set.note(x, s.Ground, "Bottom most\nserving level", AnchorLeft)
	set.note(x, s.TopLevel, "Top Landing\nF.F.L.", AnchorLeft)
	if !s.Duct.Empty() {
		set.note(x, s.Duct.Center().Y, "AC Duct", AnchorLeft)
	}
	return set
}
