package annotate

import (
	"fmt"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/plan"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Plan Dimensions
// ============================================================

// Plan строит размеры плана. Порядок уровней на каждой грани фиксирован:
// задняя грань L1 шахта, L2 зазоры, L3 чистовая кабина, L4 черновая кабина и разделители;
// передняя грань L1 дверь, L2 проём, L3 общая ширина.
func Plan(l *plan.Layout, pol *policy.Policy) *Set {
	if pol == nil {
		pol = policy.Default()
	}
	set := &Set{Overshoot: pol.Annotation.Overshoot}
	ann := pol.Annotation

	for _, b := range l.Banks {
		f := b.Frame
		back := builder{set: set, ann: ann, edge: EdgeBack, edgeAt: f.BackY(), dir: f.Back()}
		front := builder{set: set, ann: ann, edge: EdgeFront, edgeAt: f.FrontY(), dir: -f.Back()}

		for i, ll := range b.Lifts {
			cfg := ll.Config
			back.add(1, ll.Shaft.MinX(), ll.Shaft.MaxX(), "Shaft Width "+mm(ll.Shaft.W))
			back.add(2, ll.Shaft.MinX(), ll.UnfinishedCar.MinX(), mm(ll.UnfinishedCar.MinX()-ll.Shaft.MinX()))
			back.add(2, ll.UnfinishedCar.MaxX(), ll.Shaft.MaxX(), mm(ll.Shaft.MaxX()-ll.UnfinishedCar.MaxX()))
			back.add(3, ll.FinishedCar.MinX(), ll.FinishedCar.MaxX(), "Finished Car Width "+mm(ll.FinishedCar.W))
			back.add(4, ll.UnfinishedCar.MinX(), ll.UnfinishedCar.MaxX(), "Unfinished Car Width "+mm(ll.UnfinishedCar.W))

			if i < len(b.Separators) {
				sep := b.Separators[i]
				back.add(4, sep.Rect.MinX(), sep.Rect.MaxX(), mm(sep.Thickness))
				if sep.Type == lift.SteelBeam {
					set.note(sep.Rect.Center().X, back.at(4)+f.Back()*ann.LevelStep/2, "Steel\nBeam", AnchorCenter)
				}
			}

			dw := cfg.DoorWidth()
			front.add(1, ll.DoorCenterX-dw/2, ll.DoorCenterX+dw/2,
				fmt.Sprintf("Door Width %s\nHeight %s", mm(dw), mm(cfg.DoorHeight())))
			front.add(2, ll.Opening.MinX(), ll.Opening.MaxX(),
				fmt.Sprintf("Structural Opening %s\nHeight %s", mm(ll.Opening.W), mm(cfg.OpeningHeight())))
		}
		if !l.Facing {
			front.add(3, b.Outer.MinX(), b.Outer.MaxX(), "Total Width "+mm(b.Outer.W))
		}

		first, last := b.Lifts[0], b.Lifts[len(b.Lifts)-1]
		left := builder{set: set, ann: ann, edge: EdgeLeft, edgeAt: b.Outer.MinX(), dir: -1, vertical: true}
		depthDims(left, first)
		if len(b.Lifts) > 1 && depthsDiffer(first, last) {
			right := builder{set: set, ann: ann, edge: EdgeRight, edgeAt: b.Outer.MaxX(), dir: 1, vertical: true}
			depthDims(right, last)
		}
	}

	if l.Facing {
		mid := l.Lobby.Center().Y
		lobby := builder{set: set, ann: ann, edge: EdgeLobby, edgeAt: mid, dir: 0}
		lobby.add(1, l.Lobby.MinX(), l.Lobby.MaxX(), "Total Width "+mm(l.TotalWidth))

		left := builder{set: set, ann: ann, edge: EdgeLeft, edgeAt: l.Bounds.MinX(), dir: -1, vertical: true}
		left.add(4, l.Lobby.MinY(), l.Lobby.MaxY(), "Lobby Depth "+mm(l.Lobby.H))
	}
	return set
}

func depthDims(b builder, ll *plan.LiftLayout) {
	b.add(1, ll.Shaft.MinY(), ll.Shaft.MaxY(), "Shaft Depth "+mm(ll.Shaft.H))
	b.add(2, ll.FinishedCar.MinY(), ll.FinishedCar.MaxY(), "Finished Car Depth "+mm(ll.FinishedCar.H))
	b.add(3, ll.UnfinishedCar.MinY(), ll.UnfinishedCar.MaxY(), "Unfinished Car Depth "+mm(ll.UnfinishedCar.H))
}

func depthsDiffer(a, b *plan.LiftLayout) bool {
	return a.Shaft.H != b.Shaft.H || a.FinishedCar.H != b.FinishedCar.H || a.UnfinishedCar.H != b.UnfinishedCar.H
}
