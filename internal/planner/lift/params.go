package lift

import (
	"encoding/json"

	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/policy"

	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Categories
// ============================================================

type LiftType string

const (
	Passenger LiftType = "passenger"
	Fire      LiftType = "fire"
)

type MachineType string

const (
	MRL MachineType = "mrl"
	MRA MachineType = "mra"
)

type DoorOpening string

const (
	CentreOpening     DoorOpening = "centre"
	TelescopicOpening DoorOpening = "telescopic"
)

// ============================================================
// Input Record
// ============================================================

// Params входные параметры одного лифта (мм).
// Нулевое числовое поле считается незаданным и заполняется значением по умолчанию;
// nil в указателе означает отсутствие переопределения. Ноль, явно записанный
// в JSON/YAML, сохраняется как есть и проверяется наравне с остальными значениями.
type Params struct {
	LiftType    LiftType    `yaml:"lift_type" json:"lift_type"`
	MachineType MachineType `yaml:"machine_type" json:"machine_type"`
	DoorOpening DoorOpening `yaml:"door_opening_type" json:"door_opening_type"`
	Capacity    *int        `yaml:"capacity,omitempty" json:"capacity,omitempty"`

	FinishedCarWidth float64 `yaml:"finished_car_width" json:"finished_car_width"`
	FinishedCarDepth float64 `yaml:"finished_car_depth" json:"finished_car_depth"`

	// MRL
	CWBracketWidth  float64 `yaml:"cw_bracket_width" json:"cw_bracket_width"`
	CarBracketWidth float64 `yaml:"car_bracket_width" json:"car_bracket_width"`

	// MRA
	MRALeftBracketWidth  float64 `yaml:"mra_car_bracket_width" json:"mra_car_bracket_width"`
	MRARightBracketWidth float64 `yaml:"mra_car_bracket_width_right" json:"mra_car_bracket_width_right"`
	MRACWBracketDepth    float64 `yaml:"mra_cw_bracket_depth" json:"mra_cw_bracket_depth"`

	WallThickness      float64 `yaml:"wall_thickness" json:"wall_thickness"`
	DoorWidth          float64 `yaml:"door_width" json:"door_width"`
	DoorHeight         float64 `yaml:"door_height" json:"door_height"`
	OpeningWidth       float64 `yaml:"structural_opening_width" json:"structural_opening_width"`
	OpeningHeight      float64 `yaml:"structural_opening_height" json:"structural_opening_height"`
	DoorPanelThickness float64 `yaml:"door_panel_thickness" json:"door_panel_thickness"`
	DoorExtension      float64 `yaml:"door_extension" json:"door_extension"`

	ShaftWidth               *float64 `yaml:"shaft_width,omitempty" json:"shaft_width,omitempty"`
	ShaftDepth               *float64 `yaml:"shaft_depth,omitempty" json:"shaft_depth,omitempty"`
	TelescopicLeftExtension  *float64 `yaml:"telescopic_left_extension,omitempty" json:"telescopic_left_extension,omitempty"`
	TelescopicRightExtension *float64 `yaml:"telescopic_right_extension,omitempty" json:"telescopic_right_extension,omitempty"`

	zeros models.ZeroKeys
}

func (p *Params) UnmarshalJSON(data []byte) error {
	type plain Params
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	zeros, err := models.ZeroKeysJSON(data)
	if err != nil {
		return err
	}
	*p = Params(v)
	p.zeros = zeros
	return nil
}

func (p *Params) UnmarshalYAML(n *yaml.Node) error {
	type plain Params
	var v plain
	if err := n.Decode(&v); err != nil {
		return err
	}
	*p = Params(v)
	p.zeros = models.ZeroKeysYAML(n)
	return nil
}

// MarshalJSON пишет только заданные поля, так что документ читается обратно без изменений.
func (p Params) MarshalJSON() ([]byte, error) {
	type plain Params
	data, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return p.zeros.TrimJSON(data)
}

// Clone returns a deep copy; pointer overrides are not shared with p.
func (p *Params) Clone() (Params, error) {
	var out Params
	if err := deepcopy.Copy(&out, p); err != nil {
		return Params{}, err
	}
	out.zeros = p.zeros.Clone()
	return out, nil
}

// withDefaults заполняет незаданные поля. Явно заданные значения не меняются.
func (p Params) withDefaults(pol *policy.Policy) Params {
	d := pol.Defaults

	if p.LiftType == "" {
		p.LiftType = Passenger
	}
	if p.MachineType == "" {
		p.MachineType = MRL
	}
	if p.DoorOpening == "" {
		p.DoorOpening = CentreOpening
	}

	z := p.zeros
	if p.FinishedCarWidth == 0 && p.FinishedCarDepth == 0 && !z.Has("finished_car_width") && !z.Has("finished_car_depth") &&
		p.LiftType == Fire && len(pol.Fire.CabinSizes) > 0 {
		p.FinishedCarWidth = pol.Fire.CabinSizes[0].Width
		p.FinishedCarDepth = pol.Fire.CabinSizes[0].Depth
	}
	p.FinishedCarWidth = z.Or("finished_car_width", p.FinishedCarWidth, d.FinishedCarWidth)
	p.FinishedCarDepth = z.Or("finished_car_depth", p.FinishedCarDepth, d.FinishedCarDepth)

	p.CWBracketWidth = z.Or("cw_bracket_width", p.CWBracketWidth, d.CWBracketWidth)
	p.CarBracketWidth = z.Or("car_bracket_width", p.CarBracketWidth, d.CarBracketWidth)
	p.MRALeftBracketWidth = z.Or("mra_car_bracket_width", p.MRALeftBracketWidth, d.MRACarBracketWidth)
	p.MRARightBracketWidth = z.Or("mra_car_bracket_width_right", p.MRARightBracketWidth, p.MRALeftBracketWidth)
	p.MRACWBracketDepth = z.Or("mra_cw_bracket_depth", p.MRACWBracketDepth, d.MRACWBracketDepth)

	doorWidth := d.DoorWidth
	if p.LiftType == Fire {
		doorWidth = pol.Fire.DoorWidth
	}
	p.WallThickness = z.Or("wall_thickness", p.WallThickness, d.WallThickness)
	p.DoorWidth = z.Or("door_width", p.DoorWidth, doorWidth)
	p.DoorHeight = z.Or("door_height", p.DoorHeight, d.DoorHeight)
	p.OpeningWidth = z.Or("structural_opening_width", p.OpeningWidth, d.OpeningWidth)
	p.OpeningHeight = z.Or("structural_opening_height", p.OpeningHeight, d.OpeningHeight)
	p.DoorPanelThickness = z.Or("door_panel_thickness", p.DoorPanelThickness, d.DoorPanelThickness)
	p.DoorExtension = z.Or("door_extension", p.DoorExtension, d.DoorExtension)

	if p.DoorOpening == TelescopicOpening {
		if p.TelescopicLeftExtension == nil {
			left := 0.5*p.DoorWidth + pol.Doors.TelescopicLeftExtra
			p.TelescopicLeftExtension = &left
		}
		if p.TelescopicRightExtension == nil {
			right := pol.Doors.TelescopicRight
			p.TelescopicRightExtension = &right
		}
	}
	return p
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
