package policy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Policy Table
// ============================================================

// Policy собирает все числовые правила и размеры условных обозначений.
// После загрузки таблица только читается и может разделяться между запросами.
type Policy struct {
	Defaults   Defaults       `yaml:"defaults" json:"defaults"`
	Car        CarRules       `yaml:"car" json:"car"`
	Doors      DoorRules      `yaml:"doors" json:"doors"`
	Clearance  ClearanceRules `yaml:"clearance" json:"clearance"`
	Brackets   BracketRules   `yaml:"brackets" json:"brackets"`
	Fire       FireRules      `yaml:"fire" json:"fire"`
	Separators SeparatorRules `yaml:"separators" json:"separators"`
	Symbols    Symbols        `yaml:"symbols" json:"symbols"`
	Annotation Annotation     `yaml:"annotation" json:"annotation"`
	Section    SectionRules   `yaml:"section" json:"section"`
}

type Size struct {
	W float64 `yaml:"width" json:"width"`
	H float64 `yaml:"height" json:"height"`
}

type CabinSize struct {
	Width float64 `yaml:"width" json:"width"`
	Depth float64 `yaml:"depth" json:"depth"`
}

func (c CabinSize) String() string {
	return fmt.Sprintf("%gx%g", c.Width, c.Depth)
}

// Defaults are used for inputs left unset.
type Defaults struct {
	FinishedCarWidth   float64 `yaml:"finished_car_width" json:"finished_car_width"`
	FinishedCarDepth   float64 `yaml:"finished_car_depth" json:"finished_car_depth"`
	WallThickness      float64 `yaml:"wall_thickness" json:"wall_thickness"`
	DoorWidth          float64 `yaml:"door_width" json:"door_width"`
	DoorHeight         float64 `yaml:"door_height" json:"door_height"`
	OpeningWidth       float64 `yaml:"structural_opening_width" json:"structural_opening_width"`
	OpeningHeight      float64 `yaml:"structural_opening_height" json:"structural_opening_height"`
	DoorPanelThickness float64 `yaml:"door_panel_thickness" json:"door_panel_thickness"`
	DoorExtension      float64 `yaml:"door_extension" json:"door_extension"`
	CWBracketWidth     float64 `yaml:"cw_bracket_width" json:"cw_bracket_width"`
	CarBracketWidth    float64 `yaml:"car_bracket_width" json:"car_bracket_width"`
	MRACarBracketWidth float64 `yaml:"mra_car_bracket_width" json:"mra_car_bracket_width"`
	MRACWBracketDepth  float64 `yaml:"mra_cw_bracket_depth" json:"mra_cw_bracket_depth"`
	LobbyWidth         float64 `yaml:"lobby_width" json:"lobby_width"`
	PitDepth           float64 `yaml:"pit_depth" json:"pit_depth"`
	OverheadClearance  float64 `yaml:"overhead_clearance" json:"overhead_clearance"`
	TravelHeight       float64 `yaml:"travel_height" json:"travel_height"`
	FloorHeight        float64 `yaml:"floor_height" json:"floor_height"`
	CarInteriorHeight  float64 `yaml:"car_interior_height" json:"car_interior_height"`
	MachineRoomHeight  float64 `yaml:"machine_room_height" json:"machine_room_height"`
}

type CarRules struct {
	WallThickness float64 `yaml:"wall_thickness" json:"wall_thickness"`
}

type DoorRules struct {
	Gap                 float64 `yaml:"gap" json:"gap"`
	TelescopicLeftExtra float64 `yaml:"telescopic_left_extra" json:"telescopic_left_extra"`
	TelescopicRight     float64 `yaml:"telescopic_right_extension" json:"telescopic_right_extension"`
}

type ClearanceRules struct {
	DefaultRear float64 `yaml:"default_rear" json:"default_rear"`
	MinRear     float64 `yaml:"min_rear" json:"min_rear"`
	MRACWGap    float64 `yaml:"mra_cw_gap" json:"mra_cw_gap"`
}

type BracketRules struct {
	MinCWWidth     float64 `yaml:"min_cw_width" json:"min_cw_width"`
	MinCarWidth    float64 `yaml:"min_car_width" json:"min_car_width"`
	MinMRACarWidth float64 `yaml:"min_mra_car_width" json:"min_mra_car_width"`
	MinMRACWDepth  float64 `yaml:"min_mra_cw_depth" json:"min_mra_cw_depth"`
}

type FireRules struct {
	CabinSizes              []CabinSize `yaml:"cabin_sizes" json:"cabin_sizes"`
	MinShaftWidth           float64     `yaml:"min_shaft_width" json:"min_shaft_width"`
	MinShaftWidthTelescopic float64     `yaml:"min_shaft_width_telescopic" json:"min_shaft_width_telescopic"`
	DoorWidth               float64     `yaml:"door_width" json:"door_width"`
}

type SeparatorRules struct {
	SteelBeamWidth  float64 `yaml:"steel_beam_width" json:"steel_beam_width"`
	MaxLiftsPerBank int     `yaml:"max_lifts_per_bank" json:"max_lifts_per_bank"`
	MaxBanks        int     `yaml:"max_banks" json:"max_banks"`
}

// Symbols are the sizes of the decorative plan symbols.
type Symbols struct {
	BracketDepthRatio   float64 `yaml:"bracket_depth_ratio" json:"bracket_depth_ratio"`
	CWBox               Size    `yaml:"cw_box" json:"cw_box"`
	CWFrameThickness    float64 `yaml:"cw_frame_thickness" json:"cw_frame_thickness"`
	CWWeightWidthRatio  float64 `yaml:"cw_weight_width_ratio" json:"cw_weight_width_ratio"`
	CWWeightHeightRatio float64 `yaml:"cw_weight_height_ratio" json:"cw_weight_height_ratio"`
	CarBracketBox       Size    `yaml:"car_bracket_box" json:"car_bracket_box"`
	CWSideBracket       Size    `yaml:"cw_side_bracket" json:"cw_side_bracket"`
	MRACWFrameWidth     float64 `yaml:"mra_cw_frame_width" json:"mra_cw_frame_width"`
	MRACWFrameThickness float64 `yaml:"mra_cw_frame_thickness" json:"mra_cw_frame_thickness"`
	MRACWBox            Size    `yaml:"mra_cw_box" json:"mra_cw_box"`
	MRACarBracketBox    Size    `yaml:"mra_car_bracket_box" json:"mra_car_bracket_box"`
	DoorJamb            Size    `yaml:"door_jamb" json:"door_jamb"`

	// Направляющие: коробка на пунктире черновой кабины, от неё наружу T-профиль.
	GuideRailBox  Size `yaml:"guide_rail_box" json:"guide_rail_box"`
	GuideRailStem Size `yaml:"guide_rail_stem" json:"guide_rail_stem"`
	GuideRailBar  Size `yaml:"guide_rail_bar" json:"guide_rail_bar"`

	DoorFrameMargin   float64 `yaml:"door_frame_margin" json:"door_frame_margin"`
	DoorLeafDepth     float64 `yaml:"door_leaf_depth" json:"door_leaf_depth"`
	DoorPanels        int     `yaml:"door_panels" json:"door_panels"`
	AccessibilitySize float64 `yaml:"accessibility_size" json:"accessibility_size"`
}

// Annotation задаёт отступы размерных линий: offset = BaseOffset + (level-1)*LevelStep.
type Annotation struct {
	BaseOffset float64 `yaml:"base_offset" json:"base_offset"`
	LevelStep  float64 `yaml:"level_step" json:"level_step"`
	Overshoot  float64 `yaml:"overshoot" json:"overshoot"`
}

// Offset returns the distance of a dimension line at the given level from its edge.
func (a Annotation) Offset(level int) float64 {
	if level < 1 {
		level = 1
	}
	return a.BaseOffset + float64(level-1)*a.LevelStep
}

type SectionRules struct {
	GroundZoneHeight     float64 `yaml:"ground_zone_height" json:"ground_zone_height"`
	BreakZoneHeight      float64 `yaml:"break_zone_height" json:"break_zone_height"`
	TopZoneHeight        float64 `yaml:"top_zone_height" json:"top_zone_height"`
	MinLandingBand       float64 `yaml:"min_landing_band" json:"min_landing_band"`
	BreakLineGap         float64 `yaml:"break_line_gap" json:"break_line_gap"`
	BreakLineAmplitude   float64 `yaml:"break_line_amplitude" json:"break_line_amplitude"`
	BreakLineSegments    int     `yaml:"break_line_segments" json:"break_line_segments"`
	LandingDoorWidth     float64 `yaml:"landing_door_width" json:"landing_door_width"`
	LandingDoorExtension float64 `yaml:"landing_door_extension" json:"landing_door_extension"`
	SlabProtrusion       float64 `yaml:"slab_protrusion" json:"slab_protrusion"`
	BeamGap              float64 `yaml:"beam_gap" json:"beam_gap"`
	MRLMachineWidth      float64 `yaml:"mrl_machine_width_ratio" json:"mrl_machine_width_ratio"`
	MRLMachineHeight     float64 `yaml:"mrl_machine_height_ratio" json:"mrl_machine_height_ratio"`
	MRLBeamHeight        float64 `yaml:"mrl_beam_height_ratio" json:"mrl_beam_height_ratio"`
	MRLDuctHeight        float64 `yaml:"mrl_duct_height_ratio" json:"mrl_duct_height_ratio"`
	MRAMachineWidth      float64 `yaml:"mra_machine_width_ratio" json:"mra_machine_width_ratio"`
	MRAMachineHeight     float64 `yaml:"mra_machine_height_ratio" json:"mra_machine_height_ratio"`
	MRABeamHeight        float64 `yaml:"mra_beam_height_ratio" json:"mra_beam_height_ratio"`
}

// ============================================================
// Defaults & Loading
// ============================================================

// Default возвращает встроенную таблицу правил.
func Default() *Policy {
	return &Policy{
		Defaults: Defaults{
			FinishedCarWidth:   1900,
			FinishedCarDepth:   1600,
			WallThickness:      200,
			DoorWidth:          1100,
			DoorHeight:         2100,
			OpeningWidth:       1300,
			OpeningHeight:      2200,
			DoorPanelThickness: 150,
			DoorExtension:      100,
			CWBracketWidth:     625,
			CarBracketWidth:    375,
			MRACarBracketWidth: 325,
			MRACWBracketDepth:  400,
			LobbyWidth:         4000,
			PitDepth:           200,
			OverheadClearance:  4200,
			TravelHeight:       30000,
			FloorHeight:        3200,
			CarInteriorHeight:  2400,
			MachineRoomHeight:  3000,
		},
		Car: CarRules{WallThickness: 25},
		Doors: DoorRules{
			Gap:                 30,
			TelescopicLeftExtra: 100,
			TelescopicRight:     100,
		},
		Clearance: ClearanceRules{
			DefaultRear: 345,
			MinRear:     200,
			MRACWGap:    100,
		},
		Brackets: BracketRules{
			MinCWWidth:     625,
			MinCarWidth:    375,
			MinMRACarWidth: 325,
			MinMRACWDepth:  400,
		},
		Fire: FireRules{
			CabinSizes: []CabinSize{
				{Width: 1400, Depth: 2400},
				{Width: 1500, Depth: 2300},
				{Width: 1550, Depth: 2200},
			},
			MinShaftWidth:           2700,
			MinShaftWidthTelescopic: 2900,
			DoorWidth:               1200,
		},
		Separators: SeparatorRules{
			SteelBeamWidth:  150,
			MaxLiftsPerBank: 4,
			MaxBanks:        2,
		},
		Symbols: Symbols{
			BracketDepthRatio:   0.7,
			CWBox:               Size{W: 450, H: 1000},
			CWFrameThickness:    50,
			CWWeightWidthRatio:  0.35,
			CWWeightHeightRatio: 0.8,
			CarBracketBox:       Size{W: 275, H: 450},
			CWSideBracket:       Size{W: 130, H: 450},
			MRACWFrameWidth:     1100,
			MRACWFrameThickness: 40,
			MRACWBox:            Size{W: 900, H: 250},
			MRACarBracketBox:    Size{W: 200, H: 400},
			DoorJamb:            Size{W: 75, H: 50},
			GuideRailBox:        Size{W: 30, H: 300},
			GuideRailStem:       Size{W: 38, H: 25},
			GuideRailBar:        Size{W: 25, H: 75},
			DoorFrameMargin:     37.5,
			DoorLeafDepth:       75,
			DoorPanels:          2,
			AccessibilitySize:   150,
		},
		Annotation: Annotation{
			BaseOffset: 250,
			LevelStep:  300,
			Overshoot:  60,
		},
		Section: SectionRules{
			GroundZoneHeight:     4000,
			BreakZoneHeight:      1500,
			TopZoneHeight:        5000,
			MinLandingBand:       800,
			BreakLineGap:         200,
			BreakLineAmplitude:   50,
			BreakLineSegments:    6,
			LandingDoorWidth:     50,
			LandingDoorExtension: 100,
			SlabProtrusion:       400,
			BeamGap:              100,
			MRLMachineWidth:      0.85,
			MRLMachineHeight:     0.24,
			MRLBeamHeight:        0.007,
			MRLDuctHeight:        0.12,
			MRAMachineWidth:      0.9,
			MRAMachineHeight:     0.9,
			MRABeamHeight:        0.02,
		},
	}
}

// Clone returns a deep copy that can be modified without touching p.
func (p *Policy) Clone() (*Policy, error) {
	clone := new(Policy)
	if err := deepcopy.Copy(clone, p); err != nil {
		return nil, fmt.Errorf("copy policy: %w", err)
	}
	return clone, nil
}

// Load накладывает YAML-файл на копию встроенной таблицы.
// Ключи, отсутствующие в файле, сохраняют значения по умолчанию.
func Load(path string) (*Policy, error) {
	p, err := Default().Clone()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open policy: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode policy %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

// Validate проверяет, что таблица пригодна для построения чертежей.
func (p *Policy) Validate() error {
	switch {
	case p.Car.WallThickness < 0:
		return fmt.Errorf("car wall thickness must not be negative")
	case p.Doors.Gap < 0:
		return fmt.Errorf("door gap must not be negative")
	case p.Separators.MaxLiftsPerBank < 1:
		return fmt.Errorf("max lifts per bank must be at least 1")
	case p.Separators.MaxBanks < 1:
		return fmt.Errorf("max banks must be at least 1")
	case p.Separators.SteelBeamWidth <= 0:
		return fmt.Errorf("steel beam width must be positive")
	case p.Annotation.LevelStep <= 0:
		return fmt.Errorf("annotation level step must be positive")
	case p.Section.BreakLineSegments < 1:
		return fmt.Errorf("break line segments must be at least 1")
	case p.Symbols.DoorPanels < 1:
		return fmt.Errorf("door panels must be at least 1")
	}
	return nil
}

// FireCabinAllowed reports whether a finished cabin size is on the fire lift whitelist.
func (p *Policy) FireCabinAllowed(width, depth float64) bool {
	for _, size := range p.Fire.CabinSizes {
		if size.Width == width && size.Depth == depth {
			return true
		}
	}
	return false
}
