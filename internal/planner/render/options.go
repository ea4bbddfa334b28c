package render

// ============================================================
// Drawing Options
// ============================================================

const (
	DefaultPlanTitle    = "LIFT SHAFT PLAN"
	DefaultSectionTitle = "LIFT SHAFT SECTION"
)

// Display переключатели слоёв чертежа. Неуказанные в запросе поля
// сохраняют значения DefaultDisplay, поэтому запрос декодируется поверх них.
type Display struct {
	Dimensions    bool `yaml:"dimensions" json:"dimensions"`
	Centerlines   bool `yaml:"centerlines" json:"centerlines"`
	Brackets      bool `yaml:"brackets" json:"brackets"`
	Car           bool `yaml:"car" json:"car"`
	Doors         bool `yaml:"doors" json:"doors"`
	DoorPanels    bool `yaml:"door_panels" json:"door_panels"`
	Capacity      bool `yaml:"capacity" json:"capacity"`
	Accessibility bool `yaml:"accessibility" json:"accessibility"`
	LiftLabels    bool `yaml:"lift_labels" json:"lift_labels"`
	Hatching      bool `yaml:"hatching" json:"hatching"`
	Pit           bool `yaml:"pit" json:"pit"`
	BreakLines    bool `yaml:"break_lines" json:"break_lines"`
	Machine       bool `yaml:"machine" json:"machine"`
}

func DefaultDisplay() Display {
	return Display{
		Dimensions:    true,
		Brackets:      true,
		Car:           true,
		Doors:         true,
		DoorPanels:    true,
		Capacity:      true,
		Accessibility: true,
		LiftLabels:    true,
		Hatching:      true,
		Pit:           true,
		BreakLines:    true,
		Machine:       true,
	}
}

// Options for one drawing. A zero Figure means the drawing's default size.
type Options struct {
	Title    string
	Subtitle string
	Display  Display
	Figure   Figure
	Palette  *Palette
}

func (o Options) palette() Palette {
	if o.Palette != nil {
		return *o.Palette
	}
	return DefaultPalette()
}

func (o Options) figure(def Figure) Figure {
	if o.Figure.DPI <= 0 || o.Figure.WidthIn <= 0 || o.Figure.HeightIn <= 0 {
		return def
	}
	return o.Figure
}

func (o Options) title(def string) string {
	if o.Title == "" {
		return def
	}
	return o.Title
}

// Text sizes in points.
const (
	dimensionTextSize = 6
	noteTextSize      = 6
	separatorTextSize = 5
	capacityTextSize  = 10
	liftLabelSize     = 8
	titleTextSize     = 14
	subtitleTextSize  = 10
)

// Line widths in points.
const (
	wallEdgeWidth    = 1.5
	hatchWidth       = 0.3
	dimensionWidth   = 0.5
	centerlineWidth  = 0.5
	carEdgeWidth     = 1.0
	bracketEdgeWidth = 0.8
	doorEdgeWidth    = 0.8
	doorPanelWidth   = 1.5
	doorFrameWidth   = 0.8
	panelLineWidth   = 0.5
	railEdgeWidth    = 0.8
	breakLineWidth   = 1.0
)

var (
	dashed         = []float64{4, 2}
	centerlineDash = []float64{5, 3}
)

// Distances in world millimetres.
const (
	hatchStep       = 120
	centerlineExtra = 100
	titleGap        = 350
	subtitleGap     = 250
	sceneMargin     = 300
	noteRun         = 900
)
