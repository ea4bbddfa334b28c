package drawing

import (
	"fmt"
	"image"
	"io"

	"go.uber.org/zap"

	"shaft-planner/internal/planner/annotate"
	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/plan"
	"shaft-planner/internal/planner/policy"
	"shaft-planner/internal/planner/render"
	"shaft-planner/internal/planner/section"
)

// ============================================================
// Drawing Service
// ============================================================

// Service превращает запросы в геометрию, сцены и файлы.
// Состояния между вызовами нет, поэтому один Service обслуживает параллельные запросы.
type Service struct {
	pol       *policy.Policy
	assetsDir string
}

func NewService(pol *policy.Policy, assetsDir string) *Service {
	if pol == nil {
		pol = policy.Default()
	}
	return &Service{pol: pol, assetsDir: assetsDir}
}

func (s *Service) Policy() *policy.Policy { return s.pol }

type PlanResult struct {
	Layout     *plan.Layout  `json:"layout"`
	Dimensions *annotate.Set `json:"dimensions"`
}

type SectionResult struct {
	Layout     *section.Layout `json:"layout"`
	Dimensions *annotate.Set   `json:"dimensions"`
}

// Plan проверяет все лифты запроса, затем расстановку, и строит план с размерами.
func (s *Service) Plan(req *PlanRequest) (*PlanResult, error) {
	banks, err := s.lifts(req)
	if err != nil {
		return nil, err
	}
	l, err := plan.Compute(plan.Arrangement{
		Banks:               banks,
		CommonShaft:         req.CommonShaft,
		WallThickness:       req.WallThickness,
		SharedWallThickness: req.SharedWallThickness,
		SteelBeamWidth:      req.SteelBeamWidth,
		LobbyWidth:          req.LobbyWidth,
	}, s.pol)
	if err != nil {
		re := &RequestError{}
		re.add("", err, lift.Problems(err))
		return nil, re
	}
	return &PlanResult{Layout: l, Dimensions: annotate.Plan(l, s.pol)}, nil
}

func (s *Service) lifts(req *PlanRequest) ([][]*lift.Config, error) {
	var groups [][]lift.Params
	if len(req.Bank1) > 0 || len(req.Bank2) > 0 {
		groups = append(groups, req.Bank1)
	}
	if len(req.Bank2) > 0 {
		groups = append(groups, req.Bank2)
	}

	total := len(req.Bank1) + len(req.Bank2)
	re := &RequestError{}
	banks := make([][]*lift.Config, len(groups))
	for bi, params := range groups {
		for li, p := range params {
			c, err := lift.New(p, s.pol)
			if err != nil {
				prefix := ""
				if total > 1 {
					prefix = fmt.Sprintf("Bank %d Lift %d: ", bi+1, li+1)
				}
				re.add(prefix, err, lift.Problems(err))
				continue
			}
			banks[bi] = append(banks[bi], c)
		}
	}
	if err := re.orNil(); err != nil {
		return nil, err
	}
	return banks, nil
}

// Section проверяет лифт и параметры разреза и строит разрез с размерами.
func (s *Service) Section(req *SectionRequest) (*SectionResult, error) {
	re := &RequestError{}
	l, err := lift.New(req.Lift, s.pol)
	if err != nil {
		re.add("", err, lift.Problems(err))
		return nil, re
	}
	c, err := section.New(req.Section, l, s.pol)
	if err != nil {
		re.add("", err, lift.Problems(err))
		return nil, re
	}
	out := section.Compute(l, c, s.pol)
	return &SectionResult{Layout: out, Dimensions: annotate.Section(out, s.pol)}, nil
}

// ------------------------------------------------------------
// Scenes & Output
// ------------------------------------------------------------

func (s *Service) PlanScene(req *PlanRequest) (*render.Scene, error) {
	res, err := s.Plan(req)
	if err != nil {
		return nil, err
	}
	opts := render.Options{Title: req.Title, Subtitle: req.Subtitle, Display: req.Display}
	return render.PlanScene(res.Layout, res.Dimensions, opts), nil
}

func (s *Service) SectionScene(req *SectionRequest) (*render.Scene, error) {
	res, err := s.Section(req)
	if err != nil {
		return nil, err
	}
	opts := render.Options{Title: req.Title, Subtitle: req.Subtitle, Display: req.Display}
	var img image.Image
	if req.Display.Machine {
		img = render.LoadMachineImage(s.assetsDir, res.Layout.Lift.Machine())
	}
	return render.SectionScene(res.Layout, res.Dimensions, opts, img), nil
}

func (s *Service) Scene(req *Request) (*render.Scene, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	if req.Kind == KindSection {
		return s.SectionScene(req.Section)
	}
	return s.PlanScene(req.Plan)
}

// Render пишет чертёж в w в заданном формате.
func (s *Service) Render(req *Request, format render.Format, w io.Writer) error {
	scene, err := s.Scene(req)
	if err != nil {
		return err
	}
	if err := scene.Render(format, w); err != nil {
		return fmt.Errorf("render %s: %w", req.Kind, err)
	}
	zap.S().Debugf("[RENDER] %s drawing as %s, %d commands", req.Kind, format, len(scene.Commands))
	return nil
}

// ------------------------------------------------------------
// Validation Summary
// ------------------------------------------------------------

type LiftSummary struct {
	Bank           int     `yaml:"bank" json:"bank"`
	Index          int     `yaml:"index" json:"index"`
	ShaftWidth     float64 `yaml:"shaft_width" json:"shaft_width"`
	ShaftDepth     float64 `yaml:"shaft_depth" json:"shaft_depth"`
	MinShaftWidth  float64 `yaml:"min_shaft_width" json:"min_shaft_width"`
	MinShaftDepth  float64 `yaml:"min_shaft_depth" json:"min_shaft_depth"`
	RearClearance  float64 `yaml:"rear_clearance" json:"rear_clearance"`
	WidthBreakdown string  `yaml:"width_breakdown" json:"width_breakdown"`
	DepthBreakdown string  `yaml:"depth_breakdown" json:"depth_breakdown"`
}

type SectionSummary struct {
	TotalShaftHeight float64 `yaml:"total_shaft_height" json:"total_shaft_height"`
	Landings         int     `yaml:"landings" json:"landings"`
}

type Summary struct {
	Kind       Kind            `yaml:"kind" json:"kind"`
	Lifts      []LiftSummary   `yaml:"lifts" json:"lifts"`
	Separators []string        `yaml:"separators,omitempty" json:"separators,omitempty"`
	TotalWidth float64         `yaml:"total_width,omitempty" json:"total_width,omitempty"`
	TotalDepth float64         `yaml:"total_depth,omitempty" json:"total_depth,omitempty"`
	Section    *SectionSummary `yaml:"section,omitempty" json:"section,omitempty"`
}

// Validate computes the drawing without rendering it and reports the derived dimensions.
func (s *Service) Validate(req *Request) (*Summary, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	out := &Summary{Kind: req.Kind}
	if req.Kind == KindSection {
		res, err := s.Section(req.Section)
		if err != nil {
			return nil, err
		}
		out.Lifts = []LiftSummary{summarize(1, 0, res.Layout.Lift)}
		out.Section = &SectionSummary{
			TotalShaftHeight: res.Layout.Config.TotalShaftHeight(),
			Landings:         res.Layout.Config.Landings(),
		}
		return out, nil
	}

	res, err := s.Plan(req.Plan)
	if err != nil {
		return nil, err
	}
	for _, b := range res.Layout.Banks {
		for _, ll := range b.Lifts {
			out.Lifts = append(out.Lifts, summarize(b.Number, ll.Index, ll.Config))
		}
		for _, sep := range b.Separators {
			out.Separators = append(out.Separators, string(sep.Type))
		}
	}
	out.TotalWidth = res.Layout.TotalWidth
	out.TotalDepth = res.Layout.TotalDepth
	return out, nil
}

func summarize(bank, index int, c *lift.Config) LiftSummary {
	return LiftSummary{
		Bank:           bank,
		Index:          index,
		ShaftWidth:     c.ShaftWidth(),
		ShaftDepth:     c.ShaftDepth(),
		MinShaftWidth:  c.MinShaftWidth(),
		MinShaftDepth:  c.MinShaftDepth(),
		RearClearance:  c.RearClearance(),
		WidthBreakdown: c.WidthBreakdown(),
		DepthBreakdown: c.DepthBreakdown(),
	}
}
