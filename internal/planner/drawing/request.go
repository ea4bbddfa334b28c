package drawing

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/render"
	"shaft-planner/internal/planner/section"
)

// ============================================================
// Drawing Requests
// ============================================================

type Kind string

const (
	KindPlan    Kind = "plan"
	KindSection Kind = "section"
)

// PlanRequest план одной группы в линию или двух групп напротив через холл.
type PlanRequest struct {
	Bank1               []lift.Params  `yaml:"bank1" json:"bank1"`
	Bank2               []lift.Params  `yaml:"bank2,omitempty" json:"bank2,omitempty"`
	CommonShaft         bool           `yaml:"common_shaft" json:"common_shaft"`
	WallThickness       float64        `yaml:"wall_thickness,omitempty" json:"wall_thickness,omitempty"`
	SharedWallThickness float64        `yaml:"shared_wall_thickness,omitempty" json:"shared_wall_thickness,omitempty"`
	SteelBeamWidth      float64        `yaml:"steel_beam_width,omitempty" json:"steel_beam_width,omitempty"`
	LobbyWidth          float64        `yaml:"lobby_width,omitempty" json:"lobby_width,omitempty"`
	Title               string         `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle            string         `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Display             render.Display `yaml:"display" json:"display"`
}

// SectionRequest разрез одного лифта.
type SectionRequest struct {
	Lift     lift.Params    `yaml:"lift" json:"lift"`
	Section  section.Params `yaml:"section" json:"section"`
	Title    string         `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string         `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Display  render.Display `yaml:"display" json:"display"`
}

// Request is either a plan or a section, selected by Kind.
type Request struct {
	Kind    Kind            `yaml:"kind" json:"kind"`
	Plan    *PlanRequest    `yaml:"plan,omitempty" json:"plan,omitempty"`
	Section *SectionRequest `yaml:"section,omitempty" json:"section,omitempty"`
}

func NewPlanRequest() PlanRequest {
	return PlanRequest{Display: render.DefaultDisplay()}
}

func NewSectionRequest() SectionRequest {
	return SectionRequest{Display: render.DefaultDisplay()}
}

// Display flags missing from the input keep their defaults.

func (r *PlanRequest) UnmarshalJSON(data []byte) error {
	type raw PlanRequest
	v := raw(NewPlanRequest())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = PlanRequest(v)
	return nil
}

func (r *PlanRequest) UnmarshalYAML(n *yaml.Node) error {
	type raw PlanRequest
	v := raw(NewPlanRequest())
	if err := n.Decode(&v); err != nil {
		return err
	}
	*r = PlanRequest(v)
	return nil
}

func (r *SectionRequest) UnmarshalJSON(data []byte) error {
	type raw SectionRequest
	v := raw(NewSectionRequest())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = SectionRequest(v)
	return nil
}

func (r *SectionRequest) UnmarshalYAML(n *yaml.Node) error {
	type raw SectionRequest
	v := raw(NewSectionRequest())
	if err := n.Decode(&v); err != nil {
		return err
	}
	*r = SectionRequest(v)
	return nil
}

// Check reports a request whose kind and body do not match.
func (r *Request) Check() error {
	switch r.Kind {
	case KindPlan:
		if r.Plan == nil {
			return fmt.Errorf("%w: kind plan needs a plan body", ErrMalformedRequest)
		}
	case KindSection:
		if r.Section == nil {
			return fmt.Errorf("%w: kind section needs a section body", ErrMalformedRequest)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedRequest, r.Kind)
	}
	return nil
}

// DecodeYAML reads a request file. A file without kind is taken as a plan
// when it has bank1 and as a section when it has lift.
func DecodeYAML(data []byte) (*Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if req.Kind == "" && req.Plan == nil && req.Section == nil {
		var head struct {
			Bank1 any `yaml:"bank1"`
			Lift  any `yaml:"lift"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		switch {
		case head.Bank1 != nil:
			p := NewPlanRequest()
			if err := yaml.Unmarshal(data, &p); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
			}
			req = Request{Kind: KindPlan, Plan: &p}
		case head.Lift != nil:
			s := NewSectionRequest()
			if err := yaml.Unmarshal(data, &s); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
			}
			req = Request{Kind: KindSection, Section: &s}
		}
	}
	if err := req.Check(); err != nil {
		return nil, err
	}
	return &req, nil
}
