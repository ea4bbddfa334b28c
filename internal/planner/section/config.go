package section

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/models"
	"shaft-planner/internal/planner/policy"
)

// ============================================================
// Section Config
// ============================================================

var ErrInvalidConfig = errors.New("invalid section config")

// Params вертикальные размеры разреза (мм). Ноль означает значение по умолчанию,
// кроме нуля, явно записанного в JSON/YAML. Высоты двери и проёма по умолчанию
// берутся из конфигурации лифта.
type Params struct {
	PitDepth          float64 `yaml:"pit_depth" json:"pit_depth"`
	OverheadClearance float64 `yaml:"overhead_clearance" json:"overhead_clearance"`
	TravelHeight      float64 `yaml:"travel_height" json:"travel_height"`
	FloorHeight       float64 `yaml:"floor_height" json:"floor_height"`
	CarInteriorHeight float64 `yaml:"car_interior_height" json:"car_interior_height"`
	DoorHeight        float64 `yaml:"door_height" json:"door_height"`
	OpeningHeight     float64 `yaml:"structural_opening_height" json:"structural_opening_height"`
	MachineRoomHeight float64 `yaml:"machine_room_height" json:"machine_room_height"`

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

func (p Params) MarshalJSON() ([]byte, error) {
	type plain Params
	data, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return p.zeros.TrimJSON(data)
}

// Config проверенные параметры разреза для конкретного лифта.
type Config struct {
	p Params
}

// New заполняет значения по умолчанию и проверяет разрез против лифта l.
func New(p Params, l *lift.Config, pol *policy.Policy) (*Config, error) {
	if l == nil {
		return nil, fmt.Errorf("section: lift config is required")
	}
	if pol == nil {
		pol = l.Policy()
	}
	d := pol.Defaults

	z := p.zeros
	p.PitDepth = z.Or("pit_depth", p.PitDepth, d.PitDepth)
	p.OverheadClearance = z.Or("overhead_clearance", p.OverheadClearance, d.OverheadClearance)
	p.TravelHeight = z.Or("travel_height", p.TravelHeight, d.TravelHeight)
	p.FloorHeight = z.Or("floor_height", p.FloorHeight, d.FloorHeight)
	p.CarInteriorHeight = z.Or("car_interior_height", p.CarInteriorHeight, d.CarInteriorHeight)
	p.DoorHeight = z.Or("door_height", p.DoorHeight, l.DoorHeight())
	p.OpeningHeight = z.Or("structural_opening_height", p.OpeningHeight, l.OpeningHeight())
	if l.Machine() == lift.MRA {
		p.MachineRoomHeight = z.Or("machine_room_height", p.MachineRoomHeight, d.MachineRoomHeight)
	}

	c := &Config{p: p}
	if err := c.validate(l); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Params() Params { return c.p }

func (c *Config) PitDepth() float64          { return c.p.PitDepth }
func (c *Config) OverheadClearance() float64 { return c.p.OverheadClearance }
func (c *Config) TravelHeight() float64      { return c.p.TravelHeight }
func (c *Config) FloorHeight() float64       { return c.p.FloorHeight }
func (c *Config) CarInteriorHeight() float64 { return c.p.CarInteriorHeight }
func (c *Config) DoorHeight() float64        { return c.p.DoorHeight }
func (c *Config) OpeningHeight() float64     { return c.p.OpeningHeight }
func (c *Config) MachineRoomHeight() float64 { return c.p.MachineRoomHeight }

// TotalShaftHeight is pit + travel + overhead, without the machine room.
func (c *Config) TotalShaftHeight() float64 {
	return c.p.PitDepth + c.p.TravelHeight + c.p.OverheadClearance
}

// Landings is the number of served levels, never fewer than two.
func (c *Config) Landings() int {
	n := int(math.Floor(c.p.TravelHeight/c.p.FloorHeight)) + 1
	if n < 2 {
		return 2
	}
	return n
}

// ============================================================
// Validation
// ============================================================

func (c *Config) validate(l *lift.Config) error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}
	p := c.p

	fields := []struct {
		name  string
		value float64
	}{
		{"Pit Depth", p.PitDepth},
		{"Overhead Clearance", p.OverheadClearance},
		{"Travel Height", p.TravelHeight},
		{"Floor Height", p.FloorHeight},
		{"Car Interior Height", p.CarInteriorHeight},
		{"Door Height", p.DoorHeight},
		{"Structural Opening Height", p.OpeningHeight},
	}
	finite := true
	for _, f := range append(fields, struct {
		name  string
		value float64
	}{"Machine Room Height", p.MachineRoomHeight}) {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			add("%s must be a finite number, got %s.", f.name, formatMM(f.value))
			finite = false
		}
	}
	if !finite {
		return &ValidationError{err: errs}
	}
	for _, f := range fields {
		if f.value <= 0 {
			add("%s must be positive, got %smm.", f.name, formatMM(f.value))
		}
	}
	if l.Machine() == lift.MRA && p.MachineRoomHeight <= 0 {
		add("Machine Room Height must be positive for MRA lifts, got %smm.", formatMM(p.MachineRoomHeight))
	}
	if p.FloorHeight > 0 && p.TravelHeight > 0 && p.TravelHeight < p.FloorHeight {
		add("Travel Height (%smm) is less than one Floor Height (%smm).", formatMM(p.TravelHeight), formatMM(p.FloorHeight))
	}
	if p.DoorHeight > p.OpeningHeight {
		add("Door Height (%smm) exceeds Structural Opening Height (%smm).", formatMM(p.DoorHeight), formatMM(p.OpeningHeight))
	}
	if p.OverheadClearance > 0 && p.OpeningHeight >= p.OverheadClearance {
		add("Structural Opening Height (%smm) must be below Overhead Clearance (%smm).", formatMM(p.OpeningHeight), formatMM(p.OverheadClearance))
	}

	if errs != nil {
		return &ValidationError{err: errs}
	}
	return nil
}

// ValidationError перечисляет нарушенные правила разреза.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("section config validation failed:")
	for _, msg := range e.Problems() {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *ValidationError) Problems() []string {
	errs := multierr.Errors(e.err)
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidConfig }

func (e *ValidationError) Unwrap() []error { return multierr.Errors(e.err) }

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
