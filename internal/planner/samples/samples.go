package samples

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"shaft-planner/internal/planner/drawing"
)

// ============================================================
// Sample Catalogue
// ============================================================

//go:embed catalogue.yaml
var catalogueYAML []byte

type Sample struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Request     drawing.Request `yaml:"request" json:"request"`
}

var load = sync.OnceValues(func() ([]Sample, error) {
	var doc struct {
		Samples []Sample `yaml:"samples"`
	}
	if err := yaml.Unmarshal(catalogueYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse sample catalogue: %w", err)
	}
	seen := make(map[string]bool, len(doc.Samples))
	for _, s := range doc.Samples {
		if seen[s.Name] {
			return nil, fmt.Errorf("sample catalogue: duplicate name %q", s.Name)
		}
		seen[s.Name] = true
		if err := s.Request.Check(); err != nil {
			return nil, fmt.Errorf("sample %s: %w", s.Name, err)
		}
	}
	return doc.Samples, nil
})

// All returns the catalogue in file order. Callers must not modify the requests.
func All() ([]Sample, error) {
	return load()
}

// Get ищет образец по имени.
func Get(name string) (Sample, bool, error) {
	all, err := load()
	if err != nil {
		return Sample{}, false, err
	}
	for _, s := range all {
		if s.Name == name {
			return s, true, nil
		}
	}
	return Sample{}, false, nil
}
