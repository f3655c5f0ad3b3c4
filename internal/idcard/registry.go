package idcard

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed provinces.yaml
var embeddedProvinces []byte

// Unknown is returned by Registry.Lookup for codes that are not in the table.
// It is a normal outcome, not a validation failure.
const Unknown = "未知"

// Province is one top-level administrative division.
type Province struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Registry maps two-digit region codes to province names. The table is fixed
// at construction and never mutated, so a Registry is safe for concurrent use.
type Registry struct {
	names map[string]string
}

// NewRegistry builds a Registry from entries. Later entries win on duplicate
// codes.
func NewRegistry(entries []Province) *Registry {
	names := make(map[string]string, len(entries))
	for _, p := range entries {
		names[p.Code] = p.Name
	}
	return &Registry{names: names}
}

// LoadRegistry parses a YAML document of the form
//
//	provinces:
//	  - {code: "11", name: "北京市"}
//
// into a Registry.
func LoadRegistry(data []byte) (*Registry, error) {
	var doc struct {
		Provinces []Province `yaml:"provinces"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing province table: %w", err)
	}
	for _, p := range doc.Provinces {
		if len(p.Code) != 2 || p.Name == "" {
			return nil, fmt.Errorf("invalid province entry %q=%q", p.Code, p.Name)
		}
	}
	return NewRegistry(doc.Provinces), nil
}

var defaultRegistry = mustLoadRegistry(embeddedProvinces)

func mustLoadRegistry(data []byte) *Registry {
	r, err := LoadRegistry(data)
	if err != nil {
		panic(fmt.Sprintf("idcard: embedded province table: %v", err))
	}
	return r
}

// DefaultRegistry returns the registry built from the embedded GB/T 2260
// province table.
func DefaultRegistry() *Registry { return defaultRegistry }

// Lookup returns the province name for code, or Unknown.
func (r *Registry) Lookup(code string) string {
	if r == nil {
		return Unknown
	}
	if name, ok := r.names[code]; ok {
		return name
	}
	return Unknown
}

// Len reports the number of codes in the registry.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
