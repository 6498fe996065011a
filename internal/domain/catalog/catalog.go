package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Competency is a named capability domain with a one-line definition and a
// descriptive text per tier.
type Competency struct {
	Name       string
	Definition string
	Tiers      map[Tier]string
}

// Catalog exposes the fixed competency list, the rating scale and the
// percentage-to-tier mapping. It is immutable after construction.
type Catalog struct {
	scheme       Scheme
	competencies []Competency
	byName       map[string]int // name -> index into competencies
	scale        map[string]int // label -> ordinal value
	scaleMax     int
}

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithScheme selects the active tier boundary scheme.
func WithScheme(s Scheme) Option {
	return func(c *Catalog) {
		if s.name != "" {
			c.scheme = s
		}
	}
}

// catalogFile mirrors the YAML data file layout.
type catalogFile struct {
	Scale []struct {
		Label string `yaml:"label"`
		Value int    `yaml:"value"`
	} `yaml:"scale"`
	Competencies []struct {
		Name       string            `yaml:"name"`
		Definition string            `yaml:"definition"`
		Tiers      map[string]string `yaml:"tiers"`
	} `yaml:"competencies"`
}

// New builds a Catalog from the embedded data file.
func New(opts ...Option) (*Catalog, error) {
	return Parse(defaultCatalogYAML, opts...)
}

// Parse builds a Catalog from raw YAML catalog data.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseCatalog, err)
	}
	if len(f.Scale) == 0 || len(f.Competencies) == 0 {
		return nil, fmt.Errorf("%w: empty scale or competency list", ErrParseCatalog)
	}

	c := &Catalog{
		scheme: SchemeRevised,
		byName: make(map[string]int, len(f.Competencies)),
		scale:  make(map[string]int, len(f.Scale)),
	}

	for _, s := range f.Scale {
		if s.Label == "" || s.Value < 1 {
			return nil, fmt.Errorf("%w: bad scale entry %q=%d", ErrParseCatalog, s.Label, s.Value)
		}
		if _, dup := c.scale[s.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate scale label %q", ErrParseCatalog, s.Label)
		}
		c.scale[s.Label] = s.Value
		if s.Value > c.scaleMax {
			c.scaleMax = s.Value
		}
	}

	for _, comp := range f.Competencies {
		if comp.Name == "" {
			return nil, fmt.Errorf("%w: competency with empty name", ErrParseCatalog)
		}
		if _, dup := c.byName[comp.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate competency %q", ErrParseCatalog, comp.Name)
		}
		tiers := make(map[Tier]string, len(comp.Tiers))
		for label, text := range comp.Tiers {
			tiers[Tier(label)] = text
		}
		c.byName[comp.Name] = len(c.competencies)
		c.competencies = append(c.competencies, Competency{
			Name:       comp.Name,
			Definition: comp.Definition,
			Tiers:      tiers,
		})
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Competencies returns the competency names in catalog order.
func (c *Catalog) Competencies() []string {
	names := make([]string, len(c.competencies))
	for i, comp := range c.competencies {
		names[i] = comp.Name
	}
	return names
}

// Has reports whether the catalog defines the named competency.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Scale returns a copy of the label-to-value rating scale.
func (c *Catalog) Scale() map[string]int {
	out := make(map[string]int, len(c.scale))
	for k, v := range c.scale {
		out[k] = v
	}
	return out
}

// ScaleMax returns the highest value on the rating scale.
func (c *Catalog) ScaleMax() int { return c.scaleMax }

// Definition returns the one-line general definition for a competency.
// Unknown competencies yield an empty string.
func (c *Catalog) Definition(name string) string {
	i, ok := c.byName[name]
	if !ok {
		return ""
	}
	return c.competencies[i].Definition
}

// Description returns the descriptive text for a (competency, tier) pair.
// Absent combinations yield an empty string, never an error, so report
// rendering stays resilient to partial catalogs.
func (c *Catalog) Description(name string, tier Tier) string {
	i, ok := c.byName[name]
	if !ok {
		return ""
	}
	return c.competencies[i].Tiers[tier]
}

// TierFor maps an aggregate percentage to a tier using the active scheme.
func (c *Catalog) TierFor(percent float64) Tier {
	return c.scheme.TierFor(percent)
}

// SchemeName returns the name of the active boundary scheme.
func (c *Catalog) SchemeName() string { return c.scheme.Name() }
