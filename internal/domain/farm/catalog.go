package farm

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the capability table for every kind known to the game. It is
// decoded once from the embedded catalog.yaml and never mutated afterwards.
type Catalog struct {
	Products   []ProductSpec             `yaml:"products"`
	Categories map[Category]NeedsProfile `yaml:"categories"`
	Creatures  []CreatureSpec            `yaml:"creatures"`
	Buildings  []BuildingSpec            `yaml:"buildings"`

	products  map[ProductKind]ProductSpec
	creatures map[CreatureKind]CreatureSpec
	buildings map[BuildingKind]BuildingSpec
}

var defaultCatalog = mustParseCatalog(catalogYAML)

// DefaultCatalog returns the catalog shipped with the game.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func mustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) index() error {
	c.products = make(map[ProductKind]ProductSpec, len(c.Products))
	for _, p := range c.Products {
		if p.Kind == "" {
			return fmt.Errorf("catalog: product without kind")
		}
		if _, dup := c.products[p.Kind]; dup {
			return fmt.Errorf("catalog: duplicate product %q", p.Kind)
		}
		if p.BuyPrice < 0 {
			return fmt.Errorf("catalog: product %q has negative price", p.Kind)
		}
		c.products[p.Kind] = p
	}

	for _, cat := range []Category{CategoryPlant, CategoryAnimal} {
		profile, ok := c.Categories[cat]
		if !ok {
			return fmt.Errorf("catalog: missing needs profile for %s", cat)
		}
		if !(profile.CriticalNeeds <= profile.FilledNeeds && profile.FilledNeeds <= profile.FullNeeds) {
			return fmt.Errorf("catalog: needs profile for %s is not ordered", cat)
		}
	}

	c.creatures = make(map[CreatureKind]CreatureSpec, len(c.Creatures))
	for i := range c.Creatures {
		spec := &c.Creatures[i]
		if _, dup := c.creatures[spec.Kind]; dup {
			return fmt.Errorf("catalog: duplicate creature %q", spec.Kind)
		}
		profile, ok := c.Categories[spec.Category]
		if !ok {
			return fmt.Errorf("catalog: creature %q has unknown category %q", spec.Kind, spec.Category)
		}
		if _, ok := c.products[spec.Produces]; !ok {
			return fmt.Errorf("catalog: creature %q produces unknown product %q", spec.Kind, spec.Produces)
		}
		if _, ok := c.products[spec.Needs]; !ok {
			return fmt.Errorf("catalog: creature %q needs unknown product %q", spec.Kind, spec.Needs)
		}
		if spec.MaxAge <= spec.InitialAge+1 {
			return fmt.Errorf("catalog: creature %q dies before its first day", spec.Kind)
		}
		spec.NeedsProfile = profile
		c.creatures[spec.Kind] = *spec
	}

	c.buildings = make(map[BuildingKind]BuildingSpec, len(c.Buildings))
	for _, b := range c.Buildings {
		if _, dup := c.buildings[b.Kind]; dup {
			return fmt.Errorf("catalog: duplicate building %q", b.Kind)
		}
		if b.MaxLevel < 1 || b.BaseSlots < 1 {
			return fmt.Errorf("catalog: building %q needs a positive max level and slot count", b.Kind)
		}
		for _, kind := range b.Accepts {
			if _, ok := c.creatures[kind]; !ok {
				return fmt.Errorf("catalog: building %q accepts unknown creature %q", b.Kind, kind)
			}
		}
		c.buildings[b.Kind] = b
	}

	return nil
}

// Product looks up a product kind.
func (c *Catalog) Product(kind ProductKind) (ProductSpec, error) {
	spec, ok := c.products[kind]
	if !ok {
		return ProductSpec{}, fmt.Errorf("%w: product %q", ErrUnknownKind, kind)
	}
	return spec, nil
}

// Creature looks up a creature kind.
func (c *Catalog) Creature(kind CreatureKind) (CreatureSpec, error) {
	spec, ok := c.creatures[kind]
	if !ok {
		return CreatureSpec{}, fmt.Errorf("%w: creature %q", ErrUnknownKind, kind)
	}
	return spec, nil
}

// Building looks up a building kind.
func (c *Catalog) Building(kind BuildingKind) (BuildingSpec, error) {
	spec, ok := c.buildings[kind]
	if !ok {
		return BuildingSpec{}, fmt.Errorf("%w: building %q", ErrUnknownKind, kind)
	}
	return spec, nil
}
