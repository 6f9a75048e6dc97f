package farm

import (
	"fmt"

	"github.com/google/uuid"
)

// BuildingKind identifies a building type.
type BuildingKind string

const (
	Field BuildingKind = "field"
	Barn  BuildingKind = "barn"
)

// BuildingSpec holds the fixed parameters of a building type.
type BuildingSpec struct {
	Kind               BuildingKind   `yaml:"kind"`
	Name               string         `yaml:"name"`
	BuyPrice           float64        `yaml:"buy_price"`
	MaxLevel           int            `yaml:"max_level"`
	BaseUpgradePrice   float64        `yaml:"base_upgrade_price"`
	UpgradeCoefficient float64        `yaml:"upgrade_coefficient"`
	BaseSlots          int            `yaml:"base_slots"`
	SlotGrowth         int            `yaml:"slot_growth"`
	Accepts            []CreatureKind `yaml:"accepts"`
}

// Spec returns the catalog entry for the kind. Unknown kinds yield a zero spec.
func (k BuildingKind) Spec() BuildingSpec {
	return defaultCatalog.buildings[k]
}

// Name returns the display name, or the raw tag for unknown kinds.
func (k BuildingKind) Name() string {
	if spec, ok := defaultCatalog.buildings[k]; ok {
		return spec.Name
	}
	return string(k)
}

// Accepts reports whether buildings of this kind can house the creature kind.
func (k BuildingKind) Accepts(kind CreatureKind) bool {
	for _, accepted := range k.Spec().Accepts {
		if accepted == kind {
			return true
		}
	}
	return false
}

// Building is a capacity-limited container of creatures.
type Building struct {
	ID        string
	Kind      BuildingKind
	Level     int
	Slots     int
	Occupants []*Creature
}

// NewBuilding creates a level 1 building of the given kind.
func NewBuilding(kind BuildingKind) (*Building, error) {
	spec, err := defaultCatalog.Building(kind)
	if err != nil {
		return nil, err
	}
	return &Building{
		ID:    uuid.NewString(),
		Kind:  kind,
		Level: 1,
		Slots: spec.BaseSlots,
	}, nil
}

// SlotsAvailable is the number of free slots.
func (b *Building) SlotsAvailable() int {
	return b.Slots - len(b.Occupants)
}

// UpgradePrice is the cost of going from the current level to the next.
func (b *Building) UpgradePrice() float64 {
	spec := b.Kind.Spec()
	return spec.BaseUpgradePrice * float64(b.Level) * spec.UpgradeCoefficient
}

// MaxLevel reports whether the building can no longer be upgraded.
func (b *Building) MaxLevel() bool {
	return b.Level >= b.Kind.Spec().MaxLevel
}

// Upgrade raises the level by one and adds the per-level slot growth.
func (b *Building) Upgrade() error {
	if b.MaxLevel() {
		return fmt.Errorf("%w: %s is level %d", ErrMaxLevelReached, b.Kind.Name(), b.Level)
	}
	b.Level++
	b.Slots += b.Kind.Spec().SlotGrowth
	return nil
}

// PlaceCreature appends the creature to the occupants.
func (b *Building) PlaceCreature(c *Creature) error {
	if !b.Kind.Accepts(c.Kind) {
		return fmt.Errorf("%w: %s cannot live in a %s", ErrWrongCreatureKind, c.Kind.Name(), b.Kind.Name())
	}
	if b.SlotsAvailable() <= 0 {
		return fmt.Errorf("%w: %s is full", ErrNoSpaceAvailable, b.Kind.Name())
	}
	for _, existing := range b.Occupants {
		if existing == c {
			return nil
		}
	}
	b.Occupants = append(b.Occupants, c)
	return nil
}

// Creature finds an occupant by id.
func (b *Building) Creature(id string) (*Creature, bool) {
	for _, c := range b.Occupants {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// RemoveCreature drops the occupant with the given id, keeping order.
func (b *Building) RemoveCreature(id string) bool {
	for i, c := range b.Occupants {
		if c.ID == id {
			b.Occupants = append(b.Occupants[:i], b.Occupants[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Building) String() string {
	return fmt.Sprintf("%s - level %d (%d of %d slots free)", b.Kind.Name(), b.Level, b.SlotsAvailable(), b.Slots)
}
