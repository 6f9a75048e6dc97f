package farm

import (
	"fmt"

	"github.com/google/uuid"
)

// CreatureKind identifies a species.
type CreatureKind string

const (
	Wheat  CreatureKind = "wheat"
	Corn   CreatureKind = "corn"
	Potato CreatureKind = "potato"
	Hen    CreatureKind = "hen"
	Sheep  CreatureKind = "sheep"
	Cow    CreatureKind = "cow"
)

// Category splits creatures into plants and animals.
type Category string

const (
	CategoryPlant  Category = "plant"
	CategoryAnimal Category = "animal"
)

// NeedsProfile holds the needs thresholds shared by a category.
type NeedsProfile struct {
	CriticalNeeds float64 `yaml:"critical_needs"`
	FilledNeeds   float64 `yaml:"filled_needs"`
	FullNeeds     float64 `yaml:"full_needs"`
}

// CreatureSpec holds the fixed parameters of a species.
type CreatureSpec struct {
	Kind             CreatureKind `yaml:"kind"`
	Name             string       `yaml:"name"`
	Category         Category     `yaml:"category"`
	BuyPrice         float64      `yaml:"buy_price"`
	InitialAge       int          `yaml:"initial_age"`
	InitialNeeds     float64      `yaml:"initial_needs"`
	MinProducingAge  int          `yaml:"min_producing_age"`
	MaxProducingAge  int          `yaml:"max_producing_age"`
	MaxAge           int          `yaml:"max_age"`
	ProductionPerDay float64      `yaml:"production_per_day"`
	MaxProductAmount float64      `yaml:"max_product_amount"`
	Produces         ProductKind  `yaml:"produces"`
	Needs            ProductKind  `yaml:"needs"`
	NeedsDecay       float64      `yaml:"needs_decay_per_day"`

	NeedsProfile `yaml:"-"`
}

// Spec returns the catalog entry for the kind. Unknown kinds yield a zero spec.
func (k CreatureKind) Spec() CreatureSpec {
	return defaultCatalog.creatures[k]
}

// Name returns the display name, or the raw tag for unknown kinds.
func (k CreatureKind) Name() string {
	if spec, ok := defaultCatalog.creatures[k]; ok {
		return spec.Name
	}
	return string(k)
}

// Valid reports whether the kind exists in the catalog.
func (k CreatureKind) Valid() bool {
	_, ok := defaultCatalog.creatures[k]
	return ok
}

// LifeState is the outcome of a creature's daily step.
type LifeState int

const (
	Alive LifeState = iota
	DeadOfStarvation
	DeadOfOldAge
)

func (s LifeState) String() string {
	switch s {
	case Alive:
		return "alive"
	case DeadOfStarvation:
		return "starvation"
	case DeadOfOldAge:
		return "old_age"
	default:
		return fmt.Sprintf("life_state(%d)", int(s))
	}
}

// Dead reports whether the state is terminal.
func (s LifeState) Dead() bool {
	return s == DeadOfStarvation || s == DeadOfOldAge
}

// Creature is one plant or animal living in a building.
type Creature struct {
	ID         string
	Kind       CreatureKind
	Age        int
	NeedsLevel float64
	Inventory  ProductStack
}

// NewCreature creates a creature at its species' starting age and needs level.
func NewCreature(kind CreatureKind) (*Creature, error) {
	spec, err := defaultCatalog.Creature(kind)
	if err != nil {
		return nil, err
	}
	return &Creature{
		ID:         uuid.NewString(),
		Kind:       kind,
		Age:        spec.InitialAge,
		NeedsLevel: spec.InitialNeeds,
		Inventory:  NewStack(spec.Produces, 0),
	}, nil
}

// Spec is shorthand for c.Kind.Spec().
func (c *Creature) Spec() CreatureSpec {
	return c.Kind.Spec()
}

// FillNeeds absorbs as much of the stack as the creature can take and
// returns what is left. The returned remainder plus the absorbed amount
// always equals stack.Quantity.
func (c *Creature) FillNeeds(stack ProductStack) (ProductStack, error) {
	spec := c.Spec()
	if stack.Kind != spec.Needs {
		return stack, fmt.Errorf("%w: %s needs %s, got %s", ErrWrongProductKind, spec.Name, spec.Needs, stack.Kind)
	}

	room := spec.FullNeeds - c.NeedsLevel
	if room < 0 {
		room = 0
	}

	if stack.Quantity > room {
		c.NeedsLevel += room
		return NewStack(stack.Kind, stack.Quantity-room), nil
	}

	c.NeedsLevel += stack.Quantity
	return NewStack(stack.Kind, 0), nil
}

// Harvest empties the creature's inventory and returns it.
func (c *Creature) Harvest() ProductStack {
	out := c.Inventory
	c.Inventory = NewStack(out.Kind, 0)
	return out
}

// NeedsFilled reports whether the creature is satisfied enough to produce.
func (c *Creature) NeedsFilled() bool {
	return c.NeedsLevel > c.Spec().FilledNeeds
}

// Starving reports whether the needs level fell below the critical threshold.
func (c *Creature) Starving() bool {
	return c.NeedsLevel < c.Spec().CriticalNeeds
}

// Producing reports whether the creature is strictly inside its producing age window.
func (c *Creature) Producing() bool {
	spec := c.Spec()
	return spec.MinProducingAge < c.Age && c.Age < spec.MaxProducingAge
}

// ProduceOneDay adds one day of output. The inventory is not clamped to
// MaxProductAmount, it only stops growing once it reaches it.
func (c *Creature) ProduceOneDay() {
	spec := c.Spec()
	if c.NeedsFilled() && c.Inventory.Quantity < spec.MaxProductAmount && c.Producing() {
		c.Inventory.Quantity += spec.ProductionPerDay
	}
}

// AdvanceOneDay runs the daily step. Death checks come first; a dead
// creature is left untouched and must be removed by the caller.
func (c *Creature) AdvanceOneDay() LifeState {
	spec := c.Spec()

	if c.Starving() {
		return DeadOfStarvation
	}
	if c.Age == spec.MaxAge-1 {
		return DeadOfOldAge
	}

	c.Age++
	c.ProduceOneDay()
	c.NeedsLevel -= spec.NeedsDecay

	return Alive
}

// Sellable reports whether the creature can be sold. Only animals can.
func (c *Creature) Sellable() bool {
	return c.Spec().Category == CategoryAnimal
}

// SellPrice is what a buyer pays for the creature right now.
func (c *Creature) SellPrice() (float64, error) {
	if !c.Sellable() {
		return 0, fmt.Errorf("%w: %s cannot be sold", ErrWrongAction, c.Kind.Name())
	}

	spec := c.Spec()
	switch {
	case c.Age < spec.MinProducingAge:
		return spec.BuyPrice * 0.7, nil
	case c.Age > spec.MaxProducingAge:
		return spec.BuyPrice * 0.5, nil
	default:
		return spec.BuyPrice * 1.2, nil
	}
}

func (c *Creature) String() string {
	spec := c.Spec()
	gauge := "moisture"
	if spec.Category == CategoryAnimal {
		gauge = "satiety"
	}
	return fmt.Sprintf("%s: age %d, %s %g/%g", spec.Name, c.Age, gauge, c.NeedsLevel, spec.FullNeeds)
}
