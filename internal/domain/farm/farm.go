package farm

import "fmt"

// Death is the notification emitted when a creature dies during a tick.
type Death struct {
	CreatureID string
	Kind       CreatureKind
	Cause      LifeState
	BuildingID string
	Age        int
}

func (d Death) String() string {
	animal := d.Kind.Spec().Category == CategoryAnimal
	switch {
	case d.Cause == DeadOfOldAge && animal:
		return fmt.Sprintf("%s died of old age.", d.Kind.Name())
	case d.Cause == DeadOfOldAge:
		return fmt.Sprintf("%s withered of old age.", d.Kind.Name())
	case animal:
		return fmt.Sprintf("%s died of hunger.", d.Kind.Name())
	default:
		return fmt.Sprintf("%s dried out without water.", d.Kind.Name())
	}
}

// Farm aggregates buildings and the shared product storage.
type Farm struct {
	BuildingCapacity int

	buildings []*Building
	storage   *Storage
}

// NewFarm creates an empty farm that can hold up to capacity buildings.
func NewFarm(capacity int) *Farm {
	return &Farm{
		BuildingCapacity: capacity,
		storage:          NewStorage(),
	}
}

// Buildings returns the farm's buildings in placement order. The slice is a
// copy; the buildings are shared.
func (f *Farm) Buildings() []*Building {
	out := make([]*Building, len(f.buildings))
	copy(out, f.buildings)
	return out
}

// Building finds a building by id.
func (f *Farm) Building(id string) (*Building, error) {
	for _, b := range f.buildings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBuildingNotFound, id)
}

// SpaceAvailable is the number of buildings that can still be placed.
func (f *Farm) SpaceAvailable() int {
	return f.BuildingCapacity - len(f.buildings)
}

// PlaceBuilding constructs a new level 1 building of kind and appends it.
func (f *Farm) PlaceBuilding(kind BuildingKind) (*Building, error) {
	if f.SpaceAvailable() <= 0 {
		return nil, fmt.Errorf("%w: farm holds %d buildings", ErrNoSpaceAvailable, f.BuildingCapacity)
	}
	b, err := NewBuilding(kind)
	if err != nil {
		return nil, err
	}
	f.buildings = append(f.buildings, b)
	return b, nil
}

// DepositToStorage merges the stack into storage.
func (f *Farm) DepositToStorage(stack ProductStack) {
	f.storage.Deposit(stack)
}

// WithdrawFromStorage takes quantity units of kind from storage.
func (f *Farm) WithdrawFromStorage(kind ProductKind, quantity float64) (ProductStack, error) {
	return f.storage.Withdraw(kind, quantity)
}

// WithdrawAllFromStorage removes the whole stack of kind from storage.
func (f *Farm) WithdrawAllFromStorage(kind ProductKind) (ProductStack, error) {
	return f.storage.WithdrawAll(kind)
}

// StorageQuantity returns how much of kind is stored.
func (f *Farm) StorageQuantity(kind ProductKind) (float64, bool) {
	return f.storage.Quantity(kind)
}

// Storage returns a copy of the stored stacks.
func (f *Farm) Storage() []ProductStack {
	return f.storage.Stacks()
}

// FreeSlotsFor counts free slots across every building that accepts kind.
func (f *Farm) FreeSlotsFor(kind CreatureKind) int {
	free := 0
	for _, b := range f.buildings {
		if b.Kind.Accepts(kind) {
			free += b.SlotsAvailable()
		}
	}
	return free
}

// Settle places creatures into the first buildings that accept them and
// have room. Creatures without a home are returned.
func (f *Farm) Settle(creatures ...*Creature) []*Creature {
	var homeless []*Creature
	for _, c := range creatures {
		placed := false
		for _, b := range f.buildings {
			if b.Kind.Accepts(c.Kind) && b.SlotsAvailable() > 0 {
				if err := b.PlaceCreature(c); err == nil {
					placed = true
					break
				}
			}
		}
		if !placed {
			homeless = append(homeless, c)
		}
	}
	return homeless
}

// Occupants walks every creature in building-then-arrival order.
func (f *Farm) Occupants(fn func(b *Building, c *Creature) bool) {
	for _, b := range f.buildings {
		for _, c := range b.Occupants {
			if !fn(b, c) {
				return
			}
		}
	}
}

// Population counts living creatures per kind.
func (f *Farm) Population() map[CreatureKind]int {
	counts := make(map[CreatureKind]int)
	f.Occupants(func(_ *Building, c *Creature) bool {
		counts[c.Kind]++
		return true
	})
	return counts
}

// Tick advances every creature by one day. Dead creatures are removed from
// their building and reported; one death never stops the others' ticks.
func (f *Farm) Tick() []Death {
	var deaths []Death
	for _, b := range f.buildings {
		snapshot := make([]*Creature, len(b.Occupants))
		copy(snapshot, b.Occupants)

		for _, c := range snapshot {
			state := c.AdvanceOneDay()
			if !state.Dead() {
				continue
			}
			b.RemoveCreature(c.ID)
			deaths = append(deaths, Death{
				CreatureID: c.ID,
				Kind:       c.Kind,
				Cause:      state,
				BuildingID: b.ID,
				Age:        c.Age,
			})
		}
	}
	return deaths
}
