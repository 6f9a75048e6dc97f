package farm

import "fmt"

// Player holds the balance and the daily action budget. Every exported
// command method is a metered action: it fails with ErrNoActionsLeft once
// the budget is spent, costs exactly one action on success and changes
// nothing on failure.
type Player struct {
	Balance            float64
	TotalActionsPerDay int

	actionsSpent int
	farm         *Farm
}

// NewPlayer creates a player managing farm.
func NewPlayer(balance float64, actionsPerDay int, farm *Farm) *Player {
	return &Player{
		Balance:            balance,
		TotalActionsPerDay: actionsPerDay,
		farm:               farm,
	}
}

// Farm returns the farm the player manages.
func (p *Player) Farm() *Farm {
	return p.farm
}

// ActionsSpent is the number of actions used today.
func (p *Player) ActionsSpent() int {
	return p.actionsSpent
}

// ActionsLeft is the number of actions still available today.
func (p *Player) ActionsLeft() int {
	return p.TotalActionsPerDay - p.actionsSpent
}

func (p *Player) resetActions() {
	p.actionsSpent = 0
}

func (p *Player) metered(fn func() error) error {
	if p.ActionsLeft() <= 0 {
		return ErrNoActionsLeft
	}
	if err := fn(); err != nil {
		return err
	}
	p.actionsSpent++
	return nil
}

func (p *Player) canAfford(cost float64, what string) error {
	if p.Balance < cost {
		return fmt.Errorf("%w: %s costs %g, balance is %g", ErrInsufficientFunds, what, cost, p.Balance)
	}
	return nil
}

// FeedAnimals spreads the stored animal food over the animals in
// building-then-arrival order. It returns the amount eaten.
func (p *Player) FeedAnimals() (float64, error) {
	var consumed float64
	err := p.metered(func() error {
		var err error
		consumed, err = p.fillNeeds(CategoryAnimal, AnimalFood)
		return err
	})
	return consumed, err
}

// WaterPlants spreads the stored water over the plants. It returns the
// amount absorbed.
func (p *Player) WaterPlants() (float64, error) {
	var consumed float64
	err := p.metered(func() error {
		var err error
		consumed, err = p.fillNeeds(CategoryPlant, Water)
		return err
	})
	return consumed, err
}

// fillNeeds takes the whole stored stack of kind and spreads it until it runs
// out or every creature of the category is full. What is left goes back to
// storage behind the other stacks.
func (p *Player) fillNeeds(category Category, kind ProductKind) (float64, error) {
	stack, err := p.farm.WithdrawAllFromStorage(kind)
	if err != nil {
		return 0, err
	}

	available := stack.Quantity
	p.farm.Occupants(func(_ *Building, c *Creature) bool {
		spec := c.Spec()
		if spec.Category != category || spec.Needs != kind {
			return true
		}
		stack, _ = c.FillNeeds(stack)
		return stack.Quantity > 0
	})

	p.farm.DepositToStorage(stack)
	return available - stack.Quantity, nil
}

// CollectAnimalProducts harvests every animal into storage.
func (p *Player) CollectAnimalProducts() ([]ProductStack, error) {
	var collected []ProductStack
	err := p.metered(func() error {
		collected = p.collect(CategoryAnimal)
		return nil
	})
	return collected, err
}

// CollectPlantProducts harvests every plant into storage.
func (p *Player) CollectPlantProducts() ([]ProductStack, error) {
	var collected []ProductStack
	err := p.metered(func() error {
		collected = p.collect(CategoryPlant)
		return nil
	})
	return collected, err
}

func (p *Player) collect(category Category) []ProductStack {
	tally := NewStorage()
	p.farm.Occupants(func(_ *Building, c *Creature) bool {
		if c.Spec().Category == category {
			stack := c.Harvest()
			p.farm.DepositToStorage(stack)
			tally.Deposit(stack)
		}
		return true
	})
	return tally.Stacks()
}

// BuyProduct buys quantity units of kind into storage and returns the cost.
func (p *Player) BuyProduct(kind ProductKind, quantity float64) (float64, error) {
	var cost float64
	err := p.metered(func() error {
		if !kind.Valid() {
			return fmt.Errorf("%w: product %q", ErrUnknownKind, kind)
		}
		if !(quantity > 0) {
			return fmt.Errorf("%w: %g", ErrInvalidQuantity, quantity)
		}
		cost = kind.Price() * quantity
		if err := p.canAfford(cost, kind.Name()); err != nil {
			return err
		}
		p.Balance -= cost
		p.farm.DepositToStorage(NewStack(kind, quantity))
		return nil
	})
	return cost, err
}

// SellProduct sells quantity units of kind from storage and returns the
// money earned.
func (p *Player) SellProduct(kind ProductKind, quantity float64) (float64, error) {
	var earned float64
	err := p.metered(func() error {
		if !(quantity > 0) {
			return fmt.Errorf("%w: %g", ErrInvalidQuantity, quantity)
		}
		sold, err := p.farm.WithdrawFromStorage(kind, quantity)
		if err != nil {
			return err
		}
		earned = sold.Value()
		p.Balance += earned
		return nil
	})
	return earned, err
}

// BuyCreature buys count creatures of kind and settles them, filling each
// accepting building before moving to the next.
func (p *Player) BuyCreature(kind CreatureKind, count int) ([]*Creature, error) {
	var bought []*Creature
	err := p.metered(func() error {
		spec, err := defaultCatalog.Creature(kind)
		if err != nil {
			return err
		}
		if count <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidQuantity, count)
		}
		cost := spec.BuyPrice * float64(count)
		if err := p.canAfford(cost, fmt.Sprintf("%d x %s", count, spec.Name)); err != nil {
			return err
		}
		if free := p.farm.FreeSlotsFor(kind); free < count {
			return fmt.Errorf("%w: %d free slots for %s, wanted %d", ErrNoSpaceAvailable, free, spec.Name, count)
		}

		bought = make([]*Creature, 0, count)
		for i := 0; i < count; i++ {
			c, err := NewCreature(kind)
			if err != nil {
				return err
			}
			bought = append(bought, c)
		}
		p.farm.Settle(bought...)
		p.Balance -= cost
		return nil
	})
	return bought, err
}

// SellCreature sells one animal out of a building and returns its price.
func (p *Player) SellCreature(buildingID, creatureID string) (float64, error) {
	var price float64
	err := p.metered(func() error {
		b, err := p.farm.Building(buildingID)
		if err != nil {
			return err
		}
		c, ok := b.Creature(creatureID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrCreatureNotFound, creatureID)
		}
		price, err = c.SellPrice()
		if err != nil {
			return err
		}
		p.Balance += price
		b.RemoveCreature(c.ID)
		return nil
	})
	return price, err
}

// BuyBuilding buys and places a new building of kind.
func (p *Player) BuyBuilding(kind BuildingKind) (*Building, error) {
	var placed *Building
	err := p.metered(func() error {
		spec, err := defaultCatalog.Building(kind)
		if err != nil {
			return err
		}
		if err := p.canAfford(spec.BuyPrice, spec.Name); err != nil {
			return err
		}
		placed, err = p.farm.PlaceBuilding(kind)
		if err != nil {
			return err
		}
		p.Balance -= spec.BuyPrice
		return nil
	})
	return placed, err
}

// UpgradeBuilding upgrades a building by one level and returns the price
// paid, which is the price quoted before the upgrade.
func (p *Player) UpgradeBuilding(buildingID string) (float64, error) {
	var price float64
	err := p.metered(func() error {
		b, err := p.farm.Building(buildingID)
		if err != nil {
			return err
		}
		price = b.UpgradePrice()
		if err := p.canAfford(price, "upgrading "+b.Kind.Name()); err != nil {
			return err
		}
		if err := b.Upgrade(); err != nil {
			return err
		}
		p.Balance -= price
		return nil
	})
	return price, err
}
