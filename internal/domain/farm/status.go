package farm

// Status is a read-only snapshot of the game for display.
type Status struct {
	Day         int              `json:"day"`
	Balance     float64          `json:"balance"`
	ActionsLeft int              `json:"actions_left"`
	ActionsPer  int              `json:"actions_per_day"`
	FreeLots    int              `json:"free_building_lots"`
	Storage     []ProductStack   `json:"storage"`
	Buildings   []BuildingStatus `json:"buildings"`
}

// BuildingStatus is the display view of one building.
type BuildingStatus struct {
	ID           string           `json:"id"`
	Kind         BuildingKind     `json:"kind"`
	Name         string           `json:"name"`
	Level        int              `json:"level"`
	MaxLevel     bool             `json:"max_level"`
	Slots        int              `json:"slots"`
	Free         int              `json:"free"`
	UpgradePrice float64          `json:"upgrade_price"`
	Occupants    []CreatureStatus `json:"occupants"`
}

// CreatureStatus is the display view of one creature.
type CreatureStatus struct {
	ID         string       `json:"id"`
	Kind       CreatureKind `json:"kind"`
	Name       string       `json:"name"`
	Category   Category     `json:"category"`
	Age        int          `json:"age"`
	NeedsLevel float64      `json:"needs_level"`
	FullNeeds  float64      `json:"full_needs"`
	Inventory  ProductStack `json:"inventory"`
	SellPrice  *float64     `json:"sell_price,omitempty"`
	Line       string       `json:"line"`
}

// Status captures the current state of the game. It has no side effects.
func (g *Game) Status() Status {
	s := Status{
		Day:         g.day,
		Balance:     g.player.Balance,
		ActionsLeft: g.player.ActionsLeft(),
		ActionsPer:  g.player.TotalActionsPerDay,
		FreeLots:    g.farm.SpaceAvailable(),
		Storage:     g.farm.Storage(),
	}

	for _, b := range g.farm.buildings {
		bs := BuildingStatus{
			ID:           b.ID,
			Kind:         b.Kind,
			Name:         b.Kind.Name(),
			Level:        b.Level,
			MaxLevel:     b.MaxLevel(),
			Slots:        b.Slots,
			Free:         b.SlotsAvailable(),
			UpgradePrice: b.UpgradePrice(),
			Occupants:    make([]CreatureStatus, 0, len(b.Occupants)),
		}
		for _, c := range b.Occupants {
			spec := c.Spec()
			cs := CreatureStatus{
				ID:         c.ID,
				Kind:       c.Kind,
				Name:       spec.Name,
				Category:   spec.Category,
				Age:        c.Age,
				NeedsLevel: c.NeedsLevel,
				FullNeeds:  spec.FullNeeds,
				Inventory:  c.Inventory,
				Line:       c.String(),
			}
			if price, err := c.SellPrice(); err == nil {
				cs.SellPrice = &price
			}
			bs.Occupants = append(bs.Occupants, cs)
		}
		s.Buildings = append(s.Buildings, bs)
	}

	return s
}
