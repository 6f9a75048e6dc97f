package farm

import "fmt"

// Settings are the knobs a new game starts from.
type Settings struct {
	StartBalance     float64
	ActionsPerDay    int
	BuildingCapacity int
}

// DefaultSettings mirrors the classic starting conditions.
func DefaultSettings() Settings {
	return Settings{
		StartBalance:     1000,
		ActionsPerDay:    5,
		BuildingCapacity: 10,
	}
}

// DayResult describes what happened during one night.
type DayResult struct {
	Day    int
	Deaths []Death
}

// Game composes the player and the farm and owns the passage of time.
type Game struct {
	day    int
	player *Player
	farm   *Farm
}

// NewGame builds a farm with one barn, one field, a hen, two wheat, 20 units
// of animal food and 25 units of water.
func NewGame(settings Settings) (*Game, error) {
	if settings.ActionsPerDay <= 0 {
		return nil, fmt.Errorf("%w: actions per day %d", ErrInvalidQuantity, settings.ActionsPerDay)
	}
	if settings.BuildingCapacity < 2 {
		return nil, fmt.Errorf("%w: farm must hold at least 2 buildings, got %d", ErrNoSpaceAvailable, settings.BuildingCapacity)
	}

	f := NewFarm(settings.BuildingCapacity)
	for _, kind := range []BuildingKind{Barn, Field} {
		if _, err := f.PlaceBuilding(kind); err != nil {
			return nil, err
		}
	}

	var starters []*Creature
	for _, kind := range []CreatureKind{Hen, Wheat, Wheat} {
		c, err := NewCreature(kind)
		if err != nil {
			return nil, err
		}
		starters = append(starters, c)
	}
	if homeless := f.Settle(starters...); len(homeless) > 0 {
		return nil, fmt.Errorf("%w: %d starting creatures without a home", ErrNoSpaceAvailable, len(homeless))
	}

	f.DepositToStorage(NewStack(AnimalFood, 20))
	f.DepositToStorage(NewStack(Water, 25))

	return &Game{
		day:    1,
		player: NewPlayer(settings.StartBalance, settings.ActionsPerDay, f),
		farm:   f,
	}, nil
}

// Player returns the game's player.
func (g *Game) Player() *Player {
	return g.player
}

// Farm returns the game's farm.
func (g *Game) Farm() *Farm {
	return g.farm
}

// Day is the current day number, starting at 1.
func (g *Game) Day() int {
	return g.day
}

// AdvanceDay ticks every creature and gives the player a fresh action budget.
func (g *Game) AdvanceDay() DayResult {
	deaths := g.farm.Tick()
	g.player.resetActions()
	g.day++
	return DayResult{Day: g.day, Deaths: deaths}
}
