package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame_InitialPopulation(t *testing.T) {
	g := newTestGame(t, DefaultSettings())

	buildings := g.Farm().Buildings()
	require.Len(t, buildings, 2)
	assert.Equal(t, Barn, buildings[0].Kind)
	assert.Equal(t, Field, buildings[1].Kind)
	assert.Equal(t, map[CreatureKind]int{Hen: 1, Wheat: 2}, g.Farm().Population())
	assert.Equal(t, []ProductStack{NewStack(AnimalFood, 20), NewStack(Water, 25)}, g.Farm().Storage())
	assert.Equal(t, 1000.0, g.Player().Balance)
	assert.Equal(t, 5, g.Player().ActionsLeft())
	assert.Equal(t, 1, g.Day())
}

func TestNewGame_RejectsBadSettings(t *testing.T) {
	_, err := NewGame(Settings{StartBalance: 10, ActionsPerDay: 0, BuildingCapacity: 10})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewGame(Settings{StartBalance: 10, ActionsPerDay: 3, BuildingCapacity: 1})
	assert.ErrorIs(t, err, ErrNoSpaceAvailable)
}

func TestGame_AdvanceDayResetsActions(t *testing.T) {
	g := newTestGame(t, DefaultSettings())
	_, err := g.Player().FeedAnimals()
	require.NoError(t, err)
	require.Equal(t, 1, g.Player().ActionsSpent())

	result := g.AdvanceDay()

	assert.Equal(t, 2, result.Day)
	assert.Empty(t, result.Deaths)
	assert.Zero(t, g.Player().ActionsSpent())
	hen := barnOf(g).Occupants[0]
	assert.Equal(t, 4, hen.Age)
	assert.Equal(t, 95.0, hen.NeedsLevel)
}

func TestGame_UnwateredPlantsDryOut(t *testing.T) {
	g := newTestGame(t, DefaultSettings())

	var deaths []Death
	for i := 0; i < 8 && len(deaths) == 0; i++ {
		deaths = g.AdvanceDay().Deaths
	}

	// 90 drops by 5 a day: below 60 after seven nights, dead on the eighth.
	require.Len(t, deaths, 2)
	for _, d := range deaths {
		assert.Equal(t, Wheat, d.Kind)
		assert.Equal(t, DeadOfStarvation, d.Cause)
	}
	assert.Empty(t, fieldOf(g).Occupants)
	assert.Len(t, barnOf(g).Occupants, 1, "the hen is still above its critical level")
	assert.Equal(t, 9, g.Day())
}

func TestGame_Status(t *testing.T) {
	g := newTestGame(t, DefaultSettings())

	s := g.Status()

	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 5, s.ActionsLeft)
	assert.Equal(t, 8, s.FreeLots)
	require.Len(t, s.Buildings, 2)
	barn := s.Buildings[0]
	assert.Equal(t, "Barn", barn.Name)
	assert.Equal(t, 7, barn.Free)
	assert.Equal(t, 500.0, barn.UpgradePrice)
	require.Len(t, barn.Occupants, 1)
	require.NotNil(t, barn.Occupants[0].SellPrice)
	assert.InDelta(t, 21.0, *barn.Occupants[0].SellPrice, 1e-9)
	assert.Nil(t, s.Buildings[1].Occupants[0].SellPrice)
	assert.Equal(t, "Wheat: age 0, moisture 90/100", s.Buildings[1].Occupants[0].Line)
}
