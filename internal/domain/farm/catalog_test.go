package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.Products, 8)
	assert.Len(t, c.Creatures, 6)
	assert.Len(t, c.Buildings, 2)

	hen, err := c.Creature(Hen)
	require.NoError(t, err)
	assert.Equal(t, CategoryAnimal, hen.Category)
	assert.Equal(t, NeedsProfile{CriticalNeeds: 20, FilledNeeds: 60, FullNeeds: 100}, hen.NeedsProfile)
	assert.Equal(t, AnimalFood, hen.Needs)
	assert.Equal(t, Egg, hen.Produces)

	potato, err := c.Creature(Potato)
	require.NoError(t, err)
	assert.Equal(t, NeedsProfile{CriticalNeeds: 60, FilledNeeds: 70, FullNeeds: 100}, potato.NeedsProfile)

	assert.Equal(t, 8.5, Corn.Spec().BuyPrice)
	assert.Equal(t, "Animal food", AnimalFood.Name())
	assert.Equal(t, 100.0, Wool.Price())
	assert.True(t, Barn.Accepts(Cow))
	assert.False(t, Field.Accepts(Cow))
}

func TestCatalogLookupUnknown(t *testing.T) {
	c := DefaultCatalog()

	_, err := c.Product("gold")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = c.Creature("dragon")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = c.Building("castle")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "gold", ProductKind("gold").Name())
}

func TestParseCatalog_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing categories",
			yaml: "products: [{kind: water, name: Water, buy_price: 1}]",
			want: "missing needs profile",
		},
		{
			name: "unknown product reference",
			yaml: `
products: [{kind: water, name: Water, buy_price: 1}]
categories:
  plant: {critical_needs: 60, filled_needs: 70, full_needs: 100}
  animal: {critical_needs: 20, filled_needs: 60, full_needs: 100}
creatures:
  - {kind: wheat, name: Wheat, category: plant, max_age: 26, produces: wheat_seed, needs: water}
`,
			want: "produces unknown product",
		},
		{
			name: "duplicate product",
			yaml: "products: [{kind: water}, {kind: water}]",
			want: "duplicate product",
		},
		{
			name: "not yaml",
			yaml: "products: [",
			want: "decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
