package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
)

func TestVocabulary_Resolve(t *testing.T) {
	v := newVocabulary(farm.DefaultCatalog())

	tests := []struct {
		word  string
		class targetClass
		kind  string
	}{
		{word: "hen", class: classCreature, kind: "hen"},
		{word: "Animal Food", class: classProduct, kind: "animal_food"},
		{word: "food", class: classProduct, kind: "animal_food"},
		{word: "potato_tuber", class: classProduct, kind: "tuber"},
		{word: "chickens", class: classCreature, kind: "hen"},
		{word: "barn", class: classBuilding, kind: "barn"},
		{word: "sheeep", class: classCreature, kind: "sheep"},
		{word: "watr", class: classProduct, kind: "water"},
		{word: "fild", class: classBuilding, kind: "field"},
		{word: "feild", class: classBuilding, kind: "field"},
		{word: "cattle", class: classCreature, kind: "cow"},
		{word: "barm", class: classBuilding, kind: "barn"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := v.resolve(tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.class, got.class)
			assert.Equal(t, tt.kind, got.kind)
		})
	}
}

func TestVocabulary_ResolveFailures(t *testing.T) {
	v := newVocabulary(farm.DefaultCatalog())

	_, err := v.resolve("spaceship")
	assert.ErrorIs(t, err, farm.ErrUnknownKind)

	_, err = v.resolve("")
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = v.resolve("cor")
	assert.ErrorIs(t, err, ErrAmbiguousKind, "corn and cow are both one edit away")
}

func TestVocabulary_RejectsDistantWords(t *testing.T) {
	v := newVocabulary(farm.DefaultCatalog())

	for _, word := range []string{"castle", "cat", "co", "eg", "cattel", "chicks"} {
		t.Run(word, func(t *testing.T) {
			_, err := v.resolve(word)
			assert.ErrorIs(t, err, farm.ErrUnknownKind)
		})
	}
}
