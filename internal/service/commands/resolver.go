package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
)

// Words shorter than this are never corrected.
const minTypoLength = 3

type targetClass int

const (
	classProduct targetClass = iota
	classCreature
	classBuilding
)

// target is what a typed word resolves to.
type target struct {
	class targetClass
	kind  string
}

func (t target) product() farm.ProductKind   { return farm.ProductKind(t.kind) }
func (t target) creature() farm.CreatureKind { return farm.CreatureKind(t.kind) }
func (t target) building() farm.BuildingKind { return farm.BuildingKind(t.kind) }

var aliases = map[string]string{
	"food":     "animal_food",
	"feed":     "animal_food",
	"seed":     "wheat_seed",
	"potatoes": "potato",
	"tubers":   "tuber",
	"chicken":  "hen",
	"chickens": "hen",
	"cattle":   "cow",
	"eggs":     "egg",
	"wools":    "wool",
	"sheeps":   "sheep",
	"hens":     "hen",
	"cows":     "cow",
	"barns":    "barn",
	"fields":   "field",
}

// vocabulary maps every accepted spelling to its target. Only kinds and
// display names take part in typo correction; aliases must be exact.
type vocabulary struct {
	words     map[string]target
	canonical map[string]bool
}

func newVocabulary(c *farm.Catalog) *vocabulary {
	v := &vocabulary{words: make(map[string]target), canonical: make(map[string]bool)}
	add := func(t target, spellings ...string) {
		for _, w := range spellings {
			w = normalizeWord(w)
			if _, taken := v.words[w]; !taken {
				v.words[w] = t
			}
		}
	}

	for _, p := range c.Products {
		add(target{classProduct, string(p.Kind)}, string(p.Kind), p.Name)
	}
	for _, cr := range c.Creatures {
		add(target{classCreature, string(cr.Kind)}, string(cr.Kind), cr.Name)
	}
	for _, b := range c.Buildings {
		add(target{classBuilding, string(b.Kind)}, string(b.Kind), b.Name)
	}
	for w := range v.words {
		v.canonical[w] = true
	}
	for alias, canonical := range aliases {
		if t, ok := v.words[canonical]; ok {
			add(t, alias)
		}
	}
	return v
}

func normalizeWord(w string) string {
	return strings.Join(strings.Fields(strings.ToLower(w)), "_")
}

// levenshteinLimit is the typo budget for a spelling of the given length.
func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// resolve looks a word up exactly, then by typo distance. A typo must have a
// single closest target.
func (v *vocabulary) resolve(word string) (target, error) {
	word = normalizeWord(word)
	if word == "" {
		return target{}, fmt.Errorf("%w: what should it apply to?", ErrInvalidArguments)
	}
	if t, ok := v.words[word]; ok {
		return t, nil
	}

	if len(word) < minTypoLength {
		return target{}, fmt.Errorf("%w: %q", farm.ErrUnknownKind, word)
	}

	best := -1
	var matches []string
	found := map[target]bool{}
	for spelling := range v.canonical {
		t := v.words[spelling]
		d := levenshtein.ComputeDistance(word, spelling)
		if d > levenshteinLimit(len(spelling)) {
			continue
		}
		switch {
		case best < 0 || d < best:
			best = d
			matches = []string{spelling}
			found = map[target]bool{t: true}
		case d == best && !found[t]:
			matches = append(matches, spelling)
			found[t] = true
		}
	}

	switch len(found) {
	case 0:
		return target{}, fmt.Errorf("%w: %q", farm.ErrUnknownKind, word)
	case 1:
		return v.words[matches[0]], nil
	default:
		sort.Strings(matches)
		return target{}, fmt.Errorf("%w: %q could be %s", ErrAmbiguousKind, word, strings.Join(matches, " or "))
	}
}
