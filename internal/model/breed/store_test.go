package breed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsValid(t *testing.T) {
	require.NoError(t, Validate(Seed()))
}

func TestSeedHasCouchPotatoWithFullWeightBudget(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByKey("couch-potato-companion")
	require.True(t, ok)
	assert.Equal(t, "Couch Potato Companion", p.Name)
	assert.Equal(t, Dog, p.Species)
	assert.InDelta(t, 100, p.Weights.Sum(), 1e-9)
}

func TestBySpeciesKeepsCatalogOrder(t *testing.T) {
	store := NewMemoryStore(Seed())

	cats := store.BySpecies(Cat)
	require.NotEmpty(t, cats)
	for _, p := range cats {
		assert.Equal(t, Cat, p.Species)
	}

	var want []string
	for _, p := range Seed() {
		if p.Species == Cat {
			want = append(want, p.Key)
		}
	}
	var got []string
	for _, p := range cats {
		got = append(got, p.Key)
	}
	assert.Equal(t, want, got)
}

func TestBySpeciesWithoutProfiles(t *testing.T) {
	store := NewMemoryStore(Seed())
	assert.Empty(t, store.BySpecies(Rabbit))
}

func TestBySpeciesEmptyFilterReturnsAll(t *testing.T) {
	store := NewMemoryStore(Seed())
	assert.Len(t, store.BySpecies(""), len(Seed()))
}

func TestListReturnsCopy(t *testing.T) {
	store := NewMemoryStore(Seed())
	items := store.List()
	items[0].Name = "mutated"

	p, ok := store.FindByKey(items[0].Key)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", p.Name)
}

func TestFindByKeyMissing(t *testing.T) {
	store := NewMemoryStore(Seed())
	_, ok := store.FindByKey("unicorn")
	assert.False(t, ok)
}

func TestSpeciesValid(t *testing.T) {
	assert.True(t, Rabbit.Valid())
	assert.False(t, Species("hamster").Valid())
}

func TestParseAxis(t *testing.T) {
	axis, ok := ParseAxis("spaceScore")
	assert.True(t, ok)
	assert.Equal(t, AxisSpaceScore, axis)

	_, ok = ParseAxis("colour")
	assert.False(t, ok)
}
