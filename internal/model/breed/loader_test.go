package breed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `
breeds:
  - key: garden-hopper
    name: Garden Hopper
    species: rabbit
    preferences:
      kidLevel: [school, teens]
      spaceScore: [3, 4]
      allergy: [none]
      vibe: [cuddly]
      grooming: [medium]
      activity: [low]
    weights:
      kidLevel: 20
      spaceScore: 20
      allergy: 20
      vibe: 20
      grooming: 10
      activity: 10
    why: Gentle and curious, happiest with room to hop.
    tags: [quiet, gentle]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	profiles, err := LoadFile(writeFile(t, "breeds.yaml", yamlCatalog))
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, Rabbit, p.Species)
	assert.Equal(t, []int{3, 4}, p.Preferences.SpaceScore)
	assert.InDelta(t, 100, p.Weights.Sum(), 1e-9)
}

func TestLoadFileJSONList(t *testing.T) {
	data, err := json.Marshal(Seed())
	require.NoError(t, err)

	profiles, err := LoadFile(writeFile(t, "breeds.json", string(data)))
	require.NoError(t, err)
	assert.Equal(t, Seed(), profiles)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDecodeEmptyCatalog(t *testing.T) {
	_, err := Decode([]byte("breeds: []\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("{}"), Format("toml"))
	assert.Error(t, err)
}
