package animals

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultSeed(t *testing.T) {
	seed, err := LoadSeed(DefaultSeed)
	require.NoError(t, err)
	require.Len(t, seed, 10)
	require.Equal(t, "Gora", seed[0].Name)
	// unset fields come from the defaults
	require.Equal(t, "Healthy", seed[0].HealthStatus)
	require.Equal(t, "Sick", seed[1].HealthStatus)
	require.Equal(t, "Friendly", seed[5].MoodBadge)
	require.Equal(t, DefaultTags, seed[0].PersonalityTags)

	// tags are not shared between animals
	seed[0].PersonalityTags[0] = "Changed"
	require.Equal(t, "Friendly", seed[1].PersonalityTags[0])
	require.Equal(t, "Friendly", DefaultTags[0])
}

func TestLoadSeedErrors(t *testing.T) {
	_, err := LoadSeed([]byte("animals: ["))
	require.Error(t, err)
	_, err = LoadSeed([]byte("animals:\n  - name: NoSector\n"))
	require.Error(t, err)

	seed, err := LoadSeed([]byte("animals:\n  - name: Tom\n    sector: NBS\n    personality_tags: [Lazy]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"Lazy"}, seed[0].PersonalityTags)
}

func TestSeedOnlyEmpty(t *testing.T) {
	s := newTestStore(t)
	seed, err := LoadSeed(DefaultSeed)
	require.NoError(t, err)

	written, err := Seed(ctx, s, seed)
	require.NoError(t, err)
	require.Equal(t, 10, written)

	again, err := LoadSeed(DefaultSeed)
	require.NoError(t, err)
	written, err = Seed(ctx, s, again)
	require.NoError(t, err)
	require.Equal(t, 0, written)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, count)
}
