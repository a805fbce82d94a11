package animals

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var DefaultSeed []byte

type seedFile struct {
	Animals []Animal `yaml:"animals"`
}

// fields an animal falls back to when its seed entry leaves them unset
var seedDefaults = Animal{
	HealthStatus:    "Healthy",
	MoodBadge:       "Friendly",
	PersonalityTags: DefaultTags,
}

// LoadSeed parses seed yaml, filling unset fields from seedDefaults.
func LoadSeed(content []byte) ([]*Animal, error) {
	parsed := seedFile{}
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("parsing seed yaml: %w", err)
	}
	ret := make([]*Animal, 0, len(parsed.Animals))
	for i := range parsed.Animals {
		a := parsed.Animals[i]
		if a.Name == "" || a.Sector == "" {
			return nil, fmt.Errorf("seed animal %d needs a name and sector", i)
		}
		if err := mergo.Merge(&a, seedDefaults); err != nil {
			return nil, err
		}
		// don't share the defaults' backing array between animals
		a.PersonalityTags = append([]string{}, a.PersonalityTags...)
		ret = append(ret, &a)
	}
	return ret, nil
}

// Seed stores animals only when the store holds none, returning how many were written.
func Seed(ctx context.Context, s Store, seed []*Animal) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	var errs []error
	written := 0
	for _, a := range seed {
		if err := s.Put(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("seeding %s: %w", a.Name, err))
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}
