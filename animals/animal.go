/*
Package animals stores animal profiles and the public counters attached to them.
*/
package animals

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no animal has the requested id.
var ErrNotFound = errors.New("animal not found")

// DefaultTags are given to animals with no personality tags.
var DefaultTags = []string{"Friendly", "Sleepy"}

type Animal struct {
	ID                    int64    `json:"id" yaml:"id"`
	Name                  string   `json:"name" yaml:"name"`
	Sector                string   `json:"sector" yaml:"sector"`
	HealthStatus          string   `json:"health_status" yaml:"health_status"`
	MoodBadge             string   `json:"mood_badge" yaml:"mood_badge"`
	IdentificationMarkers string   `json:"identification_markers,omitempty" yaml:"identification_markers"`
	History               string   `json:"history,omitempty" yaml:"history"`
	SponsorName           string   `json:"sponsor_name,omitempty" yaml:"sponsor_name"`
	ImageURL              string   `json:"image_url,omitempty" yaml:"image_url"`
	Likes                 int64    `json:"likes" yaml:"likes"`
	PersonalityTags       []string `json:"personality_tags" yaml:"personality_tags"`
}

// HasTag reports whether tag is already one of the animal's personality tags.
func (a *Animal) HasTag(tag string) bool {
	for _, t := range a.PersonalityTags {
		if t == tag {
			return true
		}
	}
	return false
}

//go:generate mockgen -destination=mock_animals/mock_store.go -package=mock_animals github.com/nsac-nust/stray-tracker/animals Store

// Store holds animal profiles.
type Store interface {
	// Get returns ErrNotFound if id is unknown.
	Get(ctx context.Context, id int64) (*Animal, error)
	// Put creates or replaces an animal, assigning an id when ID is zero.
	Put(ctx context.Context, a *Animal) error
	// AddTag appends tag to the animal's personality tags unless already present.
	AddTag(ctx context.Context, id int64, tag string) (bool, error)
	// Like increments the like counter and returns the new total.
	Like(ctx context.Context, id int64) (int64, error)
	// Move records a new current sector for the animal.
	Move(ctx context.Context, id int64, sector string) error
	// Trending returns up to n animals ordered by likes, most liked first.
	Trending(ctx context.Context, n int) ([]*Animal, error)
	// Count returns the number of stored animals.
	Count(ctx context.Context) (int, error)
	// AddSighting stores a sighting of an existing animal, assigning its id.
	AddSighting(ctx context.Context, sg *Sighting) error
	// ListSightings pages through an animal's sightings, newest first.
	// Pages start at 1. hasNext reports whether a later page has items.
	ListSightings(ctx context.Context, animalID int64, page, limit int) (items []*Sighting, hasNext bool, err error)
	// LikeSighting increments the sighting's like counter and returns the new total.
	LikeSighting(ctx context.Context, id int64) (int64, error)
}
