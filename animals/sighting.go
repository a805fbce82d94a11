package animals

import (
	"errors"
	"time"
)

// ErrSightingNotFound is returned when no sighting has the requested id.
var ErrSightingNotFound = errors.New("sighting not found")

// AnonymousUploader is recorded on sightings sent without a signed in user.
const AnonymousUploader = "anonymous"

// Sighting is a photo of an animal reported in a campus sector.
type Sighting struct {
	ID        int64     `json:"id"`
	AnimalID  int64     `json:"animal_id"`
	Location  string    `json:"location"`
	ImagePath string    `json:"image_path"`
	Uploader  string    `json:"uploader"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int64     `json:"likes"`
}
