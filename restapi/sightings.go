package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/dedupe"
	"github.com/nsac-nust/stray-tracker/prom"
	"github.com/nsac-nust/stray-tracker/restapi/restapi_handlers"
	st "github.com/nsac-nust/stray-tracker/settings"
	"github.com/nsac-nust/stray-tracker/uploads"
)

const (
	sightingKarma = 10
	// room for the text fields and multipart framing around the image
	multipartOverhead = 64 * 1024
	maxSectorLength   = 64

	sightingPageSize    = 10
	maxSightingPageSize = 50
	sightingTimeLayout  = "02 Jan 15:04"
)

type sightingAccepted struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url"`
	Message  string `json:"message"`
}

func validSector(sector string) error {
	if sector == "" {
		return errors.New("location is required")
	}
	if len(sector) > maxSectorLength {
		return fmt.Errorf("location is longer than %d bytes", maxSectorLength)
	}
	for _, r := range sector {
		if unicode.IsControl(r) {
			return fmt.Errorf("location contains invalid character %q", r)
		}
	}
	return nil
}

// PostSighting stores a photo of an animal and moves the animal to the reported sector.
func (s *Server) PostSighting(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(st.Uploads.MaxBytes)+multipartOverhead)
	fail := func(code int, title string, err error) {
		prom.SightingUploads.WithLabelValues(strconv.Itoa(code)).Inc()
		restapi_handlers.JSONError(c, code, title, err)
	}

	if err := c.Request.ParseMultipartForm(int64(st.Uploads.MaxBytes)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(413, "upload too large", err)
			return
		}
		fail(400, "expected a multipart form", err)
		return
	}
	id, err := strconv.ParseInt(c.PostForm("animal_id"), 10, 64)
	if err != nil || id <= 0 {
		fail(400, "invalid animal id", fmt.Errorf("animal_id %q is not a positive integer", c.PostForm("animal_id")))
		return
	}
	sector := strings.TrimSpace(c.PostForm("location"))
	if err := validSector(sector); err != nil {
		fail(400, "invalid location", err)
		return
	}
	ctx := c.Request.Context()
	if _, err := s.animals.Get(ctx, id); errors.Is(err, animals.ErrNotFound) {
		fail(404, "animal not found", err)
		return
	} else if err != nil {
		fail(500, "could not load animal", err)
		return
	}

	header, err := c.FormFile("sighting_image")
	if err != nil {
		fail(400, "no image uploaded", err)
		return
	}
	if header.Filename == "" {
		fail(400, "no selected file", errors.New("sighting_image has no filename"))
		return
	}
	f, err := header.Open()
	if err != nil {
		fail(400, "could not read image", err)
		return
	}
	defer f.Close()

	rel, n, err := s.uploads.Save("sightings", header.Filename, f)
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		fail(413, "upload too large", err)
		return
	case errors.Is(err, uploads.ErrExtension), errors.Is(err, uploads.ErrContent), errors.Is(err, uploads.ErrEmpty):
		fail(400, "invalid image", err)
		return
	case err != nil:
		fail(500, "could not store image", err)
		return
	}
	prom.SightingUploadedBytes.Add(float64(n))

	sighting := &animals.Sighting{
		AnimalID:  id,
		Location:  sector,
		ImagePath: rel,
	}
	if err := s.animals.AddSighting(ctx, sighting); err != nil {
		fail(500, "could not record sighting", err)
		return
	}
	if err := s.animals.Move(ctx, id, sector); err != nil {
		// the image is kept, only the location update is lost
		fail(500, "could not update animal location", err)
		return
	}
	prom.SightingUploads.WithLabelValues("200").Inc()
	restapi_handlers.JSONResponse(c, 200, sightingAccepted{
		Success:  true,
		ImageURL: staticURL(sighting.ImagePath),
		Message:  fmt.Sprintf("Sighting uploaded! +%d Karma", sightingKarma),
	})
}

func staticURL(rel string) string {
	return path.Join("/static", rel)
}

type sightingItem struct {
	ID        int64   `json:"id"`
	ImageURL  *string `json:"image_url"`
	Location  string  `json:"location"`
	Timestamp string  `json:"timestamp"`
	Likes     int64   `json:"likes"`
}

type sightingPage struct {
	Items    []sightingItem `json:"items"`
	HasNext  bool           `json:"has_next"`
	NextPage *int           `json:"next_page"`
}

// positiveQuery reads an optional positive integer query parameter.
func positiveQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s %q is not a positive integer", name, raw)
	}
	return v, nil
}

// GetSightings pages through an animal's sightings, newest first.
func (s *Server) GetSightings(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		restapi_handlers.JSONError(c, 400, "invalid animal id", err)
		return
	}
	page, err := positiveQuery(c, "page", 1)
	if err != nil {
		restapi_handlers.JSONError(c, 400, "invalid page", err)
		return
	}
	limit, err := positiveQuery(c, "limit", sightingPageSize)
	if err != nil {
		restapi_handlers.JSONError(c, 400, "invalid limit", err)
		return
	}
	limit = min(limit, maxSightingPageSize)

	found, hasNext, err := s.animals.ListSightings(c.Request.Context(), id, page, limit)
	if errors.Is(err, animals.ErrNotFound) {
		restapi_handlers.JSONError(c, 404, "animal not found", err)
		return
	} else if err != nil {
		restapi_handlers.JSONError(c, 500, "could not list sightings", err)
		return
	}
	ret := sightingPage{Items: make([]sightingItem, 0, len(found)), HasNext: hasNext}
	for _, sg := range found {
		item := sightingItem{
			ID:        sg.ID,
			Location:  sg.Location,
			Timestamp: sg.Timestamp.UTC().Format(sightingTimeLayout),
			Likes:     sg.Likes,
		}
		if sg.ImagePath != "" {
			url := staticURL(sg.ImagePath)
			item.ImageURL = &url
		}
		ret.Items = append(ret.Items, item)
	}
	if hasNext {
		next := page + 1
		ret.NextPage = &next
	}
	restapi_handlers.JSONResponse(c, 200, ret)
}

type sightingLiked struct {
	Likes   int64 `json:"likes"`
	Success bool  `json:"success"`
}

// PostSightingLike increments a sighting's likes, throttled like animal likes.
func (s *Server) PostSightingLike(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		prom.SightingLikes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "invalid sighting id", err)
		return
	}
	if s.recent != nil && s.recent.CheckAndSet(dedupe.Key(c.ClientIP(), "sighting", strconv.FormatInt(id, 10))) {
		prom.SightingLikes.WithLabelValues("throttled").Inc()
		restapi_handlers.JSONError(c, 429, "too many likes", errors.New("this sighting was just liked from your address"))
		return
	}
	likes, err := s.animals.LikeSighting(c.Request.Context(), id)
	if errors.Is(err, animals.ErrSightingNotFound) {
		prom.SightingLikes.WithLabelValues("not_found").Inc()
		restapi_handlers.JSONError(c, 404, "sighting not found", err)
		return
	} else if err != nil {
		prom.SightingLikes.WithLabelValues("error").Inc()
		restapi_handlers.JSONError(c, 500, "could not like sighting", err)
		return
	}
	prom.SightingLikes.WithLabelValues("accepted").Inc()
	restapi_handlers.JSONResponse(c, 200, sightingLiked{Likes: likes, Success: true})
}
