package restapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/dedupe"
	"github.com/nsac-nust/stray-tracker/prom"
	"github.com/nsac-nust/stray-tracker/restapi/restapi_handlers"
)

type likeResponse struct {
	Likes int64 `json:"likes"`
}

// PostLike increments an animal's likes. With the throttle enabled, an address repeating
// its last like of the same animal is refused.
func (s *Server) PostLike(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		prom.Likes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "invalid animal id", err)
		return
	}
	if s.recent != nil && s.recent.CheckAndSet(dedupe.Key(c.ClientIP(), strconv.FormatInt(id, 10))) {
		prom.Likes.WithLabelValues("throttled").Inc()
		restapi_handlers.JSONError(c, 429, "too many likes", errors.New("this animal was just liked from your address"))
		return
	}
	likes, err := s.animals.Like(c.Request.Context(), id)
	if errors.Is(err, animals.ErrNotFound) {
		prom.Likes.WithLabelValues("not_found").Inc()
		restapi_handlers.JSONError(c, 404, "animal not found", err)
		return
	} else if err != nil {
		prom.Likes.WithLabelValues("error").Inc()
		restapi_handlers.JSONError(c, 500, "could not like animal", err)
		return
	}
	prom.Likes.WithLabelValues("accepted").Inc()
	restapi_handlers.JSONResponse(c, 200, likeResponse{Likes: likes})
}

// GetAnimal returns a single animal profile.
func (s *Server) GetAnimal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		restapi_handlers.JSONError(c, 400, "invalid animal id", err)
		return
	}
	a, err := s.animals.Get(c.Request.Context(), id)
	if errors.Is(err, animals.ErrNotFound) {
		restapi_handlers.JSONError(c, 404, "animal not found", err)
		return
	} else if err != nil {
		restapi_handlers.JSONError(c, 500, "could not load animal", err)
		return
	}
	restapi_handlers.JSONResponse(c, 200, a)
}
