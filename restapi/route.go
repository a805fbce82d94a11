/*
Package restapi exposes the public animal endpoints over http.
*/
package restapi

import (
	"context"
	"fmt"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/dedupe"
	st "github.com/nsac-nust/stray-tracker/settings"
	"github.com/nsac-nust/stray-tracker/uploads"
)

type Server struct {
	Router   *gin.Engine
	animals  animals.Store
	votes    dedupe.Membership
	recent   *dedupe.Recent // nil disables the like throttle
	trending *trendingCache
	uploads  *uploads.Store
}

// response to hitting '/' on the server
func GetRoot(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/plain")
	_, err := c.Writer.Write([]byte("Stray Tracker"))
	if err != nil {
		st.Logger.Err(err).Msg("get root")
	}
}

// Basic middleware to log errors.
func ErrorLoggerMiddleware(c *gin.Context) {
	if c == nil {
		st.Logger.Error().Msg("gin error, couldn't provide error info as context was nil.")
		return
	}
	c.Next()

	for _, err := range c.Errors {
		if c.Request == nil || c.Request.URL == nil {
			st.Logger.Error().Err(err).Msg("gin error, limited detail was Request or Request URL was nil.")
		} else {
			st.Logger.Error().Err(err).Msgf("gin error on route %s %s", c.Request.Method, c.Request.URL.Path)
		}
	}
}

// NewServer registers all routes. votes remembers accepted tag votes and must be shared by every
// request, recent may be nil.
func NewServer(ctx context.Context, store animals.Store, votes dedupe.Membership, recent *dedupe.Recent, up *uploads.Store) (*Server, error) {
	trending, err := newTrendingCache(ctx, st.Settings.Trending.Limit, st.Settings.Trending.TTL, int64(st.Settings.Trending.CacheBytes))
	if err != nil {
		return nil, fmt.Errorf("trending cache: %w", err)
	}
	gin.SetMode(gin.ReleaseMode) // don't print route list on start

	router := gin.New()
	// voters are identified by address, only listed proxies may override it
	if err := router.SetTrustedProxies(st.Settings.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.MaxMultipartMemory = int64(st.Uploads.MaxBytes)
	router.Use(ErrorLoggerMiddleware)

	s := &Server{
		Router:   router,
		animals:  store,
		votes:    votes,
		recent:   recent,
		trending: trending,
		uploads:  up,
	}

	// add a personality tag, once per voter, animal and tag
	lpath := "/api/animal/:id/vote_tag"
	router.POST(lpath, MetricHandler(lpath, s.PostVoteTag))
	lpath = "/api/animal/:id"
	router.GET(lpath, MetricHandler(lpath, s.GetAnimal))
	lpath = "/api/like/:id"
	router.POST(lpath, MetricHandler(lpath, s.PostLike))
	lpath = "/api/trending"
	router.GET(lpath, MetricHandler(lpath, s.GetTrending))
	lpath = "/api/sighting/upload"
	router.POST(lpath, MetricHandler(lpath, s.PostSighting))
	lpath = "/api/sightings/:id"
	router.GET(lpath, MetricHandler(lpath, s.GetSightings))
	lpath = "/api/sighting/:id/like"
	router.POST(lpath, MetricHandler(lpath, s.PostSightingLike))

	// uploaded images, paths are returned by the sighting upload
	router.Static("/static", up.Root())

	// base response
	router.GET("/", GetRoot)

	pprof.Register(router, "debug/pprof")

	// prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	st.Logger.Info().Str("static", up.Root()).Int("trending_limit", trending.limit).Msg("stray tracker restapi ready")
	return s, nil
}
