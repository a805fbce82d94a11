//go:build integration

package integration_tests

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/dedupe"
	"github.com/nsac-nust/stray-tracker/restapi"
	"github.com/nsac-nust/stray-tracker/uploads"
)

func newServer(t *testing.T, store animals.Store) *restapi.Server {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := restapi.NewServer(ctx, store, dedupe.New(10000, 7), nil, uploads.NewStore(t.TempDir(), 1024, []string{"png"}))
	require.NoError(t, err)
	return server
}

func vote(server *restapi.Server, id string, tag string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/animal/"+id+"/vote_tag", strings.NewReader(`{"tag": "`+tag+`"}`))
	server.Router.ServeHTTP(rec, req)
	return rec.Code
}

func TestVotesOverRedis(t *testing.T) {
	ctx := context.Background()
	store := CleanRedisStore(t)
	seed, err := animals.LoadSeed(animals.DefaultSeed)
	require.NoError(t, err)
	n, err := animals.Seed(ctx, store, seed)
	require.NoError(t, err)
	require.Equal(t, len(seed), n)

	server := newServer(t, store)
	require.Equal(t, 200, vote(server, "1", "Playful"))
	require.Equal(t, 403, vote(server, "1", "Playful"))
	require.Equal(t, 404, vote(server, "999", "Playful"))

	// a restart forgets votes but the tag is stored once
	server = newServer(t, store)
	require.Equal(t, 200, vote(server, "1", "Playful"))
	a, err := store.Get(ctx, 1)
	require.NoError(t, err)
	count := 0
	for _, tag := range a.PersonalityTags {
		if tag == "Playful" {
			count++
		}
	}
	require.Equal(t, 1, count)

	// profiles survive in redis
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	MarshalEqual(t, a, again)
}
