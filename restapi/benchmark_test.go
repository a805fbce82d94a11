package restapi

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/dedupe"
	"github.com/nsac-nust/stray-tracker/kvprovider"
	"github.com/nsac-nust/stray-tracker/uploads"
)

func newBenchServer(b *testing.B) *Server {
	// logging can be expensive so only log warnings
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	b.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	store := animals.NewKVStore(kvprovider.NewMemoryProvider())
	if err := store.Put(context.Background(), &animals.Animal{Name: "Oreo", Sector: "SEECS"}); err != nil {
		b.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.Cleanup(cancel)
	server, err := NewServer(ctx, store, dedupe.New(1<<20, 7), nil, uploads.NewStore(b.TempDir(), 1024, []string{"png"}))
	if err != nil {
		b.Fatal(err)
	}
	return server
}

func BenchmarkVoteTagAccepted(b *testing.B) {
	server := newBenchServer(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/api/animal/1/vote_tag", strings.NewReader(`{"tag": "Playful"}`))
		// a new voter each time
		req.RemoteAddr = fmt.Sprintf("10.%d.%d.%d:1234", (i>>16)&255, (i>>8)&255, i&255)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)
	}
}

func BenchmarkVoteTagDuplicate(b *testing.B) {
	server := newBenchServer(b)
	server.votes.Insert(dedupe.Key(testRemote, "1", "Playful"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/api/animal/1/vote_tag", strings.NewReader(`{"tag": "Playful"}`))
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)
		if rec.Code != 403 {
			b.Fatalf("expected duplicate, got %d", rec.Code)
		}
	}
}
