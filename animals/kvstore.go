package animals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/nsac-nust/stray-tracker/kvprovider"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	animalPrefix = "animal."
	sequenceKey  = "seq.animal"

	sightingPrefix      = "sighting."
	sightingSequenceKey = "seq.sighting"
	// json array of sighting ids per animal, oldest first
	sightingIndexPrefix = "sighting_index."
)

// KVStore keeps each animal as a json document in a key-value store.
// Read-modify-write updates are serialised within the process only.
type KVStore struct {
	kv kvprovider.KVInterface
	mu sync.Mutex
}

func NewKVStore(kv kvprovider.KVInterface) *KVStore {
	return &KVStore{kv: kv}
}

func animalKey(id int64) string {
	return animalPrefix + strconv.FormatInt(id, 10)
}

func (s *KVStore) getRaw(ctx context.Context, id int64) ([]byte, error) {
	raw, err := s.kv.GetBytes(ctx, animalKey(id))
	if errors.Is(err, kvprovider.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading animal %d: %w", id, err)
	}
	return raw, nil
}

func (s *KVStore) Get(ctx context.Context, id int64) (*Animal, error) {
	raw, err := s.getRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	a := Animal{}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decoding animal %d: %w", id, err)
	}
	return &a, nil
}

// lastID reads the highest id handed out by a sequence, 0 if it was never used.
func (s *KVStore) lastID(ctx context.Context, seq string) (int64, error) {
	raw, err := s.kv.GetBytes(ctx, seq)
	if errors.Is(err, kvprovider.ErrNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	last, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt sequence %s %q: %w", seq, raw, err)
	}
	return last, nil
}

func (s *KVStore) nextID(ctx context.Context, seq string) (int64, error) {
	last, err := s.lastID(ctx, seq)
	if err != nil {
		return 0, err
	}
	next := last + 1
	return next, s.kv.Set(ctx, seq, []byte(strconv.FormatInt(next, 10)), 0)
}

func (s *KVStore) Put(ctx context.Context, a *Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		id, err := s.nextID(ctx, sequenceKey)
		if err != nil {
			return fmt.Errorf("allocating animal id: %w", err)
		}
		a.ID = id
	} else {
		// keep the sequence ahead of explicitly numbered animals
		last, err := s.lastID(ctx, sequenceKey)
		if err != nil {
			return fmt.Errorf("storing animal %d: %w", a.ID, err)
		}
		if last < a.ID {
			if err := s.kv.Set(ctx, sequenceKey, []byte(strconv.FormatInt(a.ID, 10)), 0); err != nil {
				return err
			}
		}
	}
	if a.PersonalityTags == nil {
		a.PersonalityTags = append([]string{}, DefaultTags...)
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, animalKey(a.ID), raw, 0)
}

func (s *KVStore) AddTag(ctx context.Context, id int64, tag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.getRaw(ctx, id)
	if err != nil {
		return false, err
	}
	for _, existing := range gjson.GetBytes(raw, "personality_tags").Array() {
		if existing.String() == tag {
			return false, nil
		}
	}
	if !gjson.GetBytes(raw, "personality_tags").IsArray() {
		raw, err = sjson.SetBytes(raw, "personality_tags", []string{})
		if err != nil {
			return false, err
		}
	}
	raw, err = sjson.SetBytes(raw, "personality_tags.-1", tag)
	if err != nil {
		return false, fmt.Errorf("appending tag to animal %d: %w", id, err)
	}
	return true, s.kv.Set(ctx, animalKey(id), raw, 0)
}

func (s *KVStore) Like(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.getRaw(ctx, id)
	if err != nil {
		return 0, err
	}
	likes := gjson.GetBytes(raw, "likes").Int() + 1
	raw, err = sjson.SetBytes(raw, "likes", likes)
	if err != nil {
		return 0, fmt.Errorf("updating likes on animal %d: %w", id, err)
	}
	return likes, s.kv.Set(ctx, animalKey(id), raw, 0)
}

func (s *KVStore) Move(ctx context.Context, id int64, sector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.getRaw(ctx, id)
	if err != nil {
		return err
	}
	raw, err = sjson.SetBytes(raw, "sector", sector)
	if err != nil {
		return fmt.Errorf("moving animal %d: %w", id, err)
	}
	return s.kv.Set(ctx, animalKey(id), raw, 0)
}

// ids lists every stored animal id once.
func (s *KVStore) ids(ctx context.Context) ([]int64, error) {
	keys, err := kvprovider.ScanAll(ctx, s.kv, animalPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("listing animals: %w", err)
	}
	// scans may repeat keys
	seen := map[int64]struct{}{}
	ret := make([]int64, 0, len(keys))
	for _, k := range keys {
		id, err := strconv.ParseInt(strings.TrimPrefix(k, animalPrefix), 10, 64)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ret = append(ret, id)
	}
	return ret, nil
}

func (s *KVStore) all(ctx context.Context) ([]*Animal, error) {
	ids, err := s.ids(ctx)
	if err != nil {
		return nil, err
	}
	ret := make([]*Animal, 0, len(ids))
	for _, id := range ids {
		a, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// deleted between scan and read
			continue
		}
		if err != nil {
			return nil, err
		}
		ret = append(ret, a)
	}
	return ret, nil
}

func (s *KVStore) Trending(ctx context.Context, n int) ([]*Animal, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Likes != all[j].Likes {
			return all[i].Likes > all[j].Likes
		}
		return all[i].ID < all[j].ID
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *KVStore) Count(ctx context.Context) (int, error) {
	ids, err := s.ids(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func sightingKey(id int64) string {
	return sightingPrefix + strconv.FormatInt(id, 10)
}

func sightingIndexKey(animalID int64) string {
	return sightingIndexPrefix + strconv.FormatInt(animalID, 10)
}

func (s *KVStore) AddSighting(ctx context.Context, sg *Sighting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.getRaw(ctx, sg.AnimalID); err != nil {
		return err
	}
	id, err := s.nextID(ctx, sightingSequenceKey)
	if err != nil {
		return fmt.Errorf("allocating sighting id: %w", err)
	}
	sg.ID = id
	if sg.Timestamp.IsZero() {
		sg.Timestamp = time.Now().UTC()
	}
	if sg.Uploader == "" {
		sg.Uploader = AnonymousUploader
	}
	raw, err := json.Marshal(sg)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, sightingKey(id), raw, 0); err != nil {
		return fmt.Errorf("storing sighting %d: %w", id, err)
	}

	index, err := s.kv.GetBytes(ctx, sightingIndexKey(sg.AnimalID))
	if errors.Is(err, kvprovider.ErrNotFound) {
		index = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("reading sightings of animal %d: %w", sg.AnimalID, err)
	}
	index, err = sjson.SetBytes(index, "-1", id)
	if err != nil {
		return fmt.Errorf("indexing sighting %d: %w", id, err)
	}
	return s.kv.Set(ctx, sightingIndexKey(sg.AnimalID), index, 0)
}

func (s *KVStore) getSightingRaw(ctx context.Context, id int64) ([]byte, error) {
	raw, err := s.kv.GetBytes(ctx, sightingKey(id))
	if errors.Is(err, kvprovider.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrSightingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading sighting %d: %w", id, err)
	}
	return raw, nil
}

func (s *KVStore) ListSightings(ctx context.Context, animalID int64, page, limit int) ([]*Sighting, bool, error) {
	if page < 1 || limit < 1 {
		return nil, false, fmt.Errorf("invalid page %d with limit %d", page, limit)
	}
	if _, err := s.getRaw(ctx, animalID); err != nil {
		return nil, false, err
	}
	index, err := s.kv.GetBytes(ctx, sightingIndexKey(animalID))
	if errors.Is(err, kvprovider.ErrNotFound) {
		return []*Sighting{}, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("reading sightings of animal %d: %w", animalID, err)
	}
	entries := gjson.ParseBytes(index).Array()
	// ids grow with time so the newest sighting is last in the index
	newest := len(entries) - 1 - (page-1)*limit
	ret := []*Sighting{}
	for i := newest; i >= 0 && i > newest-limit; i-- {
		raw, err := s.getSightingRaw(ctx, entries[i].Int())
		if err != nil {
			return nil, false, err
		}
		sg := Sighting{}
		if err := json.Unmarshal(raw, &sg); err != nil {
			return nil, false, fmt.Errorf("decoding sighting %d: %w", entries[i].Int(), err)
		}
		ret = append(ret, &sg)
	}
	return ret, newest-limit >= 0, nil
}

func (s *KVStore) LikeSighting(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.getSightingRaw(ctx, id)
	if err != nil {
		return 0, err
	}
	likes := gjson.GetBytes(raw, "likes").Int() + 1
	raw, err = sjson.SetBytes(raw, "likes", likes)
	if err != nil {
		return 0, fmt.Errorf("updating likes on sighting %d: %w", id, err)
	}
	return likes, s.kv.Set(ctx, sightingKey(id), raw, 0)
}
