package dedupe

import (
	"math/rand"
	"testing"
)

func TestRecent(t *testing.T) {
	r := NewRecent(16)
	if r.Slots() != 2 {
		t.Fatalf("expected 2 slots, got %d", r.Slots())
	}
	shouldNotContain(t, "Empty lookup", r, "1.2.3.4\x1f1\x1flike")
	shouldContain(t, "Last set", r, "1.2.3.4\x1f1\x1flike")
	shouldContain(t, "Still set", r, "1.2.3.4\x1f1\x1flike")

	// fill every slot with other keys; the first key must eventually be forgotten
	evicted := false
	for i := 0; i < 64 && !evicted; i++ {
		r.CheckAndSet(string(rune('a' + i)))
		evicted = !r.CheckAndSet("1.2.3.4\x1f1\x1flike")
	}
	if !evicted {
		t.Errorf("key was never evicted from a 2 slot lookup")
	}
}

func TestRecentRounding(t *testing.T) {
	if NewRecent(0).Slots() != 1 {
		t.Errorf("minimum size should be one slot")
	}
	if NewRecent(100).Slots() != 16 {
		t.Errorf("100 bytes should round up to 128 bytes / 16 slots")
	}
}

func BenchmarkRecent(b *testing.B) {
	r := NewRecent(100000)
	var seed [1000]string
	for i := 0; i < len(seed); i++ {
		buf := make([]byte, 40)
		rand.Read(buf)
		seed[i] = string(buf)
	}
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		result = r.CheckAndSet(seed[rand.Intn(len(seed))])
	}
}

func shouldContain(t *testing.T, msg string, r *Recent, key string) {
	if !r.CheckAndSet(key) {
		t.Errorf("should contain, %s: key %q, slots: %v", msg, key, r.slots)
	}
}

func shouldNotContain(t *testing.T, msg string, r *Recent, key string) {
	if r.CheckAndSet(key) {
		t.Errorf("should not contain, %s: %q", msg, key)
	}
}
