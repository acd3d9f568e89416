package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"interview-chat/internal/llm"
)

var seed = llm.Message{Role: "system", Content: "you are an interviewer"}

func TestGetOrCreateSeedsOnce(t *testing.T) {
	s := NewStore(10)
	key := Key{UserID: "u1", ConversationID: "c1"}

	msgs, err := s.GetOrCreate(key, seed)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0] != seed {
		t.Fatalf("expected fresh session [seed], got %+v", msgs)
	}

	// Second access must not seed again.
	msgs2, err := s.GetOrCreate(key, llm.Message{Role: "system", Content: "other seed"})
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if len(msgs2) != 1 || msgs2[0] != seed {
		t.Fatalf("second access changed the seed: %+v", msgs2)
	}

	// Returned slice is a copy; mutating it must not touch the store.
	msgs2[0] = llm.Message{Role: "user", Content: "mutated"}
	msgs3, _ := s.GetOrCreate(key, seed)
	if msgs3[0] != seed {
		t.Fatalf("internal state mutated via returned slice")
	}
}

func TestInvalidKey(t *testing.T) {
	s := NewStore(10)
	for _, key := range []Key{{}, {UserID: "u1"}, {ConversationID: "c1"}} {
		if _, err := s.GetOrCreate(key, seed); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("key %+v: expected ErrInvalidKey, got %v", key, err)
		}
	}
	if s.Size() != 0 {
		t.Fatalf("invalid keys must not create sessions, size=%d", s.Size())
	}
}

func TestKeysAreIsolated(t *testing.T) {
	s := NewStore(10)
	keyA := Key{UserID: "u1", ConversationID: "c1"}
	keyB := Key{UserID: "u1", ConversationID: "c2"}

	msgsA, _ := s.GetOrCreate(keyA, seed)
	msgsA = append(msgsA, llm.Message{Role: "user", Content: "hello from A"})
	s.TrimAndStore(keyA, msgsA)

	msgsB, _ := s.GetOrCreate(keyB, seed)
	if len(msgsB) != 1 {
		t.Fatalf("appending to A leaked into B: %+v", msgsB)
	}
	msgsA2, _ := s.GetOrCreate(keyA, seed)
	if len(msgsA2) != 2 || msgsA2[1].Content != "hello from A" {
		t.Fatalf("A lost its own message: %+v", msgsA2)
	}
}

func TestTrimKeepsSeedAndMostRecent(t *testing.T) {
	const max = 10
	s := NewStore(max)
	key := Key{UserID: "u1", ConversationID: "c1"}

	msgs, _ := s.GetOrCreate(key, seed)
	// 11 turns of user+assistant, well past the bound.
	for turn := 0; turn < 11; turn++ {
		msgs = append(msgs, llm.Message{Role: "user", Content: fmt.Sprintf("q%d", turn)})
		msgs = append(msgs, llm.Message{Role: "assistant", Content: fmt.Sprintf("a%d", turn)})
	}
	s.TrimAndStore(key, msgs)

	stored, _ := s.GetOrCreate(key, seed)
	if len(stored) != max {
		t.Fatalf("expected %d messages after trim, got %d", max, len(stored))
	}
	if stored[0] != seed {
		t.Fatalf("seed message lost: %+v", stored[0])
	}
	// The tail must be the most recent max-1 appends in original order.
	want := msgs[len(msgs)-(max-1):]
	for i, m := range stored[1:] {
		if m != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i+1, m, want[i])
		}
	}
}

func TestTrimAndStoreIdempotent(t *testing.T) {
	s := NewStore(4)
	key := Key{UserID: "u1", ConversationID: "c1"}

	msgs, _ := s.GetOrCreate(key, seed)
	for i := 0; i < 6; i++ {
		msgs = append(msgs, llm.Message{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}
	s.TrimAndStore(key, msgs)
	first, _ := s.GetOrCreate(key, seed)

	s.TrimAndStore(key, first)
	second, _ := s.GetOrCreate(key, seed)

	if len(first) != len(second) {
		t.Fatalf("second trim changed length: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second trim changed entry %d: %+v -> %+v", i, first[i], second[i])
		}
	}
}

func TestEvictIdle(t *testing.T) {
	s := NewStore(10)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	keyOld := Key{UserID: "u1", ConversationID: "old"}
	keyFresh := Key{UserID: "u1", ConversationID: "fresh"}

	if _, err := s.GetOrCreate(keyOld, seed); err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	clock = base.Add(31 * time.Minute)
	msgs, _ := s.GetOrCreate(keyFresh, seed)
	msgs = append(msgs, llm.Message{Role: "user", Content: "still here"})
	s.TrimAndStore(keyFresh, msgs)

	evicted := s.EvictIdle(clock, 30*time.Minute)
	if evicted != 1 {
		t.Fatalf("expected 1 eviction, got %d", evicted)
	}
	if s.Size() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", s.Size())
	}

	// Survivor keeps its full transcript.
	fresh, _ := s.GetOrCreate(keyFresh, seed)
	if len(fresh) != 2 || fresh[1].Content != "still here" {
		t.Fatalf("surviving session lost content: %+v", fresh)
	}

	// Evicted key starts over with a fresh seed.
	old, _ := s.GetOrCreate(keyOld, seed)
	if len(old) != 1 {
		t.Fatalf("evicted session was not recreated fresh: %+v", old)
	}
}

func TestEvictIdleKeepsSessionAtCutoff(t *testing.T) {
	s := NewStore(10)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	key := Key{UserID: "u1", ConversationID: "c1"}
	if _, err := s.GetOrCreate(key, seed); err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	// lastAccessed == now-threshold exactly: not strictly before the cutoff.
	if n := s.EvictIdle(base.Add(30*time.Minute), 30*time.Minute); n != 0 {
		t.Fatalf("session at the cutoff must survive, evicted %d", n)
	}
	if n := s.EvictIdle(base.Add(30*time.Minute+time.Nanosecond), 30*time.Minute); n != 1 {
		t.Fatalf("session past the cutoff must go, evicted %d", n)
	}
}

func TestTrimAndStoreRecreatesAfterEviction(t *testing.T) {
	s := NewStore(10)
	key := Key{UserID: "u1", ConversationID: "c1"}

	msgs, _ := s.GetOrCreate(key, seed)
	msgs = append(msgs, llm.Message{Role: "user", Content: "q"})

	// Sweep fires while the turn is in flight.
	s.EvictIdle(time.Now().Add(time.Hour), time.Minute)
	if s.Size() != 0 {
		t.Fatalf("expected empty store after sweep")
	}

	msgs = append(msgs, llm.Message{Role: "assistant", Content: "a"})
	s.TrimAndStore(key, msgs)

	stored, _ := s.GetOrCreate(key, seed)
	if len(stored) != 3 || stored[0] != seed {
		t.Fatalf("in-flight turn lost after eviction: %+v", stored)
	}
}
