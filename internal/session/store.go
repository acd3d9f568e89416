package session

import (
	"errors"
	"sync"
	"time"

	"interview-chat/internal/llm"
)

// ErrInvalidKey is returned for a key with an empty component.
var ErrInvalidKey = errors.New("session: invalid key")

// Key identifies one logical conversation. A struct rather than a joined
// string, so identifiers containing a separator character cannot collide.
type Key struct {
	UserID         string
	ConversationID string
}

func (k Key) Validate() error {
	if k.UserID == "" || k.ConversationID == "" {
		return ErrInvalidKey
	}
	return nil
}

// String is for log lines only, never for lookups.
func (k Key) String() string { return k.UserID + "/" + k.ConversationID }

type session struct {
	messages     []llm.Message
	lastAccessed time.Time
}

// Store holds every active conversation transcript in process memory.
//
// GetOrCreate hands out a copy of the transcript and TrimAndStore writes the
// finished turn back, so a turn that fails mid-flight leaves the stored
// transcript untouched. There is no per-key lock: two concurrent turns on the
// same conversation are last-write-wins, never interleaved or torn.
type Store struct {
	mu          sync.Mutex
	sessions    map[Key]*session
	maxMessages int
	now         func() time.Time
}

func NewStore(maxMessages int) *Store {
	return &Store{
		sessions:    make(map[Key]*session),
		maxMessages: maxMessages,
		now:         time.Now,
	}
}

// GetOrCreate returns a copy of the transcript for key, creating the session
// with seed as its first message on first access. Refreshes the idle timer.
func (s *Store) GetOrCreate(key Key, seed llm.Message) ([]llm.Message, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{messages: []llm.Message{seed}}
		s.sessions[key] = sess
	}
	sess.lastAccessed = s.now()
	out := make([]llm.Message, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// TrimAndStore writes a transcript back, keeping the seed message and the
// most recent maxMessages-1 entries. Idempotent on already-trimmed input.
// Recreates the session if the sweep evicted it while the turn was in flight.
func (s *Store) TrimAndStore(key Key, messages []llm.Message) {
	if key.Validate() != nil || len(messages) == 0 {
		return
	}
	trimmed := trim(messages, s.maxMessages)
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{}
		s.sessions[key] = sess
	}
	sess.messages = trimmed
	sess.lastAccessed = s.now()
}

func trim(messages []llm.Message, max int) []llm.Message {
	if len(messages) <= max {
		out := make([]llm.Message, len(messages))
		copy(out, messages)
		return out
	}
	out := make([]llm.Message, 0, max)
	out = append(out, messages[0])
	return append(out, messages[len(messages)-(max-1):]...)
}

// EvictIdle removes every session whose last access is older than
// now-threshold and reports how many were removed. Sessions touched at or
// after the cutoff are left untouched.
func (s *Store) EvictIdle(now time.Time, threshold time.Duration) int {
	cutoff := now.Add(-threshold)
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for key, sess := range s.sessions {
		if sess.lastAccessed.Before(cutoff) {
			delete(s.sessions, key)
			evicted++
		}
	}
	return evicted
}

// Size reports the number of active sessions.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
