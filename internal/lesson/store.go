package lesson

import (
	"sync"
	"time"
)

// Store keeps at most one active lesson per learner. Starting a new lesson
// or abandoning the current one drops it with everything answered so far.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	idle     time.Duration
	now      func() time.Time
}

func NewStore(idle time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		idle:     idle,
		now:      time.Now,
	}
}

// Start registers s as the learner's lesson and reports whether one was replaced.
func (st *Store) Start(s *Session) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, replaced := st.sessions[s.UserID]
	st.sessions[s.UserID] = s
	return replaced
}

func (st *Store) Get(userID int64) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	return s, ok
}

func (st *Store) Abandon(userID int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[userID]
	delete(st.sessions, userID)
	return ok
}

// Release removes the learner's lesson only if it is still id.
func (st *Store) Release(userID int64, id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok && s.ID == id {
		delete(st.sessions, userID)
	}
}

// EvictIdle drops lessons untouched for longer than the idle timeout.
// Lessons are inspected outside the store lock; one replaced meanwhile is kept.
func (st *Store) EvictIdle() int {
	st.mu.Lock()
	cutoff := st.now().Add(-st.idle)
	snapshot := make(map[int64]*Session, len(st.sessions))
	for uid, s := range st.sessions {
		snapshot[uid] = s
	}
	st.mu.Unlock()

	var stale []int64
	for uid, s := range snapshot {
		if s.TouchedAt().Before(cutoff) {
			stale = append(stale, uid)
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for _, uid := range stale {
		if st.sessions[uid] == snapshot[uid] {
			delete(st.sessions, uid)
			n++
		}
	}
	return n
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
