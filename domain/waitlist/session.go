package waitlist

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	form     *Form
	lastSeen time.Time
}

// SessionRegistry maps browser session ids to their forms. Sessions idle for
// longer than idleTTL are dropped and their pending status timers cancelled.
// At most maxSessions are held; a new session past the cap evicts the least
// recently seen one.
type SessionRegistry struct {
	idleTTL     time.Duration
	maxSessions int
	newForm     func() *Form
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	ops      uint64
}

func NewSessionRegistry(idleTTL time.Duration, maxSessions int, newForm func() *Form) *SessionRegistry {
	return &SessionRegistry{
		idleTTL:     idleTTL,
		maxSessions: maxSessions,
		newForm:     newForm,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Acquire returns the form for id, creating a session when id is empty,
// malformed or unknown. The returned id is the one the caller should reuse.
func (r *SessionRegistry) Acquire(id string) (string, *Form) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		r.pruneLocked(now)
		return id, s.form
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.makeRoomLocked(now)

	s := &session{form: r.newForm(), lastSeen: now}
	r.sessions[id] = s
	r.pruneLocked(now)

	return id, s.form
}

// Lookup returns the form for an existing session without creating one.
func (r *SessionRegistry) Lookup(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.form, true
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Prune drops idle sessions immediately.
func (r *SessionRegistry) Prune() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictIdleLocked(r.now())
}

func (r *SessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.form.Close()
		delete(r.sessions, id)
	}
}

// Opportunistic cleanup, every 1024 acquisitions.
func (r *SessionRegistry) pruneLocked(now time.Time) {
	r.ops++
	if r.ops%1024 == 0 {
		r.evictIdleLocked(now)
	}
}

func (r *SessionRegistry) makeRoomLocked(now time.Time) {
	if r.maxSessions <= 0 || len(r.sessions) < r.maxSessions {
		return
	}

	r.evictIdleLocked(now)

	for len(r.sessions) >= r.maxSessions {
		var oldestID string
		var oldest *session
		for id, s := range r.sessions {
			if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
				oldestID, oldest = id, s
			}
		}
		oldest.form.Close()
		delete(r.sessions, oldestID)
	}
}

func (r *SessionRegistry) evictIdleLocked(now time.Time) {
	cutoff := now.Add(-r.idleTTL)
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			s.form.Close()
			delete(r.sessions, id)
		}
	}
}
