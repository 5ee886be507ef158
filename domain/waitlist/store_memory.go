package waitlist

import (
	"context"
	"sync"
)

// MemoryWaitlistStore keeps documents in process memory. It is meant for local
// development and tests; nothing survives a restart.
type MemoryWaitlistStore struct {
	mu        sync.Mutex
	documents map[DocumentRef][]string
}

func NewMemoryWaitlistStore() *MemoryWaitlistStore {
	return &MemoryWaitlistStore{documents: make(map[DocumentRef][]string)}
}

func (s *MemoryWaitlistStore) GetDocument(_ context.Context, ref DocumentRef) (*Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emails, ok := s.documents[ref]
	if !ok {
		return nil, false, nil
	}

	return &Document{Ref: ref, Emails: append([]string(nil), emails...)}, true, nil
}

func (s *MemoryWaitlistStore) CreateDocument(_ context.Context, ref DocumentRef, emails []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[ref]; !ok {
		s.documents[ref] = []string{}
	}
	for _, email := range emails {
		s.addLocked(ref, email)
	}
	return nil
}

func (s *MemoryWaitlistStore) AppendEmail(_ context.Context, ref DocumentRef, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(ref, email)
	return nil
}

func (s *MemoryWaitlistStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryWaitlistStore) addLocked(ref DocumentRef, email string) {
	for _, existing := range s.documents[ref] {
		if existing == email {
			return
		}
	}
	s.documents[ref] = append(s.documents[ref], email)
}
