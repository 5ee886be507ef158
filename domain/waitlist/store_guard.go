package waitlist

import (
	"context"

	"github.com/akeren/referrly/pkg/circuitbreaker"
)

type guardedWaitlistStore struct {
	next    WaitlistStore
	breaker circuitbreaker.CircuitBreaker
}

// NewGuardedWaitlistStore fails calls fast with circuitbreaker.ErrCircuitOpen
// once the backend has failed repeatedly. Ping is never short-circuited.
func NewGuardedWaitlistStore(next WaitlistStore, breaker circuitbreaker.CircuitBreaker) WaitlistStore {
	if breaker == nil {
		breaker = circuitbreaker.NewCircuitBreaker(nil)
	}
	return &guardedWaitlistStore{next: next, breaker: breaker}
}

func (s *guardedWaitlistStore) GetDocument(ctx context.Context, ref DocumentRef) (*Document, bool, error) {
	var (
		doc   *Document
		found bool
	)

	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		doc, found, err = s.next.GetDocument(ctx, ref)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	return doc, found, nil
}

func (s *guardedWaitlistStore) CreateDocument(ctx context.Context, ref DocumentRef, emails []string) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.next.CreateDocument(ctx, ref, emails)
	})
}

func (s *guardedWaitlistStore) AppendEmail(ctx context.Context, ref DocumentRef, email string) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.next.AppendEmail(ctx, ref, email)
	})
}

func (s *guardedWaitlistStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
