package waitlist

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
)

type redisWaitlistStore struct {
	client *redis.Client
}

// NewRedisWaitlistStore keeps each document as a Redis set. SADD is the union primitive.
func NewRedisWaitlistStore(client *redis.Client) WaitlistStore {
	return &redisWaitlistStore{client: client}
}

func redisKey(ref DocumentRef) string {
	return fmt.Sprintf("waitlist:%s:%s", ref.Collection, ref.ID)
}

func (s *redisWaitlistStore) GetDocument(ctx context.Context, ref DocumentRef) (*Document, bool, error) {
	members, err := s.client.SMembers(ctx, redisKey(ref)).Result()
	if err != nil {
		return nil, false, err
	}

	// Redis deletes empty sets, so an empty reply means the document was never created.
	if len(members) == 0 {
		return nil, false, nil
	}

	sort.Strings(members)
	return &Document{Ref: ref, Emails: members}, true, nil
}

func (s *redisWaitlistStore) CreateDocument(ctx context.Context, ref DocumentRef, emails []string) error {
	if len(emails) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(emails))
	for _, email := range emails {
		members = append(members, email)
	}

	return s.client.SAdd(ctx, redisKey(ref), members...).Err()
}

func (s *redisWaitlistStore) AppendEmail(ctx context.Context, ref DocumentRef, email string) error {
	return s.client.SAdd(ctx, redisKey(ref), email).Err()
}

func (s *redisWaitlistStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
