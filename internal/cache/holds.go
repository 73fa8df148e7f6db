package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// HoldStore mirrors temporary-appointment expiry in Redis so that a
// lapsed hold disappears without waiting for the sweeper. The database
// row stays the source of truth; a nil store degrades to DB-only
// expiry.
type HoldStore struct {
	client *redis.Client
}

func NewHoldStore(addr, password string) *HoldStore {
	if addr == "" {
		return nil
	}

	return &HoldStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func holdKey(appointmentID uint) string {
	return fmt.Sprintf("hold:appointment:%d", appointmentID)
}

func (s *HoldStore) Place(ctx context.Context, appointmentID uint, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	return s.client.Set(ctx, holdKey(appointmentID), "1", ttl).Err()
}

func (s *HoldStore) Release(ctx context.Context, appointmentID uint) error {
	if s == nil {
		return nil
	}
	return s.client.Del(ctx, holdKey(appointmentID)).Err()
}

// Alive reports whether the hold key still exists. Once the TTL has
// fired the hold is gone even if the sweeper has not purged the row.
func (s *HoldStore) Alive(ctx context.Context, appointmentID uint) (bool, error) {
	if s == nil {
		return false, nil
	}
	n, err := s.client.Exists(ctx, holdKey(appointmentID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
