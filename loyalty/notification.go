package loyalty

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NotificationStore holds at most one pending message per account. Take
// must read and remove in one step so only the first reader gets it.
type NotificationStore interface {
	Put(ctx context.Context, accountID uint, message string) error
	Take(ctx context.Context, accountID uint) (string, bool, error)
}

// MemoryNotificationStore is process local and lost on restart.
type MemoryNotificationStore struct {
	mu      sync.Mutex
	pending map[uint]string
}

func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{pending: make(map[uint]string)}
}

func (s *MemoryNotificationStore) Put(_ context.Context, accountID uint, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[accountID] = message
	return nil
}

func (s *MemoryNotificationStore) Take(_ context.Context, accountID uint) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.pending[accountID]
	if ok {
		delete(s.pending, accountID)
	}
	return msg, ok, nil
}

// RedisNotificationStore shares pending messages across processes. Take
// relies on GETDEL, available from Redis 6.2.
type RedisNotificationStore struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewRedisNotificationStore takes a ttl of zero to keep messages until read.
func NewRedisNotificationStore(client redis.Cmdable, ttl time.Duration) *RedisNotificationStore {
	return &RedisNotificationStore{client: client, ttl: ttl, prefix: "loyalty:rank-notification:"}
}

func (s *RedisNotificationStore) key(accountID uint) string {
	return fmt.Sprintf("%s%d", s.prefix, accountID)
}

func (s *RedisNotificationStore) Put(ctx context.Context, accountID uint, message string) error {
	if err := s.client.Set(ctx, s.key(accountID), message, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "store rank notification")
	}
	return nil
}

func (s *RedisNotificationStore) Take(ctx context.Context, accountID uint) (string, bool, error) {
	msg, err := s.client.GetDel(ctx, s.key(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "take rank notification")
	}
	return msg, true, nil
}
