package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store is the invalidate-on-mutation contract: reads go through GetJSON /
// SetJSON under a collection tag, mutations call Invalidate with every
// collection they make stale. A cache failure is never an operation failure;
// readers just fall through to the database.
type Store interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, collection, key string, value any)
	Invalidate(ctx context.Context, collections ...string)
}

// --------------------------------------------------
// Collection tags
// --------------------------------------------------

const ServicesCollection = "services"

func ProviderServicesCollection(providerID string) string {
	return "services:provider:" + providerID
}

func CustomerBookingsCollection(customerID string) string {
	return "bookings:customer:" + customerID
}

func ProviderBookingsCollection(providerID string) string {
	return "bookings:provider:" + providerID
}

func ProviderFeedbackCollection(providerID string) string {
	return "feedbacks:provider:" + providerID
}

func ProviderStatsCollection(providerID string) string {
	return "stats:provider:" + providerID
}

func CustomerStatsCollection(customerID string) string {
	return "stats:customer:" + customerID
}

// --------------------------------------------------
// Redis store
// --------------------------------------------------

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("cache get error:", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Println("cache decode error:", err)
		return false
	}

	return true
}

func (s *RedisStore) SetJSON(ctx context.Context, collection, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Println("cache encode error:", err)
		return
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, s.ttl)
	// Each collection set tracks its member keys so Invalidate can find them.
	pipe.SAdd(ctx, memberSet(collection), key)
	pipe.Expire(ctx, memberSet(collection), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Println("cache set error:", err)
	}
}

func (s *RedisStore) Invalidate(ctx context.Context, collections ...string) {
	for _, collection := range collections {
		keys, err := s.rdb.SMembers(ctx, memberSet(collection)).Result()
		if err != nil {
			log.Println("cache invalidate error:", err)
			continue
		}

		keys = append(keys, memberSet(collection))
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Println("cache invalidate error:", err)
		}
	}
}

func memberSet(collection string) string {
	return "collection:" + collection
}

// --------------------------------------------------
// Noop store
// --------------------------------------------------

// Noop satisfies Store when no Redis is configured (and in tests).
type Noop struct{}

func (Noop) GetJSON(ctx context.Context, key string, dest any) bool { return false }

func (Noop) SetJSON(ctx context.Context, collection, key string, value any) {}

func (Noop) Invalidate(ctx context.Context, collections ...string) {}

var _ Store = (*RedisStore)(nil)
var _ Store = Noop{}
