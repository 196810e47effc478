package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-forecast-dashboard/pkg/common"
	redisPkg "stock-forecast-dashboard/pkg/redis"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrSymbolListNotFound is returned when a user has never saved a list.
var ErrSymbolListNotFound = errors.New("symbol list not found")

// SymbolListRepository stores the sidebar ticker list of each user as a JSON
// array of symbols. Lists of anonymous owners expire after the session TTL
// of inactivity; lists of signed-in users are kept.
type SymbolListRepository interface {
	Get(ctx context.Context, owner string) ([]string, error)
	Save(ctx context.Context, owner string, symbols []string) error
}

// IsAnonymousOwner reports whether owner is keyed by a browser session
// rather than a user.
func IsAnonymousOwner(owner string) bool {
	return strings.HasPrefix(owner, common.AnonOwnerPrefix)
}

type redisSymbolListRepository struct {
	client  *redisPkg.Client
	anonTTL time.Duration
}

// NewRedisSymbolListRepository stores lists in Redis under one key per owner.
func NewRedisSymbolListRepository(client *redisPkg.Client, anonTTL time.Duration) SymbolListRepository {
	return &redisSymbolListRepository{client: client, anonTTL: anonTTL}
}

func (r *redisSymbolListRepository) Get(ctx context.Context, owner string) ([]string, error) {
	key := fmt.Sprintf(common.RedisKeySidebarSymbols, owner)

	var cmd *redis.StringCmd
	if ttl := r.ttl(owner); ttl > 0 {
		cmd = r.client.GetEx(ctx, key, ttl)
	} else {
		cmd = r.client.Get(ctx, key)
	}
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSymbolListNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSymbols(raw)
}

func (r *redisSymbolListRepository) Save(ctx context.Context, owner string, symbols []string) error {
	raw, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, fmt.Sprintf(common.RedisKeySidebarSymbols, owner), raw, r.ttl(owner)).Err()
}

func (r *redisSymbolListRepository) ttl(owner string) time.Duration {
	if IsAnonymousOwner(owner) {
		return r.anonTTL
	}
	return 0
}

type memorySymbolListRepository struct {
	cache   *gocache.Cache
	anonTTL time.Duration
}

// NewMemorySymbolListRepository keeps lists in process memory. It is used
// when Redis is disabled. Expired anonymous lists are purged by the cache
// janitor.
func NewMemorySymbolListRepository(anonTTL time.Duration) SymbolListRepository {
	cleanup := anonTTL / 4
	if cleanup <= 0 {
		cleanup = time.Hour
	}
	return &memorySymbolListRepository{
		cache:   gocache.New(gocache.NoExpiration, cleanup),
		anonTTL: anonTTL,
	}
}

func (r *memorySymbolListRepository) Get(_ context.Context, owner string) ([]string, error) {
	v, ok := r.cache.Get(owner)
	if !ok {
		return nil, ErrSymbolListNotFound
	}
	raw := v.([]byte)
	if IsAnonymousOwner(owner) {
		r.cache.Set(owner, raw, r.ttl(owner))
	}
	return decodeSymbols(raw)
}

func (r *memorySymbolListRepository) Save(_ context.Context, owner string, symbols []string) error {
	raw, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	r.cache.Set(owner, raw, r.ttl(owner))
	return nil
}

func (r *memorySymbolListRepository) ttl(owner string) time.Duration {
	if IsAnonymousOwner(owner) && r.anonTTL > 0 {
		return r.anonTTL
	}
	return gocache.NoExpiration
}

func decodeSymbols(raw []byte) ([]string, error) {
	var symbols []string
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, fmt.Errorf("failed to decode symbol list: %w", err)
	}
	return symbols, nil
}
