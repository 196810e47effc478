package repository

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"stock-forecast-dashboard/pkg/common"
	redisPkg "stock-forecast-dashboard/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisSymbolLists(t *testing.T, anonTTL time.Duration) (SymbolListRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := redisPkg.NewClient(redisPkg.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSymbolListRepository(client, anonTTL), mr
}

func symbolsKey(owner string) string {
	return fmt.Sprintf(common.RedisKeySidebarSymbols, owner)
}

func TestRedisSymbolListRepository(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisSymbolLists(t, time.Hour)

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrSymbolListNotFound)

	require.NoError(t, repo.Save(ctx, "u1", []string{"NVDA", "TSLA"}))
	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "TSLA"}, got)

	raw, err := mr.Get(symbolsKey("u1"))
	require.NoError(t, err)
	assert.JSONEq(t, `["NVDA","TSLA"]`, raw)
	assert.Zero(t, mr.TTL(symbolsKey("u1")))
}

func TestRedisSymbolListExpiresForVisitors(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisSymbolLists(t, time.Hour)
	owner := common.AnonOwnerPrefix + "session-1"

	require.NoError(t, repo.Save(ctx, owner, []string{"AMD"}))
	assert.Equal(t, time.Hour, mr.TTL(symbolsKey(owner)))

	mr.FastForward(40 * time.Minute)
	_, err := repo.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(symbolsKey(owner)))

	mr.FastForward(2 * time.Hour)
	_, err = repo.Get(ctx, owner)
	assert.ErrorIs(t, err, ErrSymbolListNotFound)
}

func TestRedisSymbolListCorruptValue(t *testing.T) {
	repo, mr := newRedisSymbolLists(t, time.Hour)
	require.NoError(t, mr.Set(symbolsKey("u1"), "not json"))

	_, err := repo.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSymbolListNotFound)
	assert.Contains(t, err.Error(), "failed to decode symbol list")
}

func TestMemorySymbolListRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySymbolListRepository(time.Hour)

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrSymbolListNotFound)

	symbols := []string{"NVDA", "TSLA"}
	require.NoError(t, repo.Save(ctx, "u1", symbols))
	symbols[0] = "MUTATED"

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "TSLA"}, got)

	require.NoError(t, repo.Save(ctx, "u1", []string{}))
	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemorySymbolListExpiresForVisitors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySymbolListRepository(50 * time.Millisecond)
	owner := common.AnonOwnerPrefix + "session-1"

	require.NoError(t, repo.Save(ctx, owner, []string{"AMD"}))
	require.NoError(t, repo.Save(ctx, "u1", []string{"SPY"}))

	time.Sleep(100 * time.Millisecond)

	_, err := repo.Get(ctx, owner)
	assert.ErrorIs(t, err, ErrSymbolListNotFound)
	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY"}, got)
}
