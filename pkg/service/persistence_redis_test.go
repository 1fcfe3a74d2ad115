package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisPersistentService(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST is not set")
	}

	redisService := NewRedisPersistenceService(&RedisPersistenceConfig{
		Host:      host,
		Port:      "6379",
		DB:        0,
		Namespace: "ladderbot-test",
	})
	assert.NotNil(t, redisService)

	store := redisService.NewStore("state", "BTCUSDT")
	assert.NotNil(t, store)

	err := store.Reset()
	assert.NoError(t, err)

	var state SymbolState
	err = store.Load(&state)
	assert.Error(t, err)
	assert.EqualError(t, ErrPersistenceNotExists, err.Error())

	state = SymbolState{IsRunning: true, Trend: "up"}
	err = store.Save(&state)
	assert.NoError(t, err, "should store value without error")

	var state2 SymbolState
	err = store.Load(&state2)
	assert.NoError(t, err, "should load value without error")
	assert.Equal(t, state, state2)

	err = store.Reset()
	assert.NoError(t, err)
}

func TestRedisPersistenceService_NewStore(t *testing.T) {
	redisService := NewRedisPersistenceService(&RedisPersistenceConfig{Host: "127.0.0.1", Port: "6379", Namespace: "ladderbot"})
	defer redisService.Close()

	store := redisService.NewStore("state", "BTCUSDT").(*RedisStore)
	assert.Equal(t, "ladderbot:state:BTCUSDT", store.Key)
	assert.Equal(t, DefaultRedisCommandTimeout, store.timeout)

	noNamespace := NewRedisPersistenceService(&RedisPersistenceConfig{Host: "127.0.0.1", Port: "6379"})
	defer noNamespace.Close()
	assert.Equal(t, "state:BTCUSDT", noNamespace.NewStore("state", "BTCUSDT").(*RedisStore).Key)
}

func TestRedisStore_Unreachable(t *testing.T) {
	// nothing listens on port 1
	redisService := NewRedisPersistenceService(&RedisPersistenceConfig{Host: "127.0.0.1", Port: "1"})
	defer redisService.Close()
	redisService.CommandTimeout = time.Second

	assert.Error(t, redisService.Ping(context.Background()))

	var state SymbolState
	err := redisService.NewStore("state", "BTCUSDT").Load(&state)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPersistenceNotExists)
	assert.Contains(t, err.Error(), "redis get state:BTCUSDT")
}

func TestStoreKey(t *testing.T) {
	assert.Equal(t, "a:b:c", storeKey("a", "b", "c"))
	assert.Equal(t, "b:c", storeKey("", "b", "c"))
	assert.Equal(t, "", storeKey())
}
