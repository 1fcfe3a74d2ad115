package service

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultRedisCommandTimeout bounds every redis round trip of a store.
const DefaultRedisCommandTimeout = 5 * time.Second

var redisLogger = logrus.WithField("persistence", "redis")

// RedisPersistenceService keeps one json document per key, prefixed with the configured namespace.
type RedisPersistenceService struct {
	client    redis.UniversalClient
	namespace string

	CommandTimeout time.Duration
}

func NewRedisPersistenceService(config *RedisPersistenceConfig) *RedisPersistenceService {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisPersistenceService{
		client:         client,
		namespace:      config.Namespace,
		CommandTimeout: DefaultRedisCommandTimeout,
	}
}

// NewStore returns the store at namespace:id:subID..., e.g. "ladderbot:state:BTCUSDT".
func (s *RedisPersistenceService) NewStore(id string, subIDs ...string) Store {
	return &RedisStore{
		client:  s.client,
		timeout: s.CommandTimeout,
		Key:     storeKey(append([]string{s.namespace, id}, subIDs...)...),
	}
}

// Ping checks the connection before the webhook server starts.
func (s *RedisPersistenceService) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx).Err(), "redis ping")
}

func (s *RedisPersistenceService) Close() error {
	return s.client.Close()
}

type RedisStore struct {
	client  redis.UniversalClient
	timeout time.Duration

	Key string
}

func (store *RedisStore) context() (context.Context, context.CancelFunc) {
	if store.timeout > 0 {
		return context.WithTimeout(context.Background(), store.timeout)
	}
	return context.WithCancel(context.Background())
}

func (store *RedisStore) Load(val interface{}) error {
	ctx, cancel := store.context()
	defer cancel()

	data, err := store.client.Get(ctx, store.Key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrPersistenceNotExists

	case err != nil:
		return errors.Wrapf(err, "redis get %s", store.Key)
	}

	redisLogger.Debugf("loaded %s: %s", store.Key, data)

	if len(data) == 0 || string(data) == "null" {
		return ErrPersistenceNotExists
	}

	return json.Unmarshal(data, val)
}

// Save stores val as json. Values implementing Expirable expire after their expiration.
func (store *RedisStore) Save(val interface{}) error {
	if val == nil {
		return nil
	}

	var expiration time.Duration
	if expirable, ok := val.(Expirable); ok {
		expiration = expirable.Expiration()
	}

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	ctx, cancel := store.context()
	defer cancel()

	if err := store.client.Set(ctx, store.Key, data, expiration).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", store.Key)
	}

	redisLogger.Debugf("saved %s: %s (expiration %s)", store.Key, data, expiration)
	return nil
}

func (store *RedisStore) Reset() error {
	ctx, cancel := store.context()
	defer cancel()

	return errors.Wrapf(store.client.Del(ctx, store.Key).Err(), "redis del %s", store.Key)
}
