package service

import (
	"errors"
	"strings"
	"time"
)

var ErrPersistenceNotExists = errors.New("persistent data does not exist")

type PersistenceService interface {
	NewStore(id string, subIDs ...string) Store
}

type Store interface {
	Load(val interface{}) error
	Save(val interface{}) error
	Reset() error
}

type Expirable interface {
	Expiration() time.Duration
}

// storeKey joins the non-empty key parts with ":".
func storeKey(parts ...string) string {
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			keys = append(keys, part)
		}
	}
	return strings.Join(keys, ":")
}

type RedisPersistenceConfig struct {
	Host      string `yaml:"host" json:"host" env:"REDIS_HOST"`
	Port      string `yaml:"port" json:"port" env:"REDIS_PORT"`
	Password  string `yaml:"password,omitempty" json:"password,omitempty" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" json:"db" env:"REDIS_DB"`
	Namespace string `yaml:"namespace" json:"namespace" env:"REDIS_NAMESPACE"`
}

type JsonPersistenceConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

type PersistenceConfig struct {
	Redis *RedisPersistenceConfig `yaml:"redis,omitempty" json:"redis,omitempty"`
	Json  *JsonPersistenceConfig  `yaml:"json,omitempty" json:"json,omitempty"`
}

// NewPersistenceService picks redis over json; without either the state lives in memory.
func NewPersistenceService(config *PersistenceConfig) PersistenceService {
	switch {
	case config == nil:
		return NewMemoryService()

	case config.Redis != nil:
		return NewRedisPersistenceService(config.Redis)

	case config.Json != nil:
		return &JsonPersistenceService{Directory: config.Json.Directory}
	}

	return NewMemoryService()
}
