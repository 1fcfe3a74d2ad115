package service

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

type JsonPersistenceService struct {
	Directory string
}

func (s *JsonPersistenceService) NewStore(id string, subIDs ...string) Store {
	return &JsonStore{
		ID:        id,
		Directory: filepath.Join(append([]string{s.Directory}, subIDs...)...),
	}
}

// Lock takes an exclusive file lock on the directory so only one process owns the stored state.
func (s *JsonPersistenceService) Lock() (unlock func() error, err error) {
	if err := os.MkdirAll(s.Directory, 0777); err != nil {
		return nil, err
	}

	lockFile := filepath.Join(s.Directory, ".lock")
	fileLock := flock.New(lockFile)

	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, err
	}

	if !locked {
		return nil, errors.Errorf("%s is locked by another process", lockFile)
	}

	return fileLock.Unlock, nil
}

type JsonStore struct {
	ID        string
	Directory string
}

func (store JsonStore) path() string {
	return filepath.Join(store.Directory, store.ID) + ".json"
}

func (store JsonStore) Reset() error {
	p := store.path()
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(p)
}

func (store JsonStore) Load(val interface{}) error {
	data, err := os.ReadFile(store.path())
	if os.IsNotExist(err) {
		return ErrPersistenceNotExists
	} else if err != nil {
		return err
	}

	if len(data) == 0 {
		return ErrPersistenceNotExists
	}

	return json.Unmarshal(data, val)
}

// Save writes through a temporary file so a crash never leaves a truncated state file.
func (store JsonStore) Save(val interface{}) error {
	if err := os.MkdirAll(store.Directory, 0777); err != nil {
		return err
	}

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	tmp := store.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0666); err != nil {
		return err
	}

	return os.Rename(tmp, store.path())
}
