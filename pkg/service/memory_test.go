package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryService(t *testing.T) {
	t.Run("load_empty", func(t *testing.T) {
		service := NewMemoryService()
		store := service.NewStore("test")

		j := 0
		err := store.Load(&j)
		assert.ErrorIs(t, err, ErrPersistenceNotExists)
	})

	t.Run("save_and_load", func(t *testing.T) {
		service := NewMemoryService()
		store := service.NewStore("test")

		i := 3
		err := store.Save(i)

		assert.NoError(t, err)

		var j = 0
		err = store.Load(&j)
		assert.NoError(t, err)
		assert.Equal(t, i, j)
	})

	t.Run("save_pointer", func(t *testing.T) {
		service := NewMemoryService()
		store := service.NewStore("state", "BTCUSDT")

		state := SymbolState{IsRunning: true, Trend: "up"}
		assert.NoError(t, store.Save(&state))

		var loaded SymbolState
		assert.NoError(t, store.Load(&loaded))
		assert.Equal(t, state, loaded)

		assert.NoError(t, store.Reset())
		assert.ErrorIs(t, store.Load(&loaded), ErrPersistenceNotExists)
	})
}
