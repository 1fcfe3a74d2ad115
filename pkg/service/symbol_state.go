package service

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SymbolState is the persisted per-symbol record of the webhook router.
type SymbolState struct {
	IsRunning bool      `json:"isRunning"`
	Trend     string    `json:"trend,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SymbolStateService serializes trades per symbol. The in-process lock is
// authoritative; the persisted flag survives restarts for inspection.
type SymbolStateService struct {
	Persistence PersistenceService

	mu      sync.Mutex
	running map[string]struct{}
	now     func() time.Time
}

func NewSymbolStateService(persistence PersistenceService) *SymbolStateService {
	if persistence == nil {
		persistence = NewMemoryService()
	}

	return &SymbolStateService{
		Persistence: persistence,
		running:     make(map[string]struct{}),
		now:         time.Now,
	}
}

func (s *SymbolStateService) store(symbol string) Store {
	return s.Persistence.NewStore("state", symbol)
}

func (s *SymbolStateService) Load(symbol string) (SymbolState, error) {
	var state SymbolState
	if err := s.store(symbol).Load(&state); err != nil {
		if errors.Is(err, ErrPersistenceNotExists) {
			return SymbolState{}, nil
		}
		return state, err
	}

	return state, nil
}

func (s *SymbolStateService) update(symbol string, f func(state *SymbolState)) error {
	state, err := s.Load(symbol)
	if err != nil {
		return err
	}

	f(&state)
	state.UpdatedAt = s.now()
	return s.store(symbol).Save(&state)
}

// TryStart claims the symbol. It returns false when a trade is already running for it.
func (s *SymbolStateService) TryStart(symbol string) bool {
	s.mu.Lock()
	if _, ok := s.running[symbol]; ok {
		s.mu.Unlock()
		return false
	}
	s.running[symbol] = struct{}{}
	s.mu.Unlock()

	if err := s.update(symbol, func(state *SymbolState) { state.IsRunning = true }); err != nil {
		logrus.WithError(err).Warnf("unable to persist running state of %s", symbol)
	}

	return true
}

func (s *SymbolStateService) Finish(symbol string) {
	s.mu.Lock()
	delete(s.running, symbol)
	s.mu.Unlock()

	if err := s.update(symbol, func(state *SymbolState) { state.IsRunning = false }); err != nil {
		logrus.WithError(err).Warnf("unable to persist running state of %s", symbol)
	}
}

func (s *SymbolStateService) IsRunning(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.running[symbol]
	return ok
}

func (s *SymbolStateService) SetTrend(symbol, trend string) error {
	return s.update(symbol, func(state *SymbolState) { state.Trend = trend })
}

func (s *SymbolStateService) Trend(symbol string) (string, error) {
	state, err := s.Load(symbol)
	return state.Trend, err
}

// Reset clears stale running flags left behind by a previous process.
func (s *SymbolStateService) Reset(symbols ...string) error {
	for _, symbol := range symbols {
		if s.IsRunning(symbol) {
			continue
		}

		if err := s.update(symbol, func(state *SymbolState) { state.IsRunning = false }); err != nil {
			return err
		}
	}
	return nil
}
