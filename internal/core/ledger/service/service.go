// Package service owns the ledger lifecycle of a node: it opens the
// persisted ledger, seeds genesis state, runs the transaction engine and
// answers account, token, escrow and history queries.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/ledger/genesis"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/storage/relationaldb"
	"go.uber.org/zap"
)

// Common errors
var (
	ErrNotStarted      = errors.New("ledger service not started")
	ErrAlreadyStarted  = errors.New("ledger service already started")
	ErrHistoryDisabled = errors.New("transaction history is not enabled")
)

// Config holds configuration for the LedgerService
type Config struct {
	// Genesis seeds the ledger when the store holds no state
	Genesis genesis.Config

	// Store persists committed state (nil for in-memory only)
	Store ledger.Store

	// History records applied transactions (optional)
	History relationaldb.Repository

	// Observers are notified after every submission, after the history
	// recorder and before the event publisher
	Observers []tx.Observer

	// Clock stamps applied transactions. Defaults to the system clock.
	Clock tx.Clock

	Logger *zap.Logger
}

// DefaultConfig returns the default service configuration
func DefaultConfig() Config {
	return Config{
		Genesis: genesis.DefaultConfig(),
	}
}

// Service manages the ledger lifecycle
type Service struct {
	mu sync.RWMutex

	config Config

	ledger *ledger.Ledger
	engine *tx.Engine

	// recorder is nil when history is disabled
	recorder *relationaldb.Recorder
	events   *EventPublisher

	log *zap.Logger
}

// New creates a new LedgerService. Start must be called before use.
func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Genesis.Supply.IsZero() {
		return nil, errors.New("genesis supply must be positive")
	}
	return &Service{
		config: cfg,
		events: NewEventPublisher(),
		log:    cfg.Logger.Named("ledger"),
	}, nil
}

// Start loads the persisted ledger, creates the genesis state when the
// ledger is empty and starts the engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine != nil {
		return ErrAlreadyStarted
	}

	l, err := ledger.Open(ctx, s.config.Store)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	if l.Len() == 0 {
		if err := genesis.Create(ctx, l, s.config.Genesis); err != nil {
			return fmt.Errorf("create genesis ledger: %w", err)
		}
		s.log.Info("created genesis ledger",
			zap.Stringer("master", s.config.Genesis.Master),
			zap.Stringer("supply", s.config.Genesis.Supply))
	} else {
		s.log.Info("loaded ledger", zap.Int("entries", l.Len()))
	}

	observers := make([]tx.Observer, 0, len(s.config.Observers)+2)
	if s.config.History != nil {
		s.recorder = relationaldb.NewRecorder(s.config.History, s.config.Logger)
		observers = append(observers, s.recorder)
	}
	observers = append(observers, s.config.Observers...)
	observers = append(observers, s.events)

	s.ledger = l
	s.engine = tx.NewEngine(l, tx.EngineConfig{
		Logger:    s.config.Logger,
		Clock:     s.config.Clock,
		Observers: observers,
	})
	return nil
}

// Submit applies a transaction to the ledger.
func (s *Service) Submit(ctx context.Context, t tx.Transaction) (tx.ApplyResult, error) {
	engine, err := s.getEngine()
	if err != nil {
		return tx.ApplyResult{}, err
	}
	return engine.Submit(ctx, t), nil
}

// Engine returns the transaction engine, or nil before Start.
func (s *Service) Engine() *tx.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// Ledger returns the committed ledger, or nil before Start.
func (s *Service) Ledger() *ledger.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// Events returns the event publisher
func (s *Service) Events() *EventPublisher {
	return s.events
}

// HistoryEnabled reports whether applied transactions are recorded
func (s *Service) HistoryEnabled() bool {
	return s.config.History != nil
}

// RecordFailures returns how many applied transactions could not be written
// to history.
func (s *Service) RecordFailures() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.recorder == nil {
		return 0
	}
	return s.recorder.Failures()
}

func (s *Service) getEngine() (*tx.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil, ErrNotStarted
	}
	return s.engine, nil
}

func (s *Service) getLedger() (*ledger.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ledger == nil {
		return nil, ErrNotStarted
	}
	return s.ledger, nil
}
