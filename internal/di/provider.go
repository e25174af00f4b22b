package di

import (
	"context"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/config"
	"github.com/LeJamon/goNFTize/internal/core/ledger/service"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	_ "github.com/LeJamon/goNFTize/internal/core/tx/all"
	"github.com/LeJamon/goNFTize/internal/logging"
	"github.com/LeJamon/goNFTize/internal/metrics"
	"github.com/LeJamon/goNFTize/internal/storage/nodestore"
	"github.com/LeJamon/goNFTize/internal/storage/relationaldb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config

	// Clock overrides the engine clock (tests)
	Clock tx.Clock
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	if err := config.ValidateConfig(p.config); err != nil {
		return err
	}
	p.container.Register(ServiceConfig, p.config)

	p.registerLoggingBuilders()
	p.registerStorageBuilders()
	p.registerMetricsBuilders()
	p.registerLedgerBuilders()
	return nil
}

func (p *Provider) registerLoggingBuilders() {
	p.container.RegisterBuilder(ServiceLogger, func(c *Container) (any, error) {
		return logging.New(p.config.Log)
	})
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceNodeStore, func(c *Container) (any, error) {
		log, err := Resolve[*zap.Logger](c, ServiceLogger)
		if err != nil {
			return nil, err
		}
		return nodestore.Open(p.config.NodeDB.NodeStore(), log)
	})

	p.container.RegisterBuilder(ServiceHistory, func(c *Container) (any, error) {
		if !p.config.History.Enabled {
			return nil, nil
		}
		return relationaldb.Open(context.Background(), p.config.History.Relational())
	})
}

func (p *Provider) registerMetricsBuilders() {
	p.container.RegisterBuilder(ServiceMetricsRegistry, func(c *Container) (any, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg, nil
	})

	p.container.RegisterBuilder(ServiceMetrics, func(c *Container) (any, error) {
		reg, err := Resolve[*prometheus.Registry](c, ServiceMetricsRegistry)
		if err != nil {
			return nil, err
		}
		return metrics.New(reg), nil
	})
}

// registerLedgerBuilders registers ledger service builders.
func (p *Provider) registerLedgerBuilders() {
	p.container.RegisterBuilder(ServiceLedger, func(c *Container) (any, error) {
		log, err := Resolve[*zap.Logger](c, ServiceLogger)
		if err != nil {
			return nil, err
		}
		store, err := Resolve[*nodestore.Database](c, ServiceNodeStore)
		if err != nil {
			return nil, err
		}
		history, err := Resolve[*relationaldb.History](c, ServiceHistory)
		if err != nil {
			return nil, err
		}
		m, err := Resolve[*metrics.Metrics](c, ServiceMetrics)
		if err != nil {
			return nil, err
		}
		gen, err := p.config.Genesis.Ledger()
		if err != nil {
			return nil, fmt.Errorf("genesis: %w", err)
		}

		cfg := service.Config{
			Genesis:   gen,
			Store:     store,
			Observers: []tx.Observer{m},
			Clock:     p.Clock,
			Logger:    log,
		}
		// A nil *History must not become a non-nil interface
		if history != nil {
			cfg.History = history
		}

		svc, err := service.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := svc.Start(context.Background()); err != nil {
			return nil, err
		}
		return svc, nil
	})
}

// GetLedgerService returns the ledger service from the container.
func (p *Provider) GetLedgerService() (*service.Service, error) {
	return Resolve[*service.Service](p.container, ServiceLedger)
}

// GetMetricsRegistry returns the registry the node metrics are bound to.
func (p *Provider) GetMetricsRegistry() (*prometheus.Registry, error) {
	return Resolve[*prometheus.Registry](p.container, ServiceMetricsRegistry)
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
