package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LeJamon/goNFTize/internal/config"
	"github.com/LeJamon/goNFTize/internal/core/ledger/service"
	_ "github.com/LeJamon/goNFTize/internal/core/tx/all"
	"github.com/LeJamon/goNFTize/internal/di"
	"go.uber.org/zap"
)

// node is an opened ledger with everything it depends on
type node struct {
	config    *config.Config
	container *di.Container
	provider  *di.Provider
	ledger    *service.Service
	log       *zap.Logger
}

// openNode loads the configuration and starts the ledger service.
func openNode() (*node, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	switch {
	case debug:
		cfg.Log.Level = "debug"
	case quiet:
		cfg.Log.Level = "error"
	}

	c := di.New()
	p := di.NewProvider(c, cfg)
	if err := p.RegisterAll(); err != nil {
		return nil, err
	}
	n := &node{config: cfg, container: c, provider: p}

	if n.log, err = di.Resolve[*zap.Logger](c, di.ServiceLogger); err != nil {
		c.Close()
		return nil, err
	}
	if n.ledger, err = p.GetLedgerService(); err != nil {
		c.Close()
		return nil, err
	}
	return n, nil
}

// Close flushes the logger and closes the stores.
func (n *node) Close() error {
	_ = n.log.Sync()
	return n.container.Close()
}

// withNode opens the node, runs fn and closes the node.
func withNode(fn func(n *node) error) (err error) {
	n, err := openNode()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := n.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(n)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
