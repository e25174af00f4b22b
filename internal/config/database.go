package config

import (
	"fmt"
	"time"

	"github.com/LeJamon/goNFTize/internal/storage/nodestore"
	"github.com/LeJamon/goNFTize/internal/storage/relationaldb"
)

// NodeDBConfig represents the [node_db] section
// Configures the persistent datastore for ledger state
type NodeDBConfig struct {
	// Type is pebble, leveldb or memory
	Type             string `mapstructure:"type"`
	Path             string `mapstructure:"path"`
	CacheSize        int    `mapstructure:"cache_size"`
	Compressor       string `mapstructure:"compressor"`
	CompressionLevel int    `mapstructure:"compression_level"`
}

// Validate performs validation on the NodeDB configuration
func (n *NodeDBConfig) Validate() error {
	return n.NodeStore().Validate()
}

// NodeStore converts the section to a node store configuration
func (n *NodeDBConfig) NodeStore() *nodestore.Config {
	return &nodestore.Config{
		Backend:          n.Type,
		Path:             n.Path,
		CacheSize:        n.CacheSize,
		Compressor:       n.Compressor,
		CompressionLevel: n.CompressionLevel,
	}
}

// HistoryConfig represents the [history] section
type HistoryConfig struct {
	// Enabled turns transaction history recording on
	Enabled bool `mapstructure:"enabled"`

	// Driver is sqlite or postgres
	Driver string `mapstructure:"driver"`

	// Path is the SQLite file, or ":memory:"
	Path string `mapstructure:"path"`

	// ConnectionString is used as is when set (PostgreSQL)
	ConnectionString string `mapstructure:"connection_string"`

	MaxOpenConns   int `mapstructure:"max_open_conns"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Validate performs validation on the history configuration
func (h *HistoryConfig) Validate() error {
	if !h.Enabled {
		return nil
	}
	if h.Driver == relationaldb.DriverPostgres && h.ConnectionString == "" {
		return fmt.Errorf("connection_string is required for driver %s", h.Driver)
	}
	return h.Relational().Validate()
}

// Relational converts the section to a relational database configuration
func (h *HistoryConfig) Relational() *relationaldb.Config {
	var c *relationaldb.Config
	if h.Driver == relationaldb.DriverPostgres {
		c = relationaldb.PostgresConfig()
	} else {
		c = relationaldb.SQLiteConfig(h.Path)
		c.Driver = h.Driver
	}
	c.ConnectionString = h.ConnectionString
	if h.MaxOpenConns > 0 {
		c.MaxOpenConns = h.MaxOpenConns
		if c.MaxIdleConns > c.MaxOpenConns {
			c.MaxIdleConns = c.MaxOpenConns
		}
	}
	c.DefaultTimeout = time.Duration(h.TimeoutSeconds) * time.Second
	return c
}
