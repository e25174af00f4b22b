package config

import (
	"path/filepath"

	"github.com/LeJamon/goNFTize/internal/core/ledger/genesis"
	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/LeJamon/goNFTize/internal/logging"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// DefaultConfigFile is looked up in the working directory when no path is
// given.
const DefaultConfigFile = "nftized.toml"

// Config represents the complete nftized configuration
type Config struct {
	// [log]
	Log logging.Config `mapstructure:"log"`

	// [node_db] persists the ledger
	NodeDB NodeDBConfig `mapstructure:"node_db"`

	// [history] records applied transactions
	History HistoryConfig `mapstructure:"history"`

	// [genesis] seeds an empty ledger
	Genesis GenesisConfig `mapstructure:"genesis"`

	// [sale] describes the escrow sale run by the sale command
	Sale SaleConfig `mapstructure:"sale"`

	// Internal fields for configuration management
	configPath string `mapstructure:"-"`
}

// GetConfigPath returns the file the configuration was read from, or ""
// when only defaults and environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ConfigPathFromDir returns the default config file inside configDir
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, DefaultConfigFile)
}

// GenesisConfig represents the [genesis] section
type GenesisConfig struct {
	// Passphrase derives the master account key
	Passphrase string `mapstructure:"passphrase"`

	// Supply is the number of whole coins credited to the master account
	Supply string `mapstructure:"supply"`
}

// Ledger converts the section to a genesis configuration
func (g *GenesisConfig) Ledger() (genesis.Config, error) {
	key, err := crypto.KeyFromPassphrase(g.Passphrase)
	if err != nil {
		return genesis.Config{}, err
	}
	supply, err := parseAmount("supply", g.Supply)
	if err != nil {
		return genesis.Config{}, err
	}
	return genesis.Config{
		Master: ethcrypto.PubkeyToAddress(key.PublicKey),
		Supply: supply,
	}, nil
}
