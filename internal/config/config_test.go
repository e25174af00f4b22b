package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nftized.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, config.GetConfigPath())

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "pebble", config.NodeDB.Type)
	assert.Equal(t, "lz4", config.NodeDB.Compressor)
	assert.True(t, config.History.Enabled)
	assert.Equal(t, "sqlite", config.History.Driver)
	assert.Equal(t, uint8(30), config.Sale.CreatorShare)
	assert.True(t, config.Sale.EnforceBuyer)

	a, err := config.Sale.Amounts()
	require.NoError(t, err)
	assert.Equal(t, amount.Coins(100), a.Price)
	assert.Equal(t, amount.Coins(10), a.Earnest)
	assert.Equal(t, amount.Coins(90), a.Paid)
	assert.Equal(t, amount.Coins(1000), a.Funding)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[node_db]
type = "leveldb"
path = "/tmp/nftized/state"
cache_size = 16

[history]
enabled = false

[sale]
price = "2.5"
earnest = "0.5"
paid = "3"
creator_share = 10
require_earnest = true
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, config.GetConfigPath())

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "leveldb", config.NodeDB.Type)
	assert.Equal(t, 16, config.NodeDB.NodeStore().CacheSize)
	assert.False(t, config.History.Enabled)
	assert.Equal(t, uint8(10), config.Sale.CreatorShare)
	assert.True(t, config.Sale.RequireEarnest)

	// Untouched keys keep their defaults
	assert.Equal(t, "seller", config.Sale.Seller)

	a, err := config.Sale.Amounts()
	require.NoError(t, err)
	assert.Equal(t, amount.MustParse("2.5"), a.Price)
	assert.Equal(t, amount.Coins(3), a.Paid)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
[node_db]
type = "leveldb"
`)
	t.Setenv("NFTIZED_NODE_DB_TYPE", "memory")
	t.Setenv("NFTIZED_SALE_PRICE", "250")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", config.NodeDB.Type)
	assert.Equal(t, "250", config.Sale.Price)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidationReportsEverySection(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "chatty"

[node_db]
type = "rocksdb"

[sale]
price = "10"
earnest = "20"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)

	var sections []string
	for _, e := range unwrapAll(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			sections = append(sections, ve.Section)
		}
	}
	assert.ElementsMatch(t, []string{"log", "node_db", "sale"}, sections)
}

func TestSaleValidate(t *testing.T) {
	base := func() SaleConfig {
		return SaleConfig{
			Seller: "seller", Buyer: "buyer", Creator: "creator",
			Price: "100", Earnest: "10", Funding: "1000", CreatorShare: 30,
		}
	}
	tests := []struct {
		name   string
		mutate func(*SaleConfig)
		ok     bool
	}{
		{"valid", func(s *SaleConfig) {}, true},
		{"no earnest", func(s *SaleConfig) { s.Earnest = "0" }, true},
		{"missing buyer", func(s *SaleConfig) { s.Buyer = "" }, false},
		{"self sale", func(s *SaleConfig) { s.Buyer = "seller" }, false},
		{"share above 100", func(s *SaleConfig) { s.CreatorShare = 101 }, false},
		{"zero price", func(s *SaleConfig) { s.Price = "0"; s.Earnest = "0" }, false},
		{"negative price", func(s *SaleConfig) { s.Price = "-1" }, false},
		{"bad amount", func(s *SaleConfig) { s.Funding = "lots" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(&s)
			if tt.ok {
				assert.NoError(t, s.Validate())
			} else {
				assert.Error(t, s.Validate())
			}
		})
	}
}

func TestHistoryRelational(t *testing.T) {
	h := HistoryConfig{Enabled: true, Driver: "postgres", TimeoutSeconds: 5}
	assert.Error(t, h.Validate())

	h.ConnectionString = "postgres://nftized@localhost/nftized"
	require.NoError(t, h.Validate())
	rc := h.Relational()
	assert.Equal(t, "postgres", rc.Driver)
	assert.Equal(t, h.ConnectionString, rc.ConnectionString)

	h = HistoryConfig{Enabled: true, Driver: "sqlite", Path: ":memory:", TimeoutSeconds: 5, MaxOpenConns: 1}
	require.NoError(t, h.Validate())
	assert.Equal(t, ":memory:", h.Relational().Database)

	assert.NoError(t, (&HistoryConfig{}).Validate())
}

// unwrapAll flattens errors.Join trees
func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, unwrapAll(e)...)
		}
		return out
	}
	if next := errors.Unwrap(err); next != nil {
		if _, ok := err.(*ValidationError); ok {
			return []error{err}
		}
		return unwrapAll(next)
	}
	return []error{err}
}
