package config

import "github.com/spf13/viper"

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	// [log]
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", []string{"stderr"})

	// [node_db]
	v.SetDefault("node_db.type", "pebble")
	v.SetDefault("node_db.path", "./data/nodestore")
	v.SetDefault("node_db.cache_size", 4096)
	v.SetDefault("node_db.compressor", "lz4")
	v.SetDefault("node_db.compression_level", 1)

	// [history]
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.path", "./data/history.db")
	v.SetDefault("history.max_open_conns", 1)
	v.SetDefault("history.timeout_seconds", 30)

	// [genesis]
	v.SetDefault("genesis.passphrase", "masterpassphrase")
	v.SetDefault("genesis.supply", "100000000")

	// [sale] mirrors the reference scenario: price 100, earnest 10,
	// creator royalty 30%
	v.SetDefault("sale.seller", "seller")
	v.SetDefault("sale.buyer", "buyer")
	v.SetDefault("sale.creator", "creator")
	v.SetDefault("sale.registry", "NFTize Collection")
	v.SetDefault("sale.token_id", 1)
	v.SetDefault("sale.price", "100")
	v.SetDefault("sale.earnest", "10")
	v.SetDefault("sale.creator_share", 30)
	v.SetDefault("sale.enforce_buyer", true)
	v.SetDefault("sale.require_earnest", false)
	v.SetDefault("sale.funding", "1000")
}
