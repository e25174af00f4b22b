package config

import (
	"errors"
	"fmt"
)

// ValidationError names the section that failed validation
type ValidationError struct {
	Section string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %v", e.Section, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateConfig validates every section and reports all failures at once
func ValidateConfig(config *Config) error {
	var errs []error
	check := func(section string, err error) {
		if err != nil {
			errs = append(errs, &ValidationError{Section: section, Err: err})
		}
	}

	check("log", config.Log.Validate())
	check("node_db", config.NodeDB.Validate())
	check("history", config.History.Validate())
	check("genesis", config.Genesis.Validate())
	check("sale", config.Sale.Validate())

	return errors.Join(errs...)
}

// Validate performs validation on the genesis configuration
func (g *GenesisConfig) Validate() error {
	if g.Passphrase == "" {
		return fmt.Errorf("passphrase is required")
	}
	supply, err := parseAmount("supply", g.Supply)
	if err != nil {
		return err
	}
	if supply.IsZero() {
		return fmt.Errorf("supply must be positive")
	}
	return nil
}
