package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// Factory builds an empty transaction of one type.
type Factory func() Transaction

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Type]Factory)
)

// Register makes a transaction type constructible by NewFromType and
// FromJSON. Sub-packages call it from init.
func Register(t Type, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[t]; dup {
		panic(fmt.Sprintf("tx: transaction type %s registered twice", t))
	}
	factories[t] = f
}

// NewFromType creates a new transaction of the given type
func NewFromType(t Type) (Transaction, error) {
	factoriesMu.RLock()
	f, ok := factories[t]
	factoriesMu.RUnlock()
	if !ok {
		return nil, ErrUnknownTransactionType
	}
	return f(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, ErrUnknownTransactionType
	}

	t, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToJSON converts a Transaction to JSON
func ToJSON(t Transaction) ([]byte, error) {
	return json.Marshal(t)
}

// SupportedTypes returns all registered transaction types in code order
func SupportedTypes() []Type {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	types := make([]Type, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
