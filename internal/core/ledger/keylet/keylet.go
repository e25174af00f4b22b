package keylet

import (
	"encoding/binary"

	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Space identifiers for keylet generation
const (
	spaceAccount  uint16 = 'a' // Account root
	spaceEscrow   uint16 = 'u' // Escrow
	spaceRegistry uint16 = 'R' // Asset registry
	spaceToken    uint16 = 'N' // Token
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)
	return crypto.Keccak256Hash(inputs...)
}

// Account returns the keylet for an account root entry.
func Account(addr common.Address) Keylet {
	return Keylet{
		Type: entry.TypeAccountRoot,
		Key:  indexHash(spaceAccount, addr.Bytes()),
	}
}

// Escrow returns the keylet for the escrow entry living at addr.
func Escrow(addr common.Address) Keylet {
	return Keylet{
		Type: entry.TypeEscrow,
		Key:  indexHash(spaceEscrow, addr.Bytes()),
	}
}

// Registry returns the keylet for the registry entry living at addr.
func Registry(addr common.Address) Keylet {
	return Keylet{
		Type: entry.TypeRegistry,
		Key:  indexHash(spaceRegistry, addr.Bytes()),
	}
}

// Token returns the keylet for token id inside a registry.
func Token(registry common.Address, id uint64) Keylet {
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, id)
	return Keylet{
		Type: entry.TypeToken,
		Key:  indexHash(spaceToken, registry.Bytes(), idBytes),
	}
}
