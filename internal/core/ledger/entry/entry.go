package entry

import (
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	TypeAccountRoot Type = 0x0061 // Account balances and sequence
	TypeEscrow      Type = 0x0075 // Single-asset sale escrows
	TypeRegistry    Type = 0x0052 // Asset registries
	TypeToken       Type = 0x004e // Non-fungible tokens held in a registry
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeEscrow:
		return "Escrow"
	case TypeRegistry:
		return "Registry"
	case TypeToken:
		return "Token"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}

// ErrTypeMismatch is returned when decoded data holds a different entry type
// than the one requested.
var ErrTypeMismatch = errors.New("ledger entry type mismatch")

// Entry is implemented by every ledger entry.
type Entry interface {
	Type() Type
}

var msgpack = &codec.MsgpackHandle{}

func init() {
	msgpack.WriteExt = true
	msgpack.Canonical = true
}

// envelope prefixes every encoded entry so a blob can be validated against
// the type the caller expects.
type envelope struct {
	Type Type   `codec:"t"`
	Body []byte `codec:"b"`
}

// Encode serialises an entry into its stored form.
func Encode(e Entry) ([]byte, error) {
	var body []byte
	if err := codec.NewEncoderBytes(&body, msgpack).Encode(e); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpack).Encode(envelope{Type: e.Type(), Body: body}); err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", e.Type(), err)
	}
	return out, nil
}

// PeekType returns the entry type of encoded data without decoding the body.
func PeekType(data []byte) (Type, error) {
	var env envelope
	if err := codec.NewDecoderBytes(data, msgpack).Decode(&env); err != nil {
		return 0, fmt.Errorf("decode envelope: %w", err)
	}
	return env.Type, nil
}

// Decode deserialises data into e. The stored type must match e.Type().
func Decode(data []byte, e Entry) error {
	var env envelope
	if err := codec.NewDecoderBytes(data, msgpack).Decode(&env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type != e.Type() {
		return fmt.Errorf("%w: stored %s, want %s", ErrTypeMismatch, env.Type, e.Type())
	}
	if err := codec.NewDecoderBytes(env.Body, msgpack).Decode(e); err != nil {
		return fmt.Errorf("decode %s: %w", e.Type(), err)
	}
	return nil
}
