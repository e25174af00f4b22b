package tx

import "fmt"

// Type represents a transaction type code
type Type uint16

const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	TypePayment        Type = 0
	TypeRegistryCreate Type = 1
	TypeTokenMint      Type = 2
	TypeTokenApprove   Type = 3
	TypeTokenTransfer  Type = 4
	TypeEscrowCreate   Type = 10
	TypeEscrowDeposit  Type = 11
	TypeEscrowPurchase Type = 12
)

var typeNames = map[Type]string{
	TypePayment:        "Payment",
	TypeRegistryCreate: "RegistryCreate",
	TypeTokenMint:      "TokenMint",
	TypeTokenApprove:   "TokenApprove",
	TypeTokenTransfer:  "TokenTransfer",
	TypeEscrowCreate:   "EscrowCreate",
	TypeEscrowDeposit:  "EscrowDeposit",
	TypeEscrowPurchase: "EscrowPurchase",
}

var nameToType map[string]Type

func init() {
	nameToType = make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		nameToType[name] = t
	}
}

// String returns the name of the transaction type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// TypeFromName returns the transaction type for the given name
func TypeFromName(name string) (Type, bool) {
	t, ok := nameToType[name]
	return t, ok
}
