package entry

import "github.com/ethereum/go-ethereum/common"

// Registry describes a deployed asset registry. Only the issuer may mint.
type Registry struct {
	Address common.Address `codec:"address"`
	Issuer  common.Address `codec:"issuer"`
	Name    string         `codec:"name"`
	Minted  uint64         `codec:"minted"`
}

func (r *Registry) Type() Type { return TypeRegistry }

// Token is a single non-fungible token. Approved is the zero address when
// no spender is approved.
type Token struct {
	Registry common.Address `codec:"registry"`
	ID       uint64         `codec:"id"`
	Owner    common.Address `codec:"owner"`
	Approved common.Address `codec:"approved"`
}

func (t *Token) Type() Type { return TypeToken }

// HasApproval reports whether a spender other than the owner is approved.
func (t *Token) HasApproval() bool {
	return t.Approved != (common.Address{})
}
