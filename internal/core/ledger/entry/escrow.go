package entry

import (
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/ethereum/go-ethereum/common"
)

// Escrow is the state of a single-asset sale. Everything except Buyer and
// Completed is fixed at creation. The held funds are the balance of the
// escrow's AccountRoot and are not duplicated here.
type Escrow struct {
	Address        common.Address `codec:"address"`
	Owner          common.Address `codec:"owner"`
	Registry       common.Address `codec:"registry"`
	TokenID        uint64         `codec:"token_id"`
	PurchasePrice  amount.Amount  `codec:"purchase_price"`
	EarnestAmount  amount.Amount  `codec:"earnest_amount"`
	Seller         common.Address `codec:"seller"`
	Creator        common.Address `codec:"creator"`
	CreatorShare   uint8          `codec:"creator_share"`
	EnforceBuyer   bool           `codec:"enforce_buyer"`
	RequireEarnest bool           `codec:"require_earnest"`

	Buyer     common.Address `codec:"buyer"`
	Completed bool           `codec:"completed"`
}

func (e *Escrow) Type() Type { return TypeEscrow }

// HasBuyer reports whether a buyer has been bound to the sale.
func (e *Escrow) HasBuyer() bool {
	return e.Buyer != (common.Address{})
}
