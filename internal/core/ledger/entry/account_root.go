package entry

import (
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/ethereum/go-ethereum/common"
)

// AccountRoot holds the spendable balance and transaction sequence of an
// account. Contract-style accounts (registries, escrows) have an
// AccountRoot too; an escrow's balance is the funds it holds.
type AccountRoot struct {
	Address  common.Address `codec:"address"`
	Balance  amount.Amount  `codec:"balance"`
	Sequence uint64         `codec:"sequence"`
}

func (a *AccountRoot) Type() Type { return TypeAccountRoot }
