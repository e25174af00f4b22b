package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyOffset int
)

var balanceCmd = &cobra.Command{
	Use:   "balance <account>",
	Short: "Show the balance and sequence of an account",
	Long:  `Show the balance and sequence of an account. The account is a hex address or the passphrase of a derived account.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := crypto.ResolveAccount(args[0])
		if err != nil {
			return err
		}
		return withNode(func(n *node) error {
			info, err := n.ledger.GetAccountInfo(addr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"account":  info.Account,
				"balance":  info.Balance.String(),
				"sequence": info.Sequence,
				"exists":   info.Exists,
			})
		})
	},
}

var ownerCmd = &cobra.Command{
	Use:   "owner <registry> <token-id>",
	Short: "Show the owner and approved spender of a token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := crypto.ParseAddress(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid token id %q", args[1])
		}
		return withNode(func(n *node) error {
			info, err := n.ledger.GetTokenInfo(registry, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		})
	},
}

var escrowCmd = &cobra.Command{
	Use:   "escrow <address>",
	Short: "Show the state and held funds of a sale escrow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := crypto.ParseAddress(args[0])
		if err != nil {
			return err
		}
		return withNode(func(n *node) error {
			e, err := n.ledger.GetEscrowInfo(addr)
			if err != nil {
				return err
			}
			out := map[string]any{
				"escrow":          e.Address,
				"registry":        e.Registry,
				"token_id":        e.TokenID,
				"seller":          e.Seller,
				"creator":         e.Creator,
				"purchase_price":  e.PurchasePrice.String(),
				"earnest_amount":  e.EarnestAmount.String(),
				"creator_share":   e.CreatorShare,
				"enforce_buyer":   e.EnforceBuyer,
				"require_earnest": e.RequireEarnest,
				"balance":         e.Balance.String(),
				"approved":        e.Approved,
				"completed":       e.Completed,
			}
			if e.Buyer != (common.Address{}) {
				out["buyer"] = e.Buyer
			}
			return printJSON(cmd.OutOrStdout(), out)
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <address>",
	Short: "List transactions submitted by or acting on an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := crypto.ResolveAccount(args[0])
		if err != nil {
			return err
		}
		return withNode(func(n *node) error {
			page, err := n.ledger.GetAccountTransactions(context.Background(), addr, historyLimit, historyOffset)
			if err != nil {
				return err
			}
			rows := make([]map[string]any, 0, len(page.Transactions))
			for _, rec := range page.Transactions {
				row := map[string]any{
					"hash":       rec.Hash,
					"type":       rec.Type,
					"account":    rec.Account,
					"sequence":   rec.Sequence,
					"result":     rec.Result,
					"close_time": rec.CloseTime,
				}
				if rec.Subject != (common.Address{}) {
					row["subject"] = rec.Subject
				}
				if rec.Delivered != nil {
					row["delivered"] = rec.Delivered.String()
				}
				rows = append(rows, row)
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"address":      page.Address,
				"limit":        page.Limit,
				"offset":       page.Offset,
				"transactions": rows,
			})
		})
	},
}

var txCmd = &cobra.Command{
	Use:   "tx <hash>",
	Short: "Show a recorded transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash := common.HexToHash(args[0])
		return withNode(func(n *node) error {
			rec, err := n.ledger.GetTransaction(context.Background(), hash)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		})
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum number of transactions (0 for the default page size)")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "number of transactions to skip")

	rootCmd.AddCommand(balanceCmd, ownerCmd, escrowCmd, historyCmd, txCmd)
}
