package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/sale"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

var (
	salePaid    string
	saleMetrics bool
)

var saleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Run the escrowed sale described by the [sale] configuration",
	Long: `Run a complete sale: fund the seller and the buyer from the master
account, deploy the collection as the seller, open an escrow for the token,
approve it, deposit the earnest as the buyer and submit the purchase.
Balances are printed before the earnest is deposited and after the purchase.`,
	Args: cobra.NoArgs,
	RunE: runSale,
}

func init() {
	saleCmd.Flags().StringVar(&salePaid, "paid", "", "amount attached to the purchase (default: price minus earnest)")
	saleCmd.Flags().BoolVar(&saleMetrics, "metrics", false, "print the node counters after the sale")
	rootCmd.AddCommand(saleCmd)
}

func runSale(cmd *cobra.Command, args []string) error {
	return withNode(func(n *node) error {
		saleCfg := n.config.Sale
		if salePaid != "" {
			saleCfg.Paid = salePaid
		}
		gen, err := n.config.Genesis.Ledger()
		if err != nil {
			return err
		}
		plan, err := sale.PlanFromConfig(&saleCfg, gen.Master)
		if err != nil {
			return err
		}

		report, err := sale.NewRunner(n.ledger, n.log).Run(context.Background(), plan)
		out := cmd.OutOrStdout()
		if report != nil {
			printSteps(out, report)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nregistry %s  escrow %s\n\n", report.Registry.Hex(), report.Escrow.Hex())
		printBalances(out, report)

		if !report.Settled {
			return fmt.Errorf("purchase refused: %s", report.Purchase.Result)
		}
		if saleMetrics {
			reg, err := n.provider.GetMetricsRegistry()
			if err != nil {
				return err
			}
			return printCounters(out, reg)
		}
		return nil
	})
}

func printSteps(w io.Writer, report *sale.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tRESULT\tSEQ\tHASH")
	for _, s := range report.Steps {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%x\n", s.Name, s.Result.Result, s.Result.Sequence, s.Result.Hash[:8])
	}
	tw.Flush()
}

func printBalances(w io.Writer, report *sale.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ACCOUNT\tBEFORE\tAFTER\tCHANGE\t")
	rows := []struct {
		name          string
		before, after amount.Amount
	}{
		{"seller", report.Before.Seller, report.After.Seller},
		{"buyer", report.Before.Buyer, report.After.Buyer},
		{"creator", report.Before.Creator, report.After.Creator},
		{"escrow", report.Before.Escrow, report.After.Escrow},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", r.name, r.before, r.after, signedChange(r.before, r.after))
	}
	tw.Flush()
	fmt.Fprintf(w, "\ntoken owner: %s -> %s\n", report.Before.Owner.Hex(), report.After.Owner.Hex())
}

func signedChange(before, after amount.Amount) string {
	if after >= before {
		return "+" + (after - before).String()
	}
	return "-" + (before - after).String()
}

// printCounters prints the nftized counters gathered from reg.
func printCounters(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "nftized_") || f.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := f.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
		}
	}
	return nil
}
