package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"homebudget/internal/service"

	"github.com/spf13/cobra"
)

func totalsCmd(opts *rootOptions) *cobra.Command {
	var (
		personID   uint
		categoryID uint
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Print income, expense and balance",
		Long:  "Print totals over all transactions, or over one person's or one category's transactions.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if personID != 0 && categoryID != 0 {
				return fmt.Errorf("--person and --category are mutually exclusive")
			}
			a, err := newApp(opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var totals service.Totals
			switch {
			case personID != 0:
				totals, err = a.svc.Transactions.TotalsByPerson(ctx, personID)
			case categoryID != 0:
				totals, err = a.svc.Transactions.TotalsByCategory(ctx, categoryID)
			default:
				totals, err = a.svc.Transactions.Totals(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(totals)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Transactions\t%d\n", len(totals.Transactions))
			fmt.Fprintf(tw, "Total income\t%s\n", totals.TotalIncome.StringFixed(2))
			fmt.Fprintf(tw, "Total expense\t%s\n", totals.TotalExpense.StringFixed(2))
			fmt.Fprintf(tw, "Balance\t%s\n", totals.Balance().StringFixed(2))
			return tw.Flush()
		},
	}
	cmd.Flags().UintVar(&personID, "person", 0, "limit to one person id")
	cmd.Flags().UintVar(&categoryID, "category", 0, "limit to one category id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
