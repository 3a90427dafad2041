package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"homebudget/internal/export"

	"github.com/spf13/cobra"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as csv, xlsx or a json snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "csv", "xlsx", "json":
			default:
				return fmt.Errorf("unsupported format %q (csv, xlsx, json)", format)
			}

			a, err := newApp(opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer a.Close()

			write := func(w io.Writer) error {
				return writeExport(cmd.Context(), a, format, w)
			}
			if out == "" || out == "-" {
				return write(cmd.OutOrStdout())
			}
			return writeFile(out, write)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, xlsx or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func writeExport(ctx context.Context, a *app, format string, w io.Writer) error {
	switch format {
	case "csv":
		txs, err := a.svc.Transactions.List(ctx)
		if err != nil {
			return err
		}
		return export.WriteCSV(w, txs)
	case "xlsx":
		totals, err := a.svc.Transactions.Totals(ctx)
		if err != nil {
			return err
		}
		return export.WriteXLSX(w, totals)
	default:
		snap, err := export.BuildSnapshot(ctx, a.svc)
		if err != nil {
			return err
		}
		return export.WriteJSON(w, snap)
	}
}

// writeFile creates path, runs write against it and reports a failed Close
// as a failed export. The partial file is removed on any error.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}
