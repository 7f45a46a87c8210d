package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/saring-audit/saring/internal/cli"
	"github.com/saring-audit/saring/internal/export"
	"github.com/saring-audit/saring/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored transactions to CSV",
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "transactions.csv", "output CSV file")
	cmd.Flags().String("bank", "", "only export transactions from this bank")
	cmd.Flags().String("flag", "", "only export transactions with this audit flag")
	cmd.Flags().Bool("split", false, "also write one CSV per audit flag")

	_ = viper.BindPFlag("export.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("export.bank", cmd.Flags().Lookup("bank"))
	_ = viper.BindPFlag("export.flag", cmd.Flags().Lookup("flag"))
	_ = viper.BindPFlag("export.split", cmd.Flags().Lookup("split"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	output := viper.GetString("export.output")
	bank := viper.GetString("export.bank")
	flagFilter := viper.GetString("export.flag")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRecords(ctx, bank)
	if err != nil {
		return err
	}

	if flagFilter != "" {
		records = export.ByAuditFlag(records)[model.AuditFlag(flagFilter)]
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteCSV(f, records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if viper.GetBool("export.split") {
		if err := writeSplitCSVs(output, records); err != nil {
			return err
		}
	}

	debit, credit := export.Totals(records)
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Exported %d transactions to %s", len(records), output)))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Total debit %s, total credit %s", formatRupiah(debit), formatRupiah(credit))))
	return nil
}

// writeSplitCSVs writes one CSV per audit flag next to the main output
// file, named <base>-<flag>.csv.
func writeSplitCSVs(output string, records []model.TransactionRecord) error {
	groups := export.ByAuditFlag(records)
	base := strings.TrimSuffix(output, filepath.Ext(output))

	for _, flag := range []model.AuditFlag{model.AuditOK, model.AuditNeedsJustification, model.AuditSuspicious} {
		group := groups[flag]
		if len(group) == 0 {
			continue
		}

		path := fmt.Sprintf("%s-%s.csv", base, strings.ToLower(string(flag)))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := export.WriteCSV(f, group); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Wrote %d transactions to %s", len(group), path)))
	}
	return nil
}
