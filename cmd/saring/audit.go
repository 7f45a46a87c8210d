package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/saring-audit/saring/internal/cli"
	"github.com/saring-audit/saring/internal/flow"
	"github.com/saring-audit/saring/internal/model"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Trace fund movement and report suspicious patterns",
		Long: `Analyze the stored transactions across all parsed accounts: trace the
cash lineage from the treasury account through cash deposits to onward
transfers, and report the suspicious-pattern findings.`,
		RunE: runAudit,
	}

	cmd.Flags().Bool("plain", false, "print an unstyled summary suitable for piping")
	_ = viper.BindPFlag("audit.plain", cmd.Flags().Lookup("plain"))

	return cmd
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	treasury, err := store.ListRecords(ctx, "BNI SPAN")
	if err != nil {
		return err
	}
	personal, err := store.ListRecords(ctx, "BNI")
	if err != nil {
		return err
	}

	agg := flow.NewAggregator()
	entries := agg.Trace(treasury, personal)
	summary := flow.Summarize(entries)
	scanCfg, err := scanConfig()
	if err != nil {
		return err
	}
	findings := flow.NewScanner(scanCfg).Scan("BNI", personal)

	if viper.GetBool("audit.plain") {
		fmt.Print(flow.Narrative(summary, findings))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Fund Lineage"))
	for _, hop := range summary.Hops() {
		line := fmt.Sprintf("%-16s %4d transactions  %s", hop.Label, hop.Count, formatRupiah(hop.Total))
		fmt.Println(cli.TableCellStyle.Render(line))
	}
	fmt.Println()

	if len(entries) > 0 {
		fmt.Println(cli.SubtitleStyle.Render("Lineage transactions"))
		for _, e := range entries {
			fmt.Printf("  %s  %s  %-30s %s\n",
				cli.SubtleStyle.Render(e.Hop),
				e.Date.Format("2006-01-02"),
				truncate(e.RawType, 30),
				formatRupiah(e.Amount))
		}
		fmt.Println()
	}

	fmt.Println(cli.TitleStyle.Render("Suspicious Patterns"))
	if len(findings) == 0 {
		fmt.Println(cli.SuccessStyle.Render("No suspicious patterns found"))
		return nil
	}
	for _, f := range findings {
		style := cli.WarningStyle
		if f.Risk == flow.RiskHigh {
			style = cli.ErrorStyle
		}
		fmt.Printf("%s %s %s %s\n",
			style.Render(fmt.Sprintf("[%s]", f.Risk)),
			f.Date.Format("2006-01-02"),
			cli.BoldStyle.Render(f.Type),
			formatRupiah(f.Amount))
		fmt.Println(cli.SubtleStyle.Render("    " + f.Note))
	}

	fmt.Println()
	printFlagBreakdown(personal)
	return nil
}

func printFlagBreakdown(records []model.TransactionRecord) {
	counts := map[model.AuditFlag]int{}
	for _, r := range records {
		counts[r.AuditFlag]++
	}
	var parts []string
	for _, flag := range []model.AuditFlag{model.AuditOK, model.AuditNeedsJustification, model.AuditSuspicious} {
		if counts[flag] > 0 {
			parts = append(parts, cli.FlagStyle(flag).Render(fmt.Sprintf("%s: %d", flag, counts[flag])))
		}
	}
	if len(parts) > 0 {
		fmt.Println(strings.Join(parts, "  "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
