package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/saring-audit/saring/internal/cli"
	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/engine"
	"github.com/saring-audit/saring/internal/export"
	"github.com/saring-audit/saring/internal/model"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse statement text files into classified transactions",
		Long: `Parse one or more extracted statement text files, classify every
transaction, and store the results in the local database for auditing.

The statement format is detected automatically; use --format to force one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().StringP("format", "f", "auto", "statement format (auto, casa, bni, span)")
	cmd.Flags().StringP("output", "o", "", "also write a CSV of the parsed transactions")
	cmd.Flags().Bool("dry-run", false, "parse without saving to the database")

	_ = viper.BindPFlag("parse.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("parse.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("parse.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	formatName := viper.GetString("parse.format")
	output := viper.GetString("parse.output")
	dryRun := viper.GetBool("parse.dry_run")

	clsCfg, err := classifierConfig()
	if err != nil {
		return err
	}
	proc := engine.New(slog.Default(), clsCfg)

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Parsing statements..."),
		)
	}

	var store storeWriter
	if !dryRun {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	// A failed file is reported and skipped so the rest of the batch still
	// parses; the command fails only when nothing parsed.
	var results []*engine.Result
	var failed int
	for _, path := range args {
		res, err := proc.ProcessFile(ctx, path, formatName)
		if err != nil {
			common.LogError(err, "failed to parse statement", common.Fields{"file": path})
			failed++
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}
		results = append(results, res)

		if store != nil {
			if err := store.SaveStatement(ctx, res.Account, res.Records); err != nil {
				return fmt.Errorf("failed to save %s: %w", path, err)
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	total := 0
	for _, res := range results {
		total += len(res.Records)
		line := fmt.Sprintf("%s (%s): %d transactions, %d skipped",
			res.Account.SourceFile, res.Account.Bank, len(res.Records), res.Skipped)
		fmt.Println(cli.InfoStyle.Render(line))
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Parsed %d transactions from %d files", total, len(results))))
	if failed > 0 {
		if len(results) == 0 {
			return common.NewUserError("no statements could be parsed", nil)
		}
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("%d files failed to parse", failed)))
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer func() { _ = f.Close() }()

		var all []model.TransactionRecord
		for _, res := range results {
			all = append(all, res.Records...)
		}
		if err := export.WriteCSV(f, all); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Println(cli.SubtleStyle.Render("Wrote " + output))
	}

	return nil
}

// storeWriter is the part of the store the parse command needs.
type storeWriter interface {
	SaveStatement(ctx context.Context, acct model.AccountInfo, records []model.TransactionRecord) error
}
