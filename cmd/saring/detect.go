package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saring-audit/saring/internal/cli"
	"github.com/saring-audit/saring/internal/source"
	"github.com/saring-audit/saring/internal/statement"
)

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [files...]",
		Short: "Detect the statement format of text files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				doc, err := source.Load(path)
				if err != nil {
					return err
				}
				f, conf, err := statement.DetectFile(doc.Name, doc.Pages[0])
				if err != nil {
					fmt.Printf("%s: %s\n", doc.Name, cli.ErrorStyle.Render("unknown format"))
					continue
				}
				fmt.Printf("%s: %s (%.0f%% confidence, %s)\n",
					doc.Name, cli.BoldStyle.Render(f.Name), conf*100, f.Bank)
			}
			return nil
		},
	}
}
