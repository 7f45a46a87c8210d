// Package export renders classified transactions for downstream review:
// CSV files in the reviewer column order and grouped partitions.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/saring-audit/saring/internal/model"
)

// csvHeader is the reviewer-facing column order.
var csvHeader = []string{
	"Date", "Time", "Type", "Debit", "Credit", "Balance",
	"Counterparty", "Bank", "Account", "Reference",
	"E-Wallet", "Note", "Category", "Flow", "Audit Flag", "Audit Notes",
	"Source File",
}

// WriteCSV writes records to w in the reviewer column order.
func WriteCSV(w io.Writer, records []model.TransactionRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		r := &records[i]
		balance := ""
		if r.Balance != nil {
			balance = strconv.FormatFloat(*r.Balance, 'f', 2, 64)
		}
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Time,
			r.RawType,
			formatAmount(r.Debit),
			formatAmount(r.Credit),
			balance,
			r.Counterparty,
			r.CounterpartyBank,
			r.CounterpartyAccount,
			r.Reference,
			string(r.EWallet),
			r.Note,
			string(r.Category),
			string(r.FlowClass),
			string(r.AuditFlag),
			r.AuditNote(),
			r.Source.File,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
