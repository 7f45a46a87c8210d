// Package flow traces fund movement across accounts: the three-hop cash
// lineage (treasury withdrawal, personal-account cash deposit, onward
// transfer) plus pattern scans for transactions an auditor should review.
package flow

import (
	"strings"
	"time"

	"github.com/saring-audit/saring/internal/model"
)

// Hop labels, in movement order.
const (
	HopWithdrawal = "1. SPAN → Cash"
	HopDeposit    = "2. Cash → BNI"
	HopTransfer   = "3. BNI → CASA"
)

// LineageEntry is one transaction attributed to a hop of the movement
// chain.
type LineageEntry struct {
	Hop     string
	Date    time.Time
	RawType string
	Amount  float64
	Details string
}

// Aggregator matches classified transactions against the three hop
// patterns. Recipients is the set of counterparty markers that identify
// the final transfer leg.
type Aggregator struct {
	Recipients []string
}

// NewAggregator returns an aggregator with the default transfer-leg
// recipient markers.
func NewAggregator() *Aggregator {
	return &Aggregator{Recipients: []string{"CIMB", "INDAH ROSALIA"}}
}

// Withdrawals returns the treasury cash withdrawals (first hop). Matching
// is on the raw type label; the hop amount is the debit side.
func (a *Aggregator) Withdrawals(records []model.TransactionRecord) []LineageEntry {
	var out []LineageEntry
	for _, r := range records {
		if !strings.Contains(strings.ToUpper(r.RawType), "TARIK") {
			continue
		}
		out = append(out, LineageEntry{
			Hop:     HopWithdrawal,
			Date:    r.Date,
			RawType: r.RawType,
			Amount:  r.Debit,
			Details: r.Note,
		})
	}
	return out
}

// Deposits returns the cash deposits into the personal account (second
// hop). The hop amount is the credit side.
func (a *Aggregator) Deposits(records []model.TransactionRecord) []LineageEntry {
	var out []LineageEntry
	for _, r := range records {
		if !strings.Contains(strings.ToUpper(r.RawType), "SETOR TUNAI") {
			continue
		}
		out = append(out, LineageEntry{
			Hop:     HopDeposit,
			Date:    r.Date,
			RawType: r.RawType,
			Amount:  r.Credit,
			Details: r.Note,
		})
	}
	return out
}

// Transfers returns the onward transfers to the destination account
// (third hop): transfer-typed debits whose counterparty matches one of
// the recipient markers.
func (a *Aggregator) Transfers(records []model.TransactionRecord) []LineageEntry {
	var out []LineageEntry
	for _, r := range records {
		if !strings.Contains(strings.ToUpper(r.RawType), "TRANSFER") {
			continue
		}
		if !a.matchesRecipient(r.Counterparty) {
			continue
		}
		out = append(out, LineageEntry{
			Hop:     HopTransfer,
			Date:    r.Date,
			RawType: r.RawType,
			Amount:  r.Debit,
			Details: r.Counterparty,
		})
	}
	return out
}

func (a *Aggregator) matchesRecipient(counterparty string) bool {
	upper := strings.ToUpper(counterparty)
	for _, m := range a.Recipients {
		if strings.Contains(upper, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

// Trace runs all three hops. Treasury records feed the withdrawal hop;
// personal-account records feed the deposit and transfer hops.
func (a *Aggregator) Trace(treasury, personal []model.TransactionRecord) []LineageEntry {
	var out []LineageEntry
	out = append(out, a.Withdrawals(treasury)...)
	out = append(out, a.Deposits(personal)...)
	out = append(out, a.Transfers(personal)...)
	return out
}

// Summarize reduces lineage entries to per-hop counts and totals.
func Summarize(entries []LineageEntry) model.FlowSummary {
	var s model.FlowSummary
	s.Withdrawals.Label = HopWithdrawal
	s.Deposits.Label = HopDeposit
	s.Transfers.Label = HopTransfer
	for _, e := range entries {
		switch e.Hop {
		case HopWithdrawal:
			s.Withdrawals.Count++
			s.Withdrawals.Total += e.Amount
		case HopDeposit:
			s.Deposits.Count++
			s.Deposits.Total += e.Amount
		case HopTransfer:
			s.Transfers.Count++
			s.Transfers.Total += e.Amount
		}
	}
	return s
}
