package flow

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/saring-audit/saring/internal/model"
)

// Risk level of a finding.
type Risk string

const (
	RiskHigh   Risk = "HIGH"
	RiskMedium Risk = "MEDIUM"
)

// Finding is one suspicious-pattern hit surfaced for the audit report.
type Finding struct {
	Type        string
	Account     string
	Date        time.Time
	Amount      float64
	Description string
	Risk        Risk
	Note        string
}

// Config holds the pattern-scan thresholds, in rupiah.
type Config struct {
	LargeDepositThreshold float64 `mapstructure:"large_deposit_threshold"`
	RoundGranularity      float64 `mapstructure:"round_granularity"`
	RoundMinimum          float64 `mapstructure:"round_minimum"`
	DailyVolumeThreshold  float64 `mapstructure:"daily_volume_threshold"`
	RoundFindingCap       int     `mapstructure:"round_finding_cap"`
}

// DefaultConfig returns the standard scan thresholds.
func DefaultConfig() Config {
	return Config{
		LargeDepositThreshold: 50_000_000,
		RoundGranularity:      10_000_000,
		RoundMinimum:          50_000_000,
		DailyVolumeThreshold:  100_000_000,
		RoundFindingCap:       20,
	}
}

// Scanner runs the suspicious-pattern scans with a fixed Config.
type Scanner struct {
	cfg Config
}

// NewScanner creates a Scanner with the given thresholds.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// ScanFindings runs the three suspicious-pattern scans over one account's
// classified records with the default thresholds: oversized cash deposits,
// round-number movements and high single-day volume.
func ScanFindings(account string, records []model.TransactionRecord) []Finding {
	return NewScanner(DefaultConfig()).Scan(account, records)
}

// Scan runs the three suspicious-pattern scans over one account's records.
func (s *Scanner) Scan(account string, records []model.TransactionRecord) []Finding {
	var out []Finding
	out = append(out, s.largeCashDeposits(account, records)...)
	out = append(out, s.roundNumberMovements(account, records)...)
	out = append(out, s.highVolumeDays(account, records)...)
	return out
}

func (s *Scanner) largeCashDeposits(account string, records []model.TransactionRecord) []Finding {
	var out []Finding
	for _, r := range records {
		if classifyDeposit(r) && r.Credit > s.cfg.LargeDepositThreshold {
			out = append(out, Finding{
				Type:        "Large Cash Deposit",
				Account:     account,
				Date:        r.Date,
				Amount:      r.Credit,
				Description: r.Note,
				Risk:        RiskHigh,
				Note:        "Cash deposit > Rp 50M requires documentation",
			})
		}
	}
	return out
}

func classifyDeposit(r model.TransactionRecord) bool {
	return r.FlowClass == model.FlowDeposit
}

// roundNumberMovements flags debits or credits that land exactly on a
// ten-million boundary at fifty million or more. Capped so a statement
// full of payroll rounds does not drown the report.
func (s *Scanner) roundNumberMovements(account string, records []model.TransactionRecord) []Finding {
	var out []Finding
	for _, r := range records {
		amt := r.Amount()
		if amt < s.cfg.RoundMinimum || math.Mod(amt, s.cfg.RoundGranularity) != 0 {
			continue
		}
		out = append(out, Finding{
			Type:        "Round Number",
			Account:     account,
			Date:        r.Date,
			Amount:      amt,
			Description: r.RawType,
			Risk:        RiskMedium,
			Note:        "Round numbers may indicate structured transactions",
		})
		if len(out) == s.cfg.RoundFindingCap {
			break
		}
	}
	return out
}

func (s *Scanner) highVolumeDays(account string, records []model.TransactionRecord) []Finding {
	type volume struct{ debit, credit float64 }
	byDay := make(map[time.Time]*volume)
	for _, r := range records {
		day := r.Date
		v, ok := byDay[day]
		if !ok {
			v = &volume{}
			byDay[day] = v
		}
		v.debit += r.Debit
		v.credit += r.Credit
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var out []Finding
	for _, d := range days {
		v := byDay[d]
		if v.debit <= s.cfg.DailyVolumeThreshold && v.credit <= s.cfg.DailyVolumeThreshold {
			continue
		}
		out = append(out, Finding{
			Type:        "High Volume Day",
			Account:     account,
			Date:        d,
			Amount:      math.Max(v.debit, v.credit),
			Description: fmt.Sprintf("Debit: %.0f | Credit: %.0f", v.debit, v.credit),
			Risk:        RiskMedium,
			Note:        "High transaction volume on single day",
		})
	}
	return out
}
