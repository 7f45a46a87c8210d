package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/model"
)

// BNI personal statement layout. The date line carries the type label; the
// movement and balance arrive on a follow-up "[+-]N N" line and the clock
// time on a "HH:MM:SS WIB" line that may also carry description text.
var (
	bniStartRe  = regexp.MustCompile(`^(\d{2})\s+([A-Za-z]+)\s+(\d{4})\s+(.+)$`)
	bniAmountRe = regexp.MustCompile(`^([+-][\d,]+)\s+([\d,]+)$`)
	bniTimeRe   = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\s+WIB\s*(.*)$`)

	bniHolderRe = regexp.MustCompile(`(?m)^([A-Z\s]+?)\s+(TAPLUS|TAPENAS|BNI Giro|[A-Za-z]+)\s*-\s*(\d+)`)
	bniPeriodRe = regexp.MustCompile(`Periode:\s*([^\n]+)`)
)

// bniMonths accepts both English abbreviations and Indonesian month names.
var bniMonths = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
	"Januari": time.January, "Februari": time.February, "Maret": time.March,
	"April": time.April, "Mei": time.May, "Juni": time.June,
	"Juli": time.July, "Agustus": time.August, "September": time.September,
	"Oktober": time.October, "November": time.November, "Desember": time.December,
}

// FormatBNI describes BNI personal account statements.
var FormatBNI = &Format{
	Name: "bni",
	Bank: "BNI",
	Boilerplate: []string{
		"Laporan Mutasi", "Periode:", "Saldo Awal", "Total Pemasukan",
		"Total Pengeluaran", "Saldo Akhir", "Tanggal & Waktu",
		"Rincian Transaksi", "Nominal (IDR)", "Saldo (IDR)",
		"PT Bank Negara Indonesia", "berizin dan diawasi",
		"peserta penjaminan", "dari 5", "dari 6", "dari 7", "dari 8",
	},
	idPatterns: []string{"PT BANK NEGARA INDONESIA", "LAPORAN MUTASI", "BNI"},
	validStart: bniValidStart,
	extract:    extractBNI,
	header:     bniHeader,
}

func bniValidStart(line string) bool {
	m := bniStartRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	_, err := parseBNIDate(m[1], m[2], m[3])
	return err == nil
}

func parseBNIDate(day, month, year string) (time.Time, error) {
	mon, ok := bniMonths[month]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", month)
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid day %q", day)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q", year)
	}

	date := time.Date(y, mon, d, 0, 0, 0, 0, time.UTC)
	if date.Day() != d || date.Month() != mon {
		return time.Time{}, fmt.Errorf("day %d out of range for %s", d, month)
	}
	return date, nil
}

func extractBNI(_ *Format, b Block, acct model.AccountInfo) (*model.TransactionRecord, []string, error) {
	m := bniStartRe.FindStringSubmatch(b.First())
	if m == nil {
		return nil, nil, fmt.Errorf("%w: no date anchor: %q", common.ErrMalformedBlock, b.First())
	}

	date, err := parseBNIDate(m[1], m[2], m[3])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrMalformedBlock, err)
	}

	rec := &model.TransactionRecord{
		Date:     date,
		RawType:  strings.TrimSpace(m[4]),
		FullText: strings.Join(b.Lines, " | "),
		Source:   acct.Ref(),
	}

	var residual []string
	for _, line := range b.Rest() {
		if am := bniAmountRe.FindStringSubmatch(line); am != nil {
			if strings.HasPrefix(am[1], "-") {
				rec.Debit = Magnitude(am[1])
			} else {
				rec.Credit = Magnitude(am[1])
			}
			bal := Magnitude(am[2])
			rec.Balance = &bal
			continue
		}
		if tm := bniTimeRe.FindStringSubmatch(line); tm != nil {
			rec.Time = tm[1]
			if rest := strings.TrimSpace(tm[2]); rest != "" {
				residual = append(residual, rest)
			}
			continue
		}
		residual = append(residual, line)
	}

	return rec, residual, nil
}

func bniHeader(page string) model.AccountInfo {
	info := model.AccountInfo{Currency: "IDR"}

	if m := bniHolderRe.FindStringSubmatch(page); m != nil {
		info.HolderName = strings.TrimSpace(m[1])
		info.ProductType = strings.TrimSpace(m[2])
		info.AccountNumber = m[3]
	}
	if m := bniPeriodRe.FindStringSubmatch(page); m != nil {
		info.Period = strings.TrimSpace(m[1])
	}

	return info
}
