package statement

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/model"
)

// CASA (CIMB/OCTO) layout. A transaction starts with a "DD MMM YYYY" date
// followed by the type label and the signed decimal amounts at line end;
// every detail line until the next date belongs to the same block.
var (
	casaStartRe = regexp.MustCompile(`^(\d{2}\s+[A-Za-z]{3}\s+\d{4})\s+(.*)$`)

	casaAccountRe  = regexp.MustCompile(`No\.\s*Rekening\s*:\s*(\d+)`)
	casaProductRe  = regexp.MustCompile(`Jenis\s*Produk\s*:\s*([^\n]+)`)
	casaNameRe     = regexp.MustCompile(`Nama\s*:\s*([^\n]+)`)
	casaCurrencyRe = regexp.MustCompile(`Mata\s*Uang\s*:\s*(\w+)`)
	casaPeriodRe   = regexp.MustCompile(`Periode\s*:\s*([^\n]+)`)
)

// FormatCASA describes CIMB CASA / OCTO savings statements.
var FormatCASA = &Format{
	Name: "casa",
	Bank: "CIMB",
	Boilerplate: []string{
		"Laporan Rekening", "Statement of Account", "Periode:",
		"No. Rekening", "Jenis Produk", "Nama :", "Mata Uang",
		"Tanggal Deskripsi Debit Kredit Saldo",
		"Page ", "IMPORTANT", "User ID", "Your User ID",
		"Saldo Awal", "Total Kredit", "Total Debit", "Saldo Akhir",
		"www.", "CIMB",
	},
	idPatterns: []string{"CIMB NIAGA", "OCTO", "PT BANK CIMB NIAGA", "LAPORAN REKENING"},
	validStart: casaValidStart,
	extract:    extractCASA,
	header:     casaHeader,
}

func casaValidStart(line string) bool {
	m := casaStartRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	_, err := parseCASADate(m[1])
	return err == nil
}

func parseCASADate(token string) (time.Time, error) {
	return time.Parse("02 Jan 2006", strings.Join(strings.Fields(token), " "))
}

func extractCASA(_ *Format, b Block, acct model.AccountInfo) (*model.TransactionRecord, []string, error) {
	m := casaStartRe.FindStringSubmatch(b.First())
	if m == nil {
		return nil, nil, fmt.Errorf("%w: no date anchor: %q", common.ErrMalformedBlock, b.First())
	}

	date, err := parseCASADate(m[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad date %q: %v", common.ErrMalformedBlock, m[1], err)
	}

	rest := m[2]
	amounts := decimalAmounts(rest)

	rec := &model.TransactionRecord{
		Date:     date,
		RawType:  stripDecimalAmounts(rest),
		FullText: strings.Join(b.Lines, " | "),
		Source:   acct.Ref(),
	}

	// Trailing amount convention: one amount is the running balance alone,
	// two are movement (sign decides the side) plus balance, three follow
	// the debit/credit/balance column layout.
	if len(amounts) >= 1 {
		bal := Magnitude(amounts[len(amounts)-1])
		rec.Balance = &bal
	}
	if len(amounts) >= 2 {
		movement := amounts[len(amounts)-2]
		if strings.HasPrefix(movement, "-") {
			rec.Debit = Magnitude(movement)
		} else {
			rec.Credit = Magnitude(movement)
		}
	}
	if len(amounts) >= 3 {
		rec.Debit, rec.Credit = 0, 0
		if strings.HasPrefix(amounts[0], "-") {
			rec.Debit = Magnitude(amounts[0])
		}
		if !strings.HasPrefix(amounts[1], "-") && amounts[1] != amounts[len(amounts)-1] {
			rec.Credit = Magnitude(amounts[1])
		}
		// Ambiguous rows keep the explicitly signed debit; surplus tokens
		// are discarded rather than guessed at.
		if rec.Debit > 0 && rec.Credit > 0 {
			rec.Credit = 0
		}
	}

	return rec, b.Rest(), nil
}

func casaHeader(page string) model.AccountInfo {
	info := model.AccountInfo{Currency: "IDR"}

	if m := casaAccountRe.FindStringSubmatch(page); m != nil {
		info.AccountNumber = m[1]
	}
	if m := casaProductRe.FindStringSubmatch(page); m != nil {
		info.ProductType = strings.TrimSpace(m[1])
	}
	if m := casaNameRe.FindStringSubmatch(page); m != nil {
		info.HolderName = strings.TrimSpace(m[1])
	}
	if m := casaCurrencyRe.FindStringSubmatch(page); m != nil {
		info.Currency = m[1]
	}
	if m := casaPeriodRe.FindStringSubmatch(page); m != nil {
		info.Period = strings.TrimSpace(m[1])
	}

	return info
}
