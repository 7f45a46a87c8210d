package statement

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/model"
)

// SPAN treasury statement layout. A transaction line carries an ISO date,
// clock time, transaction id and the remainder; the three amounts (opening
// balance, movement, closing balance) arrive on the following line. Older
// exports split the date, leaving "YYYY-" on the anchor line and "MM-DD"
// on the continuation.
var (
	spanNewRe      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2}:\d{2})\s+(\d+)\s+(.+)$`)
	spanOldRe      = regexp.MustCompile(`^(\d{4})-\s+(\d{2}:\d{2}:\d{2})\s+(\d+)\s+(.+?)(?:\s+\||\s*$)`)
	spanDateContRe = regexp.MustCompile(`^(\d{2})-(\d{2})\s*(.*)$`)
	spanTypeRe     = regexp.MustCompile(`(?i)^(TRANSFER DARI|TARIK TUNAI|SETOR TUNAI|PEMINDAHAN)`)
	spanChannelRe  = regexp.MustCompile(`(?i)(SPAN|TELLER|ATM|TRANSFER)`)
	spanRupiahRe   = regexp.MustCompile(`Rp\.\s*([\d,]+)`)

	spanPeriodRe  = regexp.MustCompile(`Mutasi Transaksi \((.+?)\)`)
	spanUnitRe    = regexp.MustCompile(`(BADAN .+?)\s+\d+\s*\(\d+\)`)
	spanSatkerRe  = regexp.MustCompile(`Rekening Satker\s*:\s*(.+?)\s*\((\d+)\)`)
	spanParentRe  = regexp.MustCompile(`Rekening Induk\s*:\s*(.+?)\s*\((\d+)\)`)
	spanMinistry  = regexp.MustCompile(`(Kementerian .+?)\s*\(\d+\)`)
	spanWithdrawn = "TARIK"
)

// FormatSPAN describes SPAN government treasury account statements.
var FormatSPAN = &Format{
	Name: "span",
	Bank: "BNI SPAN",
	Boilerplate: []string{
		"Mutasi Transaksi", "Kementerian", "BADAN", "SEKRETARIAT",
		"Rekening Induk", "Rekening Satker", "Tanggal Waktu",
		"Total Mutasi", "downloaded at", "INITIAL BALANCE",
		"Filter", "Waktu Transaksi", "Apply Export", "Id Transaksi",
		"Cari Berdasarkan", "Saldo Awal Debit Credit",
	},
	idPatterns: []string{"MUTASI TRANSAKSI", "REKENING SATKER", "REKENING INDUK", "SPAN"},
	validStart: spanValidStart,
	extract:    extractSPAN,
	header:     spanHeader,
}

func spanValidStart(line string) bool {
	if m := spanNewRe.FindStringSubmatch(line); m != nil {
		_, err := time.Parse("2006-01-02", m[1])
		return err == nil
	}
	return spanOldRe.MatchString(line)
}

func extractSPAN(_ *Format, b Block, acct model.AccountInfo) (*model.TransactionRecord, []string, error) {
	first := b.First()
	rest := b.Rest()

	var (
		date      time.Time
		clock     string
		reference string
		remainder string
	)

	switch {
	case spanNewRe.MatchString(first):
		m := spanNewRe.FindStringSubmatch(first)
		d, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad date %q: %v", common.ErrMalformedBlock, m[1], err)
		}
		date, clock, reference, remainder = d, m[2], m[3], strings.TrimSpace(m[4])

	case spanOldRe.MatchString(first):
		m := spanOldRe.FindStringSubmatch(first)
		if len(rest) == 0 {
			return nil, nil, fmt.Errorf("%w: split date without continuation: %q", common.ErrMalformedBlock, first)
		}
		cont := spanDateContRe.FindStringSubmatch(rest[0])
		if cont == nil {
			return nil, nil, fmt.Errorf("%w: split date without continuation: %q", common.ErrMalformedBlock, first)
		}
		d, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[1], cont[1], cont[2]))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad split date: %v", common.ErrMalformedBlock, err)
		}
		date, clock, reference = d, m[2], m[3]
		remainder = strings.TrimSpace(cont[3])
		if remainder == "" {
			remainder = strings.TrimSpace(m[4])
		}
		rest = rest[1:]

	default:
		return nil, nil, fmt.Errorf("%w: no date anchor: %q", common.ErrMalformedBlock, first)
	}

	rec := &model.TransactionRecord{
		Date:      date,
		Time:      clock,
		Reference: reference,
		RawType:   spanTypeLabel(remainder),
		FullText:  strings.Join(b.Lines, " | "),
		Source:    acct.Ref(),
	}

	if ch := spanChannelRe.FindStringSubmatch(first); ch != nil {
		rec.Channel = strings.ToUpper(ch[1])
	}

	// Amount triplet on the following line: opening, movement, closing.
	// The withdrawal keyword decides which side the movement lands on.
	if len(rest) > 0 {
		if tokens, ok := integerAmountLine(rest[0]); ok && len(tokens) >= 3 {
			applySPANMovement(rec, tokens[1])
			bal := Magnitude(tokens[2])
			rec.Balance = &bal
			rest = rest[1:]
		}
	}

	// Some exports carry the amounts inline, prefixed with "Rp.".
	if inline := spanRupiahRe.FindAllStringSubmatch(first, -1); len(inline) >= 3 {
		applySPANMovement(rec, inline[1][1])
		bal := Magnitude(inline[2][1])
		if len(inline) > 3 {
			bal = Magnitude(inline[3][1])
		}
		rec.Balance = &bal
	}

	residual := make([]string, 0, len(rest)+1)
	if remainder != "" {
		residual = append(residual, remainder)
	}
	residual = append(residual, rest...)

	return rec, residual, nil
}

func applySPANMovement(rec *model.TransactionRecord, token string) {
	if strings.Contains(strings.ToUpper(rec.RawType), spanWithdrawn) {
		rec.Debit = Magnitude(token)
		rec.Credit = 0
	} else {
		rec.Credit = Magnitude(token)
		rec.Debit = 0
	}
}

func spanTypeLabel(remainder string) string {
	if m := spanTypeRe.FindString(remainder); m != "" {
		return strings.ToUpper(m)
	}
	label := remainder
	if idx := strings.Index(label, "|"); idx >= 0 {
		label = label[:idx]
	}
	return strings.TrimSpace(label)
}

func spanHeader(page string) model.AccountInfo {
	info := model.AccountInfo{Currency: "IDR", ProductType: "SATKER"}

	if m := spanSatkerRe.FindStringSubmatch(page); m != nil {
		info.HolderName = strings.TrimSpace(m[1])
		info.AccountNumber = m[2]
	} else if m := spanUnitRe.FindStringSubmatch(page); m != nil {
		info.HolderName = strings.TrimSpace(m[1])
	} else if m := spanMinistry.FindStringSubmatch(page); m != nil {
		info.HolderName = strings.TrimSpace(m[1])
	}
	if m := spanParentRe.FindStringSubmatch(page); m != nil && info.AccountNumber == "" {
		info.AccountNumber = m[2]
	}
	if m := spanPeriodRe.FindStringSubmatch(page); m != nil {
		info.Period = strings.TrimSpace(m[1])
	}

	return info
}
