// Package decompose turns the free-text remainder of a transaction block
// into structured counterparty, bank, e-wallet, reference and note fields.
package decompose

import (
	"regexp"
	"strings"

	"github.com/saring-audit/saring/internal/model"
)

// bankCode maps a clearing/BIC-style token to a display bank name. Held as
// an ordered list so lookups and text scans are deterministic.
type bankCode struct {
	Code string
	Name string
}

var bankCodes = []bankCode{
	{"BNINIDJA", "BNI"},
	{"CENAIDJA", "BCA"},
	{"BRINIDJA", "BRI"},
	{"BMRIIDJA", "Mandiri"},
	{"PDJBIDJA", "BJB"},
	{"JSABIDJ1", "Jasa Arta"},
	{"SYABORJJ", "Bank Syariah"},
	{"PERMIDJX", "Permata"},
	{"BCA", "BCA"},
	{"BNI", "BNI"},
	{"BRI", "BRI"},
	{"MANDIRI", "Mandiri"},
	{"PERMATA", "Permata"},
	{"CIMB", "CIMB"},
}

// BankName resolves a bank code token to its display name. Unknown codes
// resolve to the code itself so the evidence is never lost.
func BankName(code string) string {
	for _, bc := range bankCodes {
		if bc.Code == code {
			return bc.Name
		}
	}
	return code
}

// BankFromText scans text for any known bank code and returns the bank
// name, or empty when none is present.
func BankFromText(text string) string {
	upper := strings.ToUpper(text)
	for _, bc := range bankCodes {
		if strings.Contains(upper, bc.Code) {
			return bc.Name
		}
	}
	return ""
}

// eWalletPattern maps a marker substring to a provider. Order matters:
// longer, more specific patterns come first so "SHOPEEPAY" is not consumed
// by the bare "SHOPEE" marker.
type eWalletPattern struct {
	Marker   string
	Provider model.EWalletProvider
}

var eWalletPatterns = []eWalletPattern{
	{"SHOPEEPAY", model.EWalletShopeePay},
	{"SHOPEE PAY", model.EWalletShopeePay},
	{"TOP UP SHOPEE", model.EWalletShopeePay},
	{"SHOPEE", model.EWalletShopeePay},
	{"GOPAY", model.EWalletGoPay},
	{"GO-PAY", model.EWalletGoPay},
	{"TOP UP GOPAY", model.EWalletGoPay},
	{"OVO", model.EWalletOVO},
	{"DANA", model.EWalletDANA},
	{"LINKAJA", model.EWalletLinkAja},
	{"LINK AJA", model.EWalletLinkAja},
	{"FLIP", model.EWalletFlip},
}

// EWalletOf returns the e-wallet provider named in the text, if any.
func EWalletOf(text string) model.EWalletProvider {
	upper := strings.ToUpper(text)
	for _, p := range eWalletPatterns {
		if strings.Contains(upper, p.Marker) {
			return p.Provider
		}
	}
	return model.EWalletNone
}

// Digit-run grammars. These overlap; precedence is decided by the ordered
// line rules, labeled context before bare runs.
var (
	timeLineRe      = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})$`)
	maskedCardRe    = regexp.MustCompile(`^(\d{6}\*+\d{4})$`)
	refWithBankRe   = regexp.MustCompile(`^(\d{10,})\s+([A-Z]{6,10})$`)
	bareRefRe       = regexp.MustCompile(`^(\d{10,})$`)
	acctWithBankRe  = regexp.MustCompile(`(?i)^(\d+)\s+(BCA|BNI|BRI|MANDIRI|CIMB)$`)
	acctBankScanRe  = regexp.MustCompile(`(?i)(\d{10,})\s+(BCA|BNI|BRI|MANDIRI|CIMB)`)
	bifastBankRe    = regexp.MustCompile(`(BNINIDJA|CENAIDJA|BRINIDJA|BMRIIDJA)`)
	bareBankCodeRe  = regexp.MustCompile(`^[A-Z]{6,10}$`)
	longDigitRunRe  = regexp.MustCompile(`(\d{10,})`)
	phoneRe         = regexp.MustCompile(`(08\d{9,})`)
	cardDigitsRe    = regexp.MustCompile(`(\d{16})`)
	technicalBlobRe = regexp.MustCompile(`^[A-Z0-9]{10,}$`)
	trfToRe         = regexp.MustCompile(`(?i)TRF\s+TO\s+(.+)`)
	bankDashNameRe  = regexp.MustCompile(`(?i)^(BNI|BCA|BRI|MANDIRI|CIMB)\s*-\s*(.+)$`)
	qrisMerchantRe  = regexp.MustCompile(`(?i)^([A-Z0-9\s]+?)(?:\s*-\s*|\s+(?:JAKARTA|KOTA|BANDUNG|SURABAYA))`)
)
