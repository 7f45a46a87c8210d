package decompose

import (
	"strings"
	"unicode"

	"github.com/saring-audit/saring/internal/model"
)

// Decomposer applies an ordered shape dispatch followed by ordered line
// rules to the residual lines of a transaction block. Shapes are matched
// against the upper-cased type label plus residual text; the first marker
// hit wins, and its handler runs after the generic line scan so it can
// refine what the scan produced.
type Decomposer struct {
	shapes []shape
	rules  []lineRule
}

type shape struct {
	name    string
	markers []string
	apply   func(st *state)
}

// lineRule inspects one residual line. Returning true consumes the line;
// rules after a consuming rule never see it.
type lineRule func(st *state, line string) bool

type state struct {
	rec        *model.TransactionRecord
	residual   []string
	candidates []string
	ownBank    string
}

// New builds a Decomposer with the default shape and rule tables.
func New() *Decomposer {
	d := &Decomposer{}
	d.shapes = []shape{
		{name: "transfer-in", markers: []string{"TRANSFER DARI"}, apply: applyTransferIn},
		{name: "cash-withdrawal", markers: []string{"TARIK TUNAI", "ATM WITHDRAWAL", "CASH WITHDRAWAL"}, apply: applyCash},
		{name: "cash-deposit", markers: []string{"SETOR TUNAI", "CDM CASH DEPOSIT", "CASH DEPOSIT"}, apply: applyCash},
		{name: "overbooking", markers: []string{"OVERBOOKING", "PEMINDAHAN"}, apply: applyGeneric},
		{name: "bill-payment", markers: []string{"BILL PAYMENT", "BILLPAYMENT", "PAYMENT BILL"}, apply: applyBillPayment},
		{name: "interest", markers: []string{"CREDIT INTEREST", "BUNGA"}, apply: applyInterest},
		{name: "qris", markers: []string{"QRIS", "QR PURCHASE", "QR PAYMENT"}, apply: applyQRIS},
		{name: "ewallet-topup", markers: []string{"TOP UP", "TOPUP", "SHOPEEPAY", "GOPAY", "LINKAJA"}, apply: applyEWalletTopUp},
		{name: "virtual-account", markers: []string{"VIRTUAL ACCOUNT", "VA PAYMENT"}, apply: applyVirtualAccount},
		{name: "transfer", markers: []string{"TRANSFER", "TRF", "BIFAST", "BI-FAST"}, apply: applyTransfer},
		{name: "generic", markers: nil, apply: applyGeneric},
	}
	d.rules = []lineRule{
		ruleTime,
		ruleMaskedCard,
		ruleRefWithBank,
		ruleBareRef,
		ruleAcctWithBank,
		ruleBIFAST,
		ruleEWallet,
		ruleAcctBankScan,
		ruleTopUp,
		ruleTrfTo,
		ruleToSplit,
		ruleBareBankCode,
		ruleQR,
		ruleCardDigits,
		ruleNameContinuation,
	}
	return d
}

// Decompose fills the descriptive fields of rec from its residual lines.
// Amounts, date and balance are never touched here; only textual fields
// are populated, and only when still empty so extractor-set values win.
func (d *Decomposer) Decompose(rec *model.TransactionRecord, residual []string) {
	st := &state{rec: rec, residual: residual, ownBank: rec.Source.Bank}

	combined := strings.ToUpper(rec.RawType + " " + strings.Join(residual, " "))
	sh := d.selectShape(combined)

	for _, line := range residual {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, rule := range d.rules {
			if rule(st, line) {
				break
			}
		}
	}

	sh.apply(st)
	pickNote(st)
}

func (d *Decomposer) selectShape(combined string) shape {
	for _, sh := range d.shapes {
		if len(sh.markers) == 0 {
			return sh
		}
		for _, m := range sh.markers {
			if strings.Contains(combined, m) {
				return sh
			}
		}
	}
	return d.shapes[len(d.shapes)-1]
}

// Line rules, in precedence order. Labeled digit runs are claimed before
// bare runs so a reference number next to a bank code is never mistaken
// for a counterparty account.

func ruleTime(st *state, line string) bool {
	m := timeLineRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.Time == "" {
		st.rec.Time = m[1]
	}
	return true
}

func ruleMaskedCard(st *state, line string) bool {
	m := maskedCardRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.CardNumber == "" {
		st.rec.CardNumber = m[1]
	}
	return true
}

func ruleRefWithBank(st *state, line string) bool {
	m := refWithBankRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.Reference == "" {
		st.rec.Reference = m[1]
	}
	if st.rec.CounterpartyBank == "" {
		st.rec.CounterpartyBank = BankName(m[2])
	}
	return true
}

func ruleBareRef(st *state, line string) bool {
	m := bareRefRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.Reference == "" {
		st.rec.Reference = m[1]
	}
	return true
}

func ruleAcctWithBank(st *state, line string) bool {
	m := acctWithBankRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.CounterpartyAccount == "" {
		st.rec.CounterpartyAccount = m[1]
	}
	if st.rec.CounterpartyBank == "" {
		st.rec.CounterpartyBank = BankName(strings.ToUpper(m[2]))
	}
	return true
}

func ruleBIFAST(st *state, line string) bool {
	upper := strings.ToUpper(line)
	if !strings.Contains(upper, "BIFAST") && !strings.HasPrefix(upper, "BFS ") {
		return false
	}
	if st.rec.Reference == "" {
		st.rec.Reference = line
	}
	if st.rec.CounterpartyBank == "" {
		if m := bifastBankRe.FindString(upper); m != "" {
			st.rec.CounterpartyBank = BankName(m)
		}
	}
	if st.rec.Method == "" {
		st.rec.Method = "BI-FAST"
	}
	return true
}

// ruleEWallet annotates but never consumes: the same line may still carry
// a recipient or reference for the rules below.
func ruleEWallet(st *state, line string) bool {
	p := EWalletOf(line)
	if p == model.EWalletNone {
		return false
	}
	if st.rec.EWallet == model.EWalletNone {
		st.rec.EWallet = p
	}
	if st.rec.CounterpartyAccount == "" {
		if m := phoneRe.FindStringSubmatch(line); m != nil {
			st.rec.CounterpartyAccount = m[1]
		} else if m := longDigitRunRe.FindStringSubmatch(line); m != nil {
			st.rec.CounterpartyAccount = m[1]
		}
	}
	return false
}

func ruleAcctBankScan(st *state, line string) bool {
	m := acctBankScanRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.CounterpartyAccount == "" {
		st.rec.CounterpartyAccount = m[1]
	}
	if st.rec.CounterpartyBank == "" {
		st.rec.CounterpartyBank = BankName(strings.ToUpper(m[2]))
	}
	return false
}

func ruleTopUp(st *state, line string) bool {
	if !strings.Contains(strings.ToUpper(line), "TOP UP") {
		return false
	}
	if p := EWalletOf(line); p != model.EWalletNone && st.rec.EWallet == model.EWalletNone {
		st.rec.EWallet = p
	}
	if st.rec.CounterpartyAccount == "" {
		if m := longDigitRunRe.FindStringSubmatch(line); m != nil {
			st.rec.CounterpartyAccount = m[1]
		}
	}
	return false
}

func ruleTrfTo(st *state, line string) bool {
	m := trfToRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	recipient := strings.TrimSpace(m[1])
	if p := EWalletOf(recipient); p != model.EWalletNone {
		if st.rec.EWallet == model.EWalletNone {
			st.rec.EWallet = p
		}
	} else if st.rec.Counterparty == "" {
		st.rec.Counterparty = recipient
	}
	return true
}

func ruleToSplit(st *state, line string) bool {
	idx := strings.Index(line, " TO ")
	if idx < 0 {
		return false
	}
	left := strings.TrimSpace(line[:idx])
	right := strings.TrimSpace(line[idx+4:])
	if left == "" || right == "" {
		return false
	}
	if st.rec.Method == "" {
		st.rec.Method = left
	}
	if st.rec.Counterparty == "" {
		st.rec.Counterparty = right
	}
	return true
}

func ruleBareBankCode(st *state, line string) bool {
	if !bareBankCodeRe.MatchString(line) {
		return false
	}
	name := BankName(line)
	if name == line && BankFromText(line) == "" {
		return false
	}
	if st.rec.CounterpartyBank == "" {
		st.rec.CounterpartyBank = name
	}
	return true
}

func ruleQR(st *state, line string) bool {
	upper := strings.ToUpper(line)
	if !strings.Contains(upper, "QR PURCHASE") && !strings.Contains(upper, "QRS") {
		return false
	}
	if st.rec.Method == "" {
		st.rec.Method = "QR Payment"
	}
	st.candidates = append(st.candidates, line)
	return true
}

func ruleCardDigits(st *state, line string) bool {
	m := cardDigitsRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	if st.rec.CounterpartyAccount == "" {
		st.rec.CounterpartyAccount = m[1]
	}
	return true
}

// ruleNameContinuation absorbs short all-caps lines into an already seen
// counterparty name; everything else becomes a note candidate. Always the
// last rule and always consumes.
func ruleNameContinuation(st *state, line string) bool {
	if isUpperStr(line) && st.rec.Counterparty != "" && len(line) > 2 && len(line) < 30 {
		st.rec.Counterparty += " " + line
		return true
	}
	st.candidates = append(st.candidates, line)
	return true
}

// Shape handlers run after the line scan.

func applyGeneric(*state) {}

func applyTransferIn(st *state) {
	applyTransfer(st)
	if st.rec.Counterparty == "" {
		label := strings.ToUpper(st.rec.RawType)
		if idx := strings.Index(label, "TRANSFER DARI"); idx >= 0 {
			rest := strings.TrimSpace(st.rec.RawType[idx+len("TRANSFER DARI"):])
			if rest != "" {
				st.rec.Counterparty = rest
			}
		}
	}
}

func applyTransfer(st *state) {
	for _, line := range st.residual {
		m := bankDashNameRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if st.rec.CounterpartyBank == "" {
			st.rec.CounterpartyBank = BankName(strings.ToUpper(m[1]))
		}
		if st.rec.Counterparty == "" {
			st.rec.Counterparty = strings.TrimSpace(m[2])
		}
		return
	}
	if st.rec.CounterpartyBank == "" {
		if name := BankFromText(strings.Join(st.residual, " ")); name != "" {
			st.rec.CounterpartyBank = name
		}
	}
}

// Cash movements have no counterparty; the machine belongs to the account's
// own bank.
func applyCash(st *state) {
	if st.rec.CounterpartyBank == "" {
		st.rec.CounterpartyBank = st.ownBank
	}
}

func applyBillPayment(st *state) {
	if st.rec.Method == "" {
		st.rec.Method = "Bill Payment"
	}
}

func applyInterest(st *state) {
	if st.rec.Note == "" {
		st.rec.Note = "Interest credit"
	}
}

func applyQRIS(st *state) {
	if st.rec.Method == "" {
		st.rec.Method = "QR Payment"
	}
	if st.rec.Counterparty != "" {
		return
	}
	// Merchant name precedes the city on QRIS lines.
	for _, line := range st.residual {
		line = strings.TrimSpace(line)
		if m := qrisMerchantRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" && !strings.Contains(strings.ToUpper(name), "QRIS") {
				st.rec.Counterparty = name
				return
			}
		}
	}
}

func applyEWalletTopUp(st *state) {
	if st.rec.EWallet == model.EWalletNone {
		combined := st.rec.RawType + " " + strings.Join(st.residual, " ")
		st.rec.EWallet = EWalletOf(combined)
	}
	if st.rec.CounterpartyAccount == "" {
		combined := strings.Join(st.residual, " ")
		if m := phoneRe.FindStringSubmatch(combined); m != nil {
			st.rec.CounterpartyAccount = m[1]
		}
	}
}

func applyVirtualAccount(st *state) {
	if st.rec.Method == "" {
		st.rec.Method = "Virtual Account"
	}
	if st.rec.Counterparty == "" && len(st.candidates) > 0 {
		st.rec.Counterparty = st.candidates[0]
	}
}

// pickNote chooses a human-readable note from the candidate lines. The
// scan runs bottom-up preferring mixed-case or long lines; technical
// blobs and page artifacts never qualify.
func pickNote(st *state) {
	if st.rec.Note != "" {
		return
	}
	var filtered []string
	for _, c := range st.candidates {
		if technicalBlobRe.MatchString(c) {
			continue
		}
		if strings.Contains(c, "Page ") || strings.Contains(c, "GMB") {
			continue
		}
		filtered = append(filtered, c)
	}
	for i := len(filtered) - 1; i >= 0; i-- {
		if !isUpperStr(filtered[i]) || len(filtered[i]) > 50 {
			st.rec.Note = filtered[i]
			return
		}
	}
	if len(filtered) > 0 {
		st.rec.Note = filtered[len(filtered)-1]
	}
}

// isUpperStr reports whether the string has at least one cased letter and
// no lowercase letters.
func isUpperStr(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
