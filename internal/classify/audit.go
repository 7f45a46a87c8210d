package classify

import (
	"fmt"
	"strings"

	"github.com/saring-audit/saring/internal/model"
)

// Auditor runs the ordered audit rule pipeline. Rules are not mutually
// exclusive: later rules may override the flag set earlier, and reset
// rules replace the accumulated notes while append rules add to them.
// Business-context rules sit after the suspicion heuristics on purpose so
// an explicit business signal overrides a generic e-wallet or travel flag.
type Auditor struct {
	rules []auditRule
}

type auditRule struct {
	name  string
	apply func(st *auditState)
}

// auditState is the mutable record view the rules operate on. combined is
// the type, narrative and recipient joined, for rules that match anywhere.
type auditState struct {
	narrative   string
	recipient   string
	rawType     string
	combined    string
	ewallet     string
	ewalletName string
	debit       float64

	flag  model.AuditFlag
	notes []string
}

func (st *auditState) set(flag model.AuditFlag, note string) {
	st.flag = flag
	st.notes = append(st.notes, note)
}

// escalate raises the flag unless suspicion already won.
func (st *auditState) escalate(flag model.AuditFlag, note string) {
	if st.flag != model.AuditSuspicious {
		st.flag = flag
	}
	st.notes = append(st.notes, note)
}

func (st *auditState) reset(flag model.AuditFlag, note string) {
	st.flag = flag
	st.notes = []string{note}
}

// NewAuditor builds the default rule pipeline.
func NewAuditor() *Auditor {
	return &Auditor{rules: []auditRule{
		{"ewallet-personal-name", ruleEWalletPersonalName},
		{"ewallet-no-context", ruleEWalletNoContext},
		{"personal-snacks", rulePersonalSnacks},
		{"child-expense", ruleChildExpense},
		{"personal-item", rulePersonalItem},
		{"qris-personal-place", ruleQRISPersonalPlace},
		{"travel-agent", ruleTravelAgent},
		{"overseas-transfer", ruleOverseasTransfer},
		{"business-travel", ruleBusinessTravel},
		{"office-supplies", ruleOfficeSupplies},
		{"professional-services", ruleProfessionalServices},
		{"government-payment", ruleGovernmentPayment},
		{"government-transfer", ruleGovernmentTransfer},
		{"office-virtual-account", ruleOfficeVirtualAccount},
		{"business-catering", ruleBusinessCatering},
		{"flight-hotel", ruleFlightHotel},
		{"large-undocumented", ruleLargeUndocumented},
		{"credit-card", ruleCreditCard},
		{"cash-transaction", ruleCashTransaction},
		{"bank-fee", ruleBankFee},
	}}
}

// Audit assigns the risk flag and rationale notes for rec. The record is
// not modified; callers write the result back themselves.
func (a *Auditor) Audit(rec *model.TransactionRecord) (model.AuditFlag, []string) {
	st := &auditState{
		narrative:   strings.ToLower(rec.Note),
		recipient:   strings.ToLower(rec.Counterparty),
		rawType:     strings.ToLower(rec.RawType),
		ewallet:     strings.ToLower(string(rec.EWallet)),
		ewalletName: string(rec.EWallet),
		debit:       rec.Debit,
		flag:        model.AuditOK,
	}
	st.combined = st.rawType + " " + st.narrative + " " + st.recipient

	for _, r := range a.rules {
		r.apply(st)
	}

	if len(st.notes) == 0 {
		if st.flag == model.AuditOK {
			st.notes = []string{"Standard transaction"}
		} else {
			st.notes = []string{"Review required"}
		}
	}
	return st.flag, st.notes
}

func ruleEWalletPersonalName(st *auditState) {
	if st.ewallet == "" || !containsAny(st.recipient, personalNames) {
		return
	}
	st.set(model.AuditSuspicious, fmt.Sprintf("E-wallet (%s) top-up to personal account", st.ewalletName))
}

func ruleEWalletNoContext(st *auditState) {
	if st.ewallet == "" || containsAny(st.narrative, businessContextKeywords) {
		return
	}
	st.set(model.AuditSuspicious, fmt.Sprintf("E-wallet (%s) without business justification", st.ewalletName))
}

func rulePersonalSnacks(st *auditState) {
	if strings.Contains(st.narrative, "jajan") {
		st.set(model.AuditSuspicious, "Personal snacks/meals (jajan)")
	}
}

func ruleChildExpense(st *auditState) {
	if strings.Contains(st.narrative, "jemputan") || strings.Contains(st.narrative, "deniza") {
		st.set(model.AuditSuspicious, "Child-related expense (jemputan/deniza)")
	}
}

func rulePersonalItem(st *auditState) {
	for _, k := range []string{"nisan", "porsaina", "porselen"} {
		if strings.Contains(st.narrative, k) {
			st.set(model.AuditSuspicious, "Personal item purchase")
			return
		}
	}
}

func ruleQRISPersonalPlace(st *auditState) {
	if strings.Contains(st.rawType, "qris") && containsAny(st.combined, qrisPersonalPlaces) {
		st.set(model.AuditSuspicious, "Restaurant/food purchase")
	}
}

func ruleTravelAgent(st *auditState) {
	if !strings.Contains(st.rawType, "traveloka") && !strings.Contains(st.recipient, "traveloka") {
		return
	}
	switch {
	case len(st.narrative) < 3:
		st.set(model.AuditSuspicious, "TRAVELOKA payment without business justification")
	case containsAny(st.narrative, personalTripKeywords):
		st.set(model.AuditSuspicious, "TRAVELOKA for personal trip")
	}
}

func ruleOverseasTransfer(st *auditState) {
	if strings.Contains(st.narrative, "malaysia") && !strings.Contains(st.narrative, "dinas") {
		st.set(model.AuditSuspicious, "Transfer to Malaysia (possibly personal)")
	}
}

func ruleBusinessTravel(st *auditState) {
	if containsAny(st.narrative, businessTravelKeywords) {
		st.reset(model.AuditOK, "Business travel/activity")
	}
}

func ruleOfficeSupplies(st *auditState) {
	if containsAny(st.narrative, officeSupplyKeywords) {
		st.reset(model.AuditOK, "Office supplies/equipment")
	}
}

func ruleProfessionalServices(st *auditState) {
	if containsAny(st.narrative, professionalKeywords) {
		st.reset(model.AuditOK, "Professional services")
	}
}

func ruleGovernmentPayment(st *auditState) {
	if containsAny(st.narrative, governmentKeywords) {
		st.reset(model.AuditOK, "Government/institutional payment")
	}
}

func ruleGovernmentTransfer(st *auditState) {
	if containsAny(st.combined, governmentTransferKeywords) {
		st.reset(model.AuditOK, "Government transfer")
	}
}

func ruleOfficeVirtualAccount(st *auditState) {
	if strings.Contains(st.rawType, "virtual account") && strings.Contains(st.combined, "pusbanglin") {
		st.reset(model.AuditOK, "Office virtual account")
	}
}

func ruleBusinessCatering(st *auditState) {
	if containsAny(st.narrative, cateringKeywords) && st.debit > 500000 {
		st.reset(model.AuditOK, "Business catering")
	}
}

func ruleFlightHotel(st *auditState) {
	if !containsAny(st.narrative, travelBookingKeywords) {
		return
	}
	if containsAny(st.narrative, travelDestinationKeywords) {
		st.reset(model.AuditOK, "Business travel (flight/hotel)")
		return
	}
	st.escalate(model.AuditNeedsJustification, "Flight/hotel - verify business purpose")
}

func ruleLargeUndocumented(st *auditState) {
	if st.debit > 5000000 && len(st.narrative) < 3 {
		st.escalate(model.AuditNeedsJustification,
			fmt.Sprintf("Large transfer (Rp %s) without description", formatAmount(st.debit)))
	}
}

func ruleCreditCard(st *auditState) {
	if !strings.Contains(st.rawType, "billpayment") && !strings.Contains(st.rawType, "ccard") {
		return
	}
	if containsAny(st.narrative, creditCardContextKeywords) {
		return
	}
	if st.flag == model.AuditOK {
		st.flag = model.AuditNeedsJustification
	}
	st.notes = append(st.notes, "Credit card payment - verify business use")
}

// Cash always requires documentation, whatever the earlier rules decided.
// Withdrawals and deposits both count.
func ruleCashTransaction(st *auditState) {
	if strings.Contains(st.rawType, "atm") && strings.Contains(st.rawType, "withdrawal") {
		st.reset(model.AuditNeedsJustification, "Cash withdrawal - needs documentation")
		return
	}
	if strings.Contains(st.rawType, "tarik tunai") {
		st.reset(model.AuditNeedsJustification, "Cash withdrawal - needs documentation")
		return
	}
	if strings.Contains(st.rawType, "setor tunai") || strings.Contains(st.rawType, "cdm cash deposit") {
		st.reset(model.AuditNeedsJustification, "Cash deposit - needs documentation")
	}
}

func ruleBankFee(st *auditState) {
	if strings.Contains(st.rawType, "biaya") || containsAny(st.rawType, feeShapeMarkers) {
		st.reset(model.AuditOK, "Bank fee")
	}
}

// formatAmount renders an amount with thousands separators, no decimals.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
