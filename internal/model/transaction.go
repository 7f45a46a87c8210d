// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// CategoryLabel is the ownership classification of a transaction.
type CategoryLabel string

// Category label constants.
const (
	CategoryInstitutional CategoryLabel = "Company"
	CategoryPersonal      CategoryLabel = "Private"
	CategoryNeedsReview   CategoryLabel = "Review"
)

// AuditFlag is the audit risk level assigned to a transaction.
type AuditFlag string

// Audit flag constants.
const (
	AuditOK                 AuditFlag = "OK"
	AuditSuspicious         AuditFlag = "SUSPICIOUS"
	AuditNeedsJustification AuditFlag = "NEEDS_JUSTIFICATION"
)

// FlowClass is the coarse directional class of a transaction, derived from
// its raw type label. It drives fund-flow aggregation and monthly rollups.
type FlowClass string

// Flow class constants.
const (
	FlowIncome     FlowClass = "Income"
	FlowWithdrawal FlowClass = "Withdrawal"
	FlowDeposit    FlowClass = "Deposit"
	FlowTransfer   FlowClass = "Transfer"
	FlowOther      FlowClass = "Other"
)

// EWalletProvider identifies a known e-wallet service.
type EWalletProvider string

// Known e-wallet providers.
const (
	EWalletNone      EWalletProvider = ""
	EWalletShopeePay EWalletProvider = "ShopeePay"
	EWalletGoPay     EWalletProvider = "GoPay"
	EWalletOVO       EWalletProvider = "OVO"
	EWalletDANA      EWalletProvider = "DANA"
	EWalletLinkAja   EWalletProvider = "LinkAja"
	EWalletFlip      EWalletProvider = "Flip"
)

// SourceRef identifies the statement document a record came from.
// It is attached at extraction time and never altered afterwards.
type SourceRef struct {
	File    string
	Bank    string
	Account string
	Period  string
}

// TransactionRecord is the canonical unit produced for each detected
// transaction block. The decomposer and classifiers refine its fields
// once; downstream consumers treat it as read-only.
type TransactionRecord struct {
	Date                time.Time
	Balance             *float64
	Time                string
	RawType             string
	Counterparty        string
	CounterpartyBank    string
	CounterpartyAccount string
	Reference           string
	CardNumber          string
	Channel             string
	Method              string
	Note                string
	FullText            string
	Category            CategoryLabel
	FlowClass           FlowClass
	AuditFlag           AuditFlag
	AuditNotes          []string
	Source              SourceRef
	EWallet             EWalletProvider
	Debit               float64
	Credit              float64
}

// Amount returns the directional magnitude of the record: the debit if the
// money moved out, otherwise the credit.
func (r *TransactionRecord) Amount() float64 {
	if r.Debit > 0 {
		return r.Debit
	}
	return r.Credit
}

// AuditNote joins the accumulated rationale notes for display.
func (r *TransactionRecord) AuditNote() string {
	return strings.Join(r.AuditNotes, "; ")
}

// MonthKey returns the month bucket this record belongs to, e.g. "Apr 2025".
func (r *TransactionRecord) MonthKey() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format("Jan 2006")
}

// Validate checks the invariants every emitted record must satisfy.
func (r *TransactionRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("record has no date")
	}
	if r.RawType == "" {
		return fmt.Errorf("record has no type label")
	}
	if r.Debit < 0 || r.Credit < 0 {
		return fmt.Errorf("amounts must be non-negative magnitudes")
	}
	if r.Debit > 0 && r.Credit > 0 {
		return fmt.Errorf("debit and credit are mutually exclusive")
	}
	return nil
}
