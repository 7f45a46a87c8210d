package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saring-audit/saring/internal/model"
)

func TestNarrative(t *testing.T) {
	summary := model.FlowSummary{
		Withdrawals: model.FlowHop{Label: HopWithdrawal, Count: 3, Total: 300000000},
		Deposits:    model.FlowHop{Label: HopDeposit, Count: 2, Total: 280000000},
		Transfers:   model.FlowHop{Label: HopTransfer, Count: 1, Total: 250000000},
	}

	text := Narrative(summary, nil)
	assert.Contains(t, text, "1. SPAN → Cash: 3 transactions totaling Rp 300,000,000")
	assert.Contains(t, text, "2. Cash → BNI: 2 transactions totaling Rp 280,000,000")
	assert.Contains(t, text, "3. BNI → CASA: 1 transactions totaling Rp 250,000,000")
	assert.Contains(t, text, "No suspicious patterns found")
}

func TestNarrativeWithFindings(t *testing.T) {
	findings := []Finding{
		{Type: "Large Cash Deposit", Date: day(2), Amount: 60000000, Risk: RiskHigh, Note: "Cash deposit > Rp 50M requires documentation"},
	}

	text := Narrative(model.FlowSummary{}, findings)
	assert.Contains(t, text, "1 suspicious patterns")
	assert.Contains(t, text, "[HIGH] 2025-04-02 Large Cash Deposit Rp 60,000,000")
}

func TestNarrativeIsDeterministic(t *testing.T) {
	summary := model.FlowSummary{
		Withdrawals: model.FlowHop{Label: HopWithdrawal, Count: 1, Total: 100000000},
	}
	assert.Equal(t, Narrative(summary, nil), Narrative(summary, nil))
}
