package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saring-audit/saring/internal/model"
)

func TestExtractCASA(t *testing.T) {
	acct := model.AccountInfo{Bank: "CIMB", AccountNumber: "800123456"}

	tests := []struct {
		name        string
		lines       []string
		wantType    string
		wantDebit   float64
		wantCredit  float64
		wantBalance float64
	}{
		{
			name:        "signed debit with balance",
			lines:       []string{"05 Apr 2025 TRF TO INDAH ROSALIA -5,000,000.00 15,000,000.00"},
			wantType:    "TRF TO INDAH ROSALIA",
			wantDebit:   5000000,
			wantBalance: 15000000,
		},
		{
			name:        "unsigned credit with balance",
			lines:       []string{"07 Apr 2025 TRANSFER DARI PT MAJU 2,000,000.00 17,000,000.00"},
			wantType:    "TRANSFER DARI PT MAJU",
			wantCredit:  2000000,
			wantBalance: 17000000,
		},
		{
			name:        "three column layout",
			lines:       []string{"10 Apr 2025 BILL PAYMENT -250,000.00 0.00 16,750,000.00"},
			wantType:    "BILL PAYMENT",
			wantDebit:   250000,
			wantBalance: 16750000,
		},
		{
			name:        "balance only",
			lines:       []string{"01 Apr 2025 OPENING BALANCE 20,000,000.00"},
			wantType:    "OPENING BALANCE",
			wantBalance: 20000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, err := FormatCASA.Extract(Block{Lines: tt.lines}, acct)
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, rec.RawType)
			assert.Equal(t, tt.wantDebit, rec.Debit)
			assert.Equal(t, tt.wantCredit, rec.Credit)
			require.NotNil(t, rec.Balance)
			assert.Equal(t, tt.wantBalance, *rec.Balance)
			assert.Equal(t, "CIMB", rec.Source.Bank)
		})
	}
}

func TestExtractCASADateAndResidual(t *testing.T) {
	rec, residual, err := FormatCASA.Extract(Block{Lines: []string{
		"05 Apr 2025 TRF TO TOKO ABC -100,000.00 16,650,000.00",
		"1234567890123 BNINIDJA",
		"pembelian atk kantor",
	}}, model.AccountInfo{Bank: "CIMB"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, []string{"1234567890123 BNINIDJA", "pembelian atk kantor"}, residual)
	assert.Contains(t, rec.FullText, "pembelian atk kantor")
}

func TestExtractCASAMalformed(t *testing.T) {
	_, _, err := FormatCASA.Extract(Block{Lines: []string{"not a transaction line"}}, model.AccountInfo{})
	require.Error(t, err)
}

func TestCASAHeader(t *testing.T) {
	page := `Laporan Rekening / Statement of Account
No. Rekening : 800123456
Jenis Produk : OCTO Savers
Nama : INDAH ROSALIA
Mata Uang : IDR
Periode : 01 Apr 2025 - 30 Apr 2025`

	info := FormatCASA.Header(page)
	assert.Equal(t, "800123456", info.AccountNumber)
	assert.Equal(t, "OCTO Savers", info.ProductType)
	assert.Equal(t, "INDAH ROSALIA", info.HolderName)
	assert.Equal(t, "IDR", info.Currency)
	assert.Equal(t, "01 Apr 2025 - 30 Apr 2025", info.Period)
	assert.Equal(t, "CIMB", info.Bank)
}
